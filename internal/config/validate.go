package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBacking(); err != nil {
		return err
	}
	if err := c.validateDirectory(); err != nil {
		return err
	}
	if err := c.validateIdentity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBacking() error {
	if c.Backing.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/marquee/config.toml"
		}
		return fmt.Errorf("backing.base_url is required. Edit %s (create with 'marquee config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateDirectory() error {
	if c.Directory.MaxResults > 100 {
		return errors.New("directory.max_results must be at most 100")
	}
	return nil
}

func (c *Config) validateIdentity() error {
	for _, delay := range c.Identity.BackoffMillis {
		if delay < 0 {
			return errors.New("identity.backoff_millis must not contain negative delays")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
