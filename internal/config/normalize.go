package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBacking()
	c.normalizeDirectory()
	c.normalizeCache()
	c.normalizeIdentity()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBacking() {
	c.Backing.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backing.BaseURL), "/")
	c.Backing.APIToken = strings.TrimSpace(c.Backing.APIToken)
	if c.Backing.TimeoutSeconds <= 0 {
		c.Backing.TimeoutSeconds = defaultBackingTimeoutSeconds
	}
}

func (c *Config) normalizeDirectory() {
	c.Directory.APIKey = strings.TrimSpace(c.Directory.APIKey)
	c.Directory.BaseURL = strings.TrimRight(strings.TrimSpace(c.Directory.BaseURL), "/")
	if c.Directory.BaseURL == "" {
		c.Directory.BaseURL = defaultDirectoryBaseURL
	}
	c.Directory.Country = strings.ToUpper(strings.TrimSpace(c.Directory.Country))
	if c.Directory.Country == "" {
		c.Directory.Country = defaultDirectoryCountry
	}
	if c.Directory.MaxResults <= 0 {
		c.Directory.MaxResults = defaultDirectoryMaxResults
	}
	if c.Directory.TimeoutSeconds <= 0 {
		c.Directory.TimeoutSeconds = defaultDirectoryTimeout
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.VenueFreshness < 0 {
		c.Cache.VenueFreshness = defaultVenueFreshness
	}
	if c.Cache.ProfileFreshness < 0 {
		c.Cache.ProfileFreshness = defaultProfileFreshness
	}
	if c.Cache.RatingFreshness < 0 {
		c.Cache.RatingFreshness = defaultRatingFreshness
	}
}

func (c *Config) normalizeIdentity() {
	if c.Identity.SessionTimeoutSeconds <= 0 {
		c.Identity.SessionTimeoutSeconds = defaultSessionTimeoutSecs
	}
	if c.Identity.AttemptTimeoutSeconds <= 0 {
		c.Identity.AttemptTimeoutSeconds = defaultAttemptTimeoutSecs
	}
	if len(c.Identity.BackoffMillis) == 0 {
		c.Identity.BackoffMillis = defaultBackoffMillis()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
