package config

import "time"

// VenueFreshnessWindow returns the venue cache freshness window.
func (c *Config) VenueFreshnessWindow() time.Duration {
	return time.Duration(c.Cache.VenueFreshness) * time.Second
}

// ProfileFreshnessWindow returns the profile cache freshness window.
func (c *Config) ProfileFreshnessWindow() time.Duration {
	return time.Duration(c.Cache.ProfileFreshness) * time.Second
}

// RatingFreshnessWindow returns the rating cache freshness window. Zero means
// ratings are always refetched.
func (c *Config) RatingFreshnessWindow() time.Duration {
	return time.Duration(c.Cache.RatingFreshness) * time.Second
}

// BackingTimeout returns the backing store request timeout.
func (c *Config) BackingTimeout() time.Duration {
	return time.Duration(c.Backing.TimeoutSeconds) * time.Second
}

// DirectoryTimeout returns the directory provider request timeout.
func (c *Config) DirectoryTimeout() time.Duration {
	return time.Duration(c.Directory.TimeoutSeconds) * time.Second
}

// SessionTimeout returns the bound on the initial session check.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Identity.SessionTimeoutSeconds) * time.Second
}

// AttemptTimeout returns the bound on each identity creation attempt.
func (c *Config) AttemptTimeout() time.Duration {
	return time.Duration(c.Identity.AttemptTimeoutSeconds) * time.Second
}

// IdentityBackoff returns the delays between identity creation attempts.
func (c *Config) IdentityBackoff() []time.Duration {
	delays := make([]time.Duration, 0, len(c.Identity.BackoffMillis))
	for _, ms := range c.Identity.BackoffMillis {
		delays = append(delays, time.Duration(ms)*time.Millisecond)
	}
	return delays
}
