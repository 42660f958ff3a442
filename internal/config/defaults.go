package config

const (
	defaultStateDir              = "~/.local/share/marquee/state"
	defaultLogDir                = "~/.local/share/marquee/logs"
	defaultBackingTimeoutSeconds = 10
	defaultDirectoryBaseURL      = "https://places.hereapi.example/v1"
	defaultDirectoryCountry      = "US"
	defaultDirectoryMaxResults   = 20
	defaultDirectoryTimeout      = 10
	defaultVenueFreshness        = 300
	defaultProfileFreshness      = 300
	defaultRatingFreshness       = 0
	defaultSessionTimeoutSecs    = 5
	defaultAttemptTimeoutSecs    = 5
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultBackoffMillis() []int {
	return []int{0, 500, 1500}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Backing: Backing{
			TimeoutSeconds: defaultBackingTimeoutSeconds,
		},
		Directory: Directory{
			BaseURL:        defaultDirectoryBaseURL,
			Country:        defaultDirectoryCountry,
			MaxResults:     defaultDirectoryMaxResults,
			TimeoutSeconds: defaultDirectoryTimeout,
		},
		Cache: Cache{
			VenueFreshness:   defaultVenueFreshness,
			ProfileFreshness: defaultProfileFreshness,
			RatingFreshness:  defaultRatingFreshness,
			Persist:          true,
		},
		Identity: Identity{
			SessionTimeoutSeconds: defaultSessionTimeoutSecs,
			AttemptTimeoutSeconds: defaultAttemptTimeoutSecs,
			BackoffMillis:         defaultBackoffMillis(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
