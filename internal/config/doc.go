// Package config loads and validates marquee's TOML configuration.
//
// Loading follows a fixed precedence: an explicit --config path, then
// ~/.config/marquee/config.toml, then ./marquee.toml. Missing files fall
// back to defaults so read-only commands work out of the box. All paths are
// expanded and normalized before validation runs.
package config
