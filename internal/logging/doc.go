// Package logging builds the slog loggers used throughout marquee.
//
// Loggers carry a standardized component attribute so console output stays
// scannable, and the attr helpers keep structured keys consistent across
// packages. Lower layers receive a logger at construction time; passing nil
// yields a no-op logger so library code never has to nil-check.
package logging
