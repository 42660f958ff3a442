// Package main hosts the marquee CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against the backing store and directory provider: venue search and
// creation, rating submission, profile maintenance, identity inspection,
// cache clearing, and configuration scaffolding. It centralizes
// configuration resolution and client wiring so subcommands can focus on
// user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
