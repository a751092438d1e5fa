// Package config holds build-time version metadata, surfaced by the CLI's
// --version flag.
package config

// Version is overridden at build time via -ldflags "-X
// github.com/kestrelfw/testfw/internal/config.Version=...".
var Version = "dev"
