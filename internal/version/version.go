// Package version exposes the application version baked in at build time.
package version

// Version is overridden via -ldflags on release builds.
var Version = "0.3.0"
