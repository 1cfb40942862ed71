// Package build holds version information injected at link time.
package build

// Set via -ldflags "-X github.com/gYonder/folio-shell/internal/build.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
