// Package version exposes the build information of an apikit service.
//
// Version, git commit, branch and build time are set at compile time via
// -ldflags; anything left unset falls back to the VCS stamp Go embeds in the
// binary:
//
//	go build -ldflags "-X github.com/kbukum/apikit/version.Version=1.0.0"
package version
