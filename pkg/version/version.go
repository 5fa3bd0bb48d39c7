// Package version holds build metadata injected via ldflags.
package version

import (
	"runtime/debug"
	"sync"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var current = sync.OnceValue(func() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
})

// Current is the running build's version, resolved once.
func Current() string {
	return current()
}

// UserAgent identifies this service to upstream apis.
func UserAgent(baseURL, contact string) string {
	ua := "osm-places/" + Current()
	switch {
	case baseURL != "" && contact != "":
		ua += " (" + baseURL + "; " + contact + ")"
	case baseURL != "":
		ua += " (" + baseURL + ")"
	case contact != "":
		ua += " (" + contact + ")"
	}
	return ua
}
