// Package version reports build information.
package version

// Version is set using ldflags at build time.
var Version = "dev"

// Info is returned by the /version endpoint and shown on web pages.
type Info struct {
	Version string `json:"version"`
	Mode    string `json:"mode"`
}

// Get returns the build version together with the running mode.
func Get(mode string) Info {
	return Info{Version: Version, Mode: mode}
}
