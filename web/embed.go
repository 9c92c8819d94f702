// Package web embeds the dashboard's static assets (stylesheet and the
// event-channel script) so the binary serves them without a build step.
//
// Usage in the API server:
//
//	import "github.com/seenimoa/brandradar/web"
//	fs := web.StaticFS() // io/fs.FS rooted at static/
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// static/ is embedded at compile time; Sub only fails on a bad path.
		panic(err)
	}
	return sub
}
