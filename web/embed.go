// Package web provides the embedded browser UI served for every non-API
// path.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static returns the UI file tree rooted at index.html.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// "static" is embedded at compile time, so Sub cannot fail.
		panic(err)
	}
	return sub
}
