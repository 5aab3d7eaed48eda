package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Static serves the embedded browser UI. Paths that do not name a file
// fall back to index.html.
type Static struct {
	fsys  fs.FS
	files http.Handler
}

// NewStatic serves files from fsys, which must contain index.html.
func NewStatic(fsys fs.FS) *Static {
	return &Static{fsys: fsys, files: http.FileServer(http.FS(fsys))}
}

// ServeHTTP handles GET /*.
func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "index.html" {
		if info, err := fs.Stat(s.fsys, name); err == nil && !info.IsDir() {
			s.files.ServeHTTP(w, r)
			return
		}
	}
	s.index(w, r)
}

func (s *Static) index(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(s.fsys, "index.html")
	if err != nil {
		http.Error(w, "UI not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}
