package internal

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const siteIndex = "index.html"

// siteHandler serves a pre-built single page application.
// Unknown paths fall back to index.html so client-side routes survive a reload.
// API paths and non-GET methods never fall back and go to notFound instead.
type siteHandler struct {
	fsys     fs.FS
	files    http.Handler
	notFound http.Handler
}

func newSiteHandler(fsys fs.FS, notFound http.Handler) *siteHandler {
	return &siteHandler{
		fsys:     fsys,
		files:    http.FileServerFS(fsys),
		notFound: notFound,
	}
}

func (h *siteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.notFound.ServeHTTP(w, r)
		return
	}
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		h.notFound.ServeHTTP(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = siteIndex
	}

	info, err := fs.Stat(h.fsys, name)
	switch {
	case err == nil && !info.IsDir():
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if name != siteIndex {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		h.files.ServeHTTP(w, r)
	case err == nil || errors.Is(err, fs.ErrNotExist):
		h.serveIndex(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// serveIndex writes index.html for directories and unknown paths.
func (h *siteHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := fs.Stat(h.fsys, siteIndex); err != nil {
		h.notFound.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFileFS(w, r, h.fsys, siteIndex)
}
