package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// registerStatic раздаёт UI из каталога dir: индекс с запретом индексации
// и кеширования, плюс robots.txt и favicon.
func registerStatic(r chi.Router, dir string) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		setSecurityHeaders(w)
		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	})
	r.Get("/robots.txt", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(dir, "robots.txt"))
	})
	r.Get("/favicon.ico", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(dir, "favicon.ico"))
	})
}

func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	h.Set("Pragma", "no-cache")
}
