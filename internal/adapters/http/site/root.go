// Package site serves the embedded landing page.
package site

import (
	"net/http"
)

// Register attaches the landing page to mux at "/". Other unmatched paths
// get a plain 404.
func Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(FS())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
