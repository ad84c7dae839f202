package server

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/vango-dev/frameloop/pkg/assets"
)

// serveArtifact serves the artifact named by the request path. Paths that
// name no artifact get the index page, so client-side paths load the app.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request) {
	name, err := assets.Clean(r.URL.Path)
	if err != nil || name == "index.html" {
		s.serveIndex(w, r)
		return
	}

	a, err := s.store.Open(r.Context(), name)
	switch {
	case errors.Is(err, assets.ErrNotFound):
		s.serveIndex(w, r)
		return
	case err != nil:
		s.logger.Error("artifact read failed", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		s.count("artifact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("ETag", `"`+assets.Fingerprint(a.Data)+`"`)
	s.applyCacheHeaders(w, r)
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(a.Data))
	s.count("artifact", http.StatusOK)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(s.index)
	}
	s.count("index", http.StatusOK)
}

// applyCacheHeaders applies cache control headers based on the configuration.
func (s *Server) applyCacheHeaders(w http.ResponseWriter, r *http.Request) {
	switch s.config.CacheControl {
	case CacheControlNone:
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")

	case CacheControlProduction:
		if r.URL.Query().Get("v") != "" {
			// Versioned URLs change whenever the content does.
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		}
	}
}
