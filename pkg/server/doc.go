// Package server serves a frameloop app over HTTP: build artifacts from an
// assets.Store, a pre-rendered index page for every other path, and the
// Prometheus endpoint.
package server
