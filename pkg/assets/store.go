// Package assets serves the build artifacts of a frameloop app: the wasm
// module, wasm_exec.js, index.html and anything else in the build output.
//
// Artifacts come from a Store. DirStore reads a build directory, BundleStore
// reads a single bbolt file produced by Pack, and S3Store reads a bucket.
// A Manifest records a content hash per artifact so pages can reference
// cache-busted URLs:
//
//	manifest, _ := assets.BuildManifest(ctx, store)
//	resolver := assets.NewResolver(manifest, "/")
//	resolver.Asset("app.wasm") // "/app.wasm?v=3f2a9c1b0d4e5f60"
package assets

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
)

// ErrNotFound is returned when a store has no artifact with the given name.
var ErrNotFound = errors.New("assets: not found")

// ErrInvalidName is returned for names that escape the store root.
var ErrInvalidName = errors.New("assets: invalid name")

// Asset is a single artifact.
type Asset struct {
	Name        string
	Data        []byte
	ContentType string
}

// Store provides artifacts by name. Names are slash separated and relative.
type Store interface {
	// Open returns the named artifact or an error wrapping ErrNotFound.
	Open(ctx context.Context, name string) (Asset, error)

	// List returns the names of all artifacts in lexical order.
	List(ctx context.Context) ([]string, error)
}

// Clean normalises a request path into a store name: the leading slash is
// stripped and the result must stay inside the store.
func Clean(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(name, "\\") || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}

// ContentType returns the media type served for name.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".js":
		return "application/javascript"
	case ".wasm":
		return "application/wasm"
	case ".html":
		return "text/html; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func newAsset(name string, data []byte) Asset {
	return Asset{Name: name, Data: data, ContentType: ContentType(name)}
}
