package assets

// Resolver turns artifact names into URL paths.
type Resolver interface {
	// Asset resolves an artifact name to its URL path, including any
	// configured prefix and cache-busting query.
	//
	// Example:
	//   resolver.Asset("app.wasm") → "/app.wasm?v=3f2a9c1b0d4e5f60"
	Asset(name string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with a path prefix.
// Names missing from the manifest resolve without a query.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(name string) string {
	if fp, ok := r.manifest.Fingerprint(name); ok {
		return r.prefix + name + "?v=" + fp
	}
	return r.prefix + name
}

// passthrough returns names unchanged (for development mode).
type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that only applies the prefix.
// Use this in development where artifacts change on every build.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(name string) string {
	return p.prefix + name
}
