package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"
)

// fingerprintLen is the number of hex digits kept from the content hash.
const fingerprintLen = 16

// Fingerprint returns the short content hash used for cache busting.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Manifest maps artifact names to content fingerprints.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// BuildManifest fingerprints every artifact of store.
func BuildManifest(ctx context.Context, store Store) (*Manifest, error) {
	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	m := NewManifest()
	for _, name := range names {
		a, err := store.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		m.Set(name, Fingerprint(a.Data))
	}
	return m, nil
}

// Load reads a manifest written by Save: {"app.wasm": "3f2a9c1b0d4e5f60"}.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Manifest{entries: entries}, nil
}

// Save writes the manifest as JSON.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m.All(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Fingerprint returns the fingerprint recorded for name.
func (m *Manifest) Fingerprint(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fp, ok := m.entries[name]
	return fp, ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(name, fingerprint string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = fingerprint
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
