package assets

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names inside a bundle file.
const (
	bucketAssets   = "assets"
	bucketManifest = "manifest"
)

// BundleStore serves artifacts packed into a single bbolt file.
type BundleStore struct {
	db *bolt.DB
}

var _ Store = (*BundleStore)(nil)

// OpenBundle opens a bundle read-only.
func OpenBundle(path string) (*BundleStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("assets: open bundle: %w", err)
	}
	return &BundleStore{db: db}, nil
}

// Close closes the bundle file.
func (s *BundleStore) Close() error {
	return s.db.Close()
}

func (s *BundleStore) Open(ctx context.Context, name string) (Asset, error) {
	name, err := Clean(name)
	if err != nil {
		return Asset{}, err
	}
	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAssets))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		v := b.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return Asset{}, err
	}
	return newAsset(name, data), nil
}

func (s *BundleStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAssets))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Manifest returns the manifest stored with the bundle.
func (s *BundleStore) Manifest() (*Manifest, error) {
	m := NewManifest()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketManifest))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			m.Set(string(k), string(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Pack copies every artifact of src into a new bundle at path, together with
// its manifest. It returns the number of artifacts written.
func Pack(ctx context.Context, path string, src Store) (int, error) {
	names, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return 0, fmt.Errorf("assets: create bundle: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketAssets, bucketManifest} {
			if err := tx.DeleteBucket([]byte(bucket)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		assets, err := tx.CreateBucket([]byte(bucketAssets))
		if err != nil {
			return err
		}
		manifest, err := tx.CreateBucket([]byte(bucketManifest))
		if err != nil {
			return err
		}
		for _, name := range names {
			a, err := src.Open(ctx, name)
			if err != nil {
				return err
			}
			if err := assets.Put([]byte(name), a.Data); err != nil {
				return err
			}
			if err := manifest.Put([]byte(name), []byte(Fingerprint(a.Data))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("assets: pack: %w", err)
	}
	return len(names), nil
}
