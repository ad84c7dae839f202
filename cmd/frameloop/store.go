package main

import (
	"context"
	"io"
	"os"

	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/internal/errors"
	"github.com/vango-dev/frameloop/pkg/assets"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the asset source selected by cfg. override, when set,
// names a build directory or a .bundle file and takes precedence.
func openStore(ctx context.Context, cfg *config.Config, override string) (assets.Store, io.Closer, error) {
	switch {
	case override != "":
		if info, err := os.Stat(override); err == nil && !info.IsDir() {
			return openBundle(override)
		}
		return openDir(override)
	case cfg.Assets.Bundle != "":
		return openBundle(cfg.Resolve(cfg.Assets.Bundle))
	case cfg.Assets.S3.Bucket != "":
		s3 := cfg.Assets.S3
		store, err := assets.NewS3StoreFromEnv(ctx, s3.Bucket, s3.Prefix, s3.Region)
		if err != nil {
			return nil, nil, errors.New("E203").Wrap(err)
		}
		if _, err := store.List(ctx); err != nil {
			return nil, nil, errors.New("E203").Wrap(err)
		}
		return store, nopCloser{}, nil
	default:
		return openDir(cfg.AssetsDir())
	}
}

func openDir(dir string) (assets.Store, io.Closer, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		e := errors.New("E201").WithSuggestion("GOOS=js GOARCH=wasm go build -o " + dir + "/app.wasm ./cmd/frameloop-web")
		if err != nil {
			e.Wrap(err)
		}
		return nil, nil, e
	}
	return assets.NewDirStore(dir), nopCloser{}, nil
}

func openBundle(path string) (assets.Store, io.Closer, error) {
	b, err := assets.OpenBundle(path)
	if err != nil {
		return nil, nil, errors.New("E202").Wrap(err).WithSuggestion("Create it with: frameloop bundle --out " + path)
	}
	return b, b, nil
}
