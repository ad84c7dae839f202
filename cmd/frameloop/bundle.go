package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/internal/errors"
	"github.com/vango-dev/frameloop/pkg/assets"
)

func bundleCmd(flags *globalFlags) *cobra.Command {
	var (
		from     string
		out      string
		manifest string
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Pack build output into a single bundle file",
		Long: `Pack every file of a build directory into a bundle.

The bundle is a single bbolt file holding each artifact and its content
fingerprint. Serve it with: frameloop serve --assets=<bundle>

Examples:
  frameloop bundle
  frameloop bundle --from=build --out=app.bundle --manifest=manifest.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, flags, from, out, manifest)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Build directory (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "app.bundle", "Bundle file to write")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Also write the manifest as JSON to this path")

	return cmd
}

func runBundle(cmd *cobra.Command, flags *globalFlags, from, out, manifestPath string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if from == "" {
		from = cfg.AssetsDir()
		if from == "" {
			return errors.New("E205")
		}
	}
	src, _, err := openDir(from)
	if err != nil {
		return err
	}

	start := time.Now()
	n, err := assets.Pack(ctx, out, src)
	if err != nil {
		return errors.New("E204").Wrap(err)
	}

	b, err := assets.OpenBundle(out)
	if err != nil {
		return errors.New("E202").Wrap(err)
	}
	defer b.Close()
	m, err := b.Manifest()
	if err != nil {
		return errors.New("E202").Wrap(err)
	}

	success(w, "Packed %d artifacts in %s", n, time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(w)
	printManifest(ctx, w, b, m)

	if manifestPath != "" {
		if err := m.Save(manifestPath); err != nil {
			return errors.New("E204").Wrap(err)
		}
		info(w, "Manifest written to %s", filepath.Clean(manifestPath))
	}
	if m.Len() == 0 {
		warn(w, "%s is empty", from)
	}
	return nil
}

func printManifest(ctx context.Context, w io.Writer, store assets.Store, m *assets.Manifest) {
	names, err := store.List(ctx)
	if err != nil {
		return
	}
	for _, name := range names {
		fp, _ := m.Fingerprint(name)
		size := ""
		if a, err := store.Open(ctx, name); err == nil {
			size = formatBytes(int64(len(a.Data)))
		}
		info(w, "%-24s %s  %s", name, fp, size)
	}
	fmt.Fprintln(w)
}
