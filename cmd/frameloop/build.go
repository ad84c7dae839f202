package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/internal/build"
	"github.com/vango-dev/frameloop/internal/config"
)

func buildCmd(flags *globalFlags) *cobra.Command {
	var (
		out      string
		pkg      string
		tags     []string
		wasmExec string
		noIndex  bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the app to WebAssembly",
		Long: `Compile the wasm app and lay out the build directory.

The build directory holds app.wasm, wasm_exec.js, the files of
build.public, a pre-rendered index.html and manifest.json. It can be
served with "frameloop serve", packed with "frameloop bundle" or uploaded
to a bucket as is.

Examples:
  frameloop build
  frameloop build --out=dist --tags=prod
  frameloop build --package=./cmd/frameloop-web --no-index`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if out == "" {
				out = cfg.AssetsDir()
				if cfg.Dir() == "" {
					out = filepath.Join(flags.configDir, config.DefaultAssetsDir)
				}
			}
			opts := build.Options{
				Out:      out,
				Package:  pkg,
				Tags:     tags,
				WasmExec: wasmExec,
			}
			if !noIndex {
				opts.Index = counterIndex(cfg.Area)
			}
			if verbose {
				opts.OnProgress = func(step string) { info(w, "%s", step) }
			}

			res, err := build.New(cfg, flags.configDir, opts).Build(cmd.Context())
			if err != nil {
				return err
			}

			success(w, "Built %s in %s", res.Dir, res.Duration.Round(time.Millisecond))
			info(w, "%s %s", build.WasmName, formatBytes(res.WasmSize))
			if res.Copied > 0 {
				info(w, "%d static files", res.Copied)
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Build directory (default from config)")
	cmd.Flags().StringVar(&pkg, "package", "", "Main package to compile (default from config)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Build tags")
	cmd.Flags().StringVar(&wasmExec, "wasm-exec", "", "Path to wasm_exec.js (default from GOROOT)")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "Do not pre-render index.html")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each build step")

	return cmd
}
