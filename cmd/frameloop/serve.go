package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/app/counter"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		listen     string
		assetsPath string
		production bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the app",
		Long: `Serve the compiled app over HTTP.

Requests for build artifacts are answered from the configured asset
source: a build directory, a bundle file or an S3 prefix. Every other
path receives the index page with the counter view pre-rendered into
the mount container, so the wasm module attaches without rebuilding it.

Examples:
  frameloop serve
  frameloop serve --listen=0.0.0.0:8080
  frameloop serve --assets=app.bundle --production`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd.OutOrStdout(), flags, listen, assetsPath, production)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config or LISTEN_ADDR)")
	cmd.Flags().StringVarP(&assetsPath, "assets", "a", "", "Build directory or bundle file to serve")
	cmd.Flags().BoolVar(&production, "production", false, "Send long-lived cache headers for versioned URLs")

	return cmd
}

func runServe(ctx context.Context, w io.Writer, flags *globalFlags, listen, assetsPath string, production bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	store, closer, err := openStore(ctx, cfg, assetsPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []server.Option{
		server.WithAddr(cfg.Listen),
		server.WithTitle(cfg.Build.Title),
		server.WithRegisterer(reg),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(cfg.Metrics.Path, reg))
	}
	if production {
		opts = append(opts, server.WithCacheControl(server.CacheControlProduction))
	}

	srv, err := server.New(ctx, store, counterIndex(cfg.Area), opts...)
	if err != nil {
		return err
	}

	success(w, "Serving on http://%s", cfg.Listen)
	if cfg.Metrics.Enabled {
		info(w, "Metrics at %s", cfg.Metrics.Path)
	}
	info(w, "Index page %s", formatBytes(int64(len(srv.Index()))))
	fmt.Fprintln(w)

	return srv.Run(ctx)
}

// counterIndex pre-renders the counter app into the index page.
func counterIndex(area string) func(w io.Writer, page render.PageData) error {
	model := counter.New(area)
	return func(w io.Writer, page render.PageData) error {
		return render.PageView(w, render.NewRenderer(render.Config{}), page, counter.View, model)
	}
}
