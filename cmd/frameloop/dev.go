package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/internal/build"
	"github.com/vango-dev/frameloop/internal/dev"
)

func devCmd(flags *globalFlags) *cobra.Command {
	var (
		listen   string
		noReload bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Build, serve and rebuild on change",
		Long: `Build the wasm app, serve it and rebuild whenever a Go file changes.

Pages served by the dev server connect back to it and reload after every
successful build. A failed build keeps the previous one online and shows
the compiler output in the page. Artifact URLs carry no fingerprint and
nothing is cached.

Examples:
  frameloop dev
  frameloop dev --listen=:3000 --no-reload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			w := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := dev.NewServer(dev.ServerOptions{
				Config:    cfg,
				Dir:       flags.configDir,
				HotReload: !noReload,
				Interval:  interval,
				Build:     build.Options{Index: counterIndex(cfg.Area)},
				OnBuild: func(res *build.Result, err error) {
					if err != nil {
						warn(w, "Build failed")
						return
					}
					success(w, "Built in %s (%s)", res.Duration.Round(time.Millisecond), formatBytes(res.WasmSize))
				},
			})

			info(w, "Serving on http://%s", cfg.Listen)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Do not reload pages after a build")
	cmd.Flags().DurationVar(&interval, "interval", 200*time.Millisecond, "File polling interval")

	return cmd
}
