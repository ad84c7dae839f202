// Command frameloop scaffolds, builds, serves, bundles, pre-renders and
// simulates frameloop apps.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
	noColor   bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "frameloop",
		Short: "Render loop for Go web apps compiled to WebAssembly",
		Long: `frameloop renders a Go view into the browser DOM from WebAssembly.

Each frame builds a fresh virtual tree in an arena, diffs it against the
previous frame and patches the document in place. This tool serves the
compiled app, scaffolds new projects, packs build output into a bundle, pre-renders the page on
the server and runs the loop headless for inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(flags, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configDir, "config", "c", ".", "Project directory containing frameloop.json or frameloop.yaml")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		createCmd(),
		buildCmd(flags),
		devCmd(flags),
		serveCmd(flags),
		bundleCmd(flags),
		renderCmd(flags),
		simulateCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// setup configures logging and colour output.
func setup(flags *globalFlags, stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(flags.logLevel)); err != nil {
		return errors.Newf(errors.CategoryCLI, "invalid --log-level %q", flags.logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if flags.noColor || !isTerminal(stderr) {
		errors.DisableColors()
	} else {
		errors.EnableColors()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfig loads and validates the project configuration.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errors.Success("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errors.Warning("⚠"), fmt.Sprintf(format, args...))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
