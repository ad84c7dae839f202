package config

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/frameloop/internal/errors"
)

const (
	// JSONFileName and YAMLFileName are the configuration file names, in
	// lookup order.
	JSONFileName = "frameloop.json"
	YAMLFileName = "frameloop.yaml"

	// EnvFileName is the optional environment file.
	EnvFileName = ".env"

	// DefaultListen is the default listen address.
	DefaultListen = "localhost:8080"

	// DefaultArea is the area label rendered by the server.
	DefaultArea = "server"

	// DefaultAssetsDir is the default build output directory.
	DefaultAssetsDir = "build"

	// DefaultMaxDepth is the default render depth budget.
	DefaultMaxDepth = 20

	// DefaultFrameRate is the frame rate of the server-side ticker host.
	DefaultFrameRate = 60

	// DefaultMetricsPath is where metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultPackage is the main package compiled to WebAssembly.
	DefaultPackage = "./cmd/frameloop-web"

	// DefaultTitle is the title of the generated index page.
	DefaultTitle = "frameloop"
)

// Environment variables that override file values.
const (
	EnvListen = "LISTEN_ADDR"
	EnvArea   = "FRAMELOOP_AREA"
	EnvAssets = "FRAMELOOP_ASSETS"
)

// Config represents the complete project configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"`

	// Area is the label the server pre-renders into the page.
	Area string `json:"area,omitempty" yaml:"area,omitempty"`

	// Assets selects where build artifacts are served from.
	Assets AssetsConfig `json:"assets,omitempty" yaml:"assets,omitempty"`

	// Render contains render loop settings.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// Metrics contains Prometheus endpoint settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Build contains settings for "frameloop build".
	Build BuildConfig `json:"build,omitempty" yaml:"build,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AssetsConfig selects the asset store. At most one source may be set.
type AssetsConfig struct {
	// Dir is a build output directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Bundle is a bundle file written by "frameloop bundle".
	Bundle string `json:"bundle,omitempty" yaml:"bundle,omitempty"`

	// S3 serves artifacts from a bucket.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config locates artifacts in S3.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// RenderConfig contains render loop settings.
type RenderConfig struct {
	// MaxDepth bounds how many levels of child lists a pass may descend.
	MaxDepth int `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`

	// ArenaLimit is the per-frame arena budget in bytes. Zero is unlimited.
	ArenaLimit int `json:"arenaLimit,omitempty" yaml:"arenaLimit,omitempty"`

	// FrameRate is the frame rate of the ticker host.
	FrameRate int `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`
}

// MetricsConfig contains Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// BuildConfig contains wasm build settings.
type BuildConfig struct {
	// Package is the main package compiled with GOOS=js GOARCH=wasm.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// Tags are extra build tags.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// LDFlags are extra linker flags.
	LDFlags string `json:"ldflags,omitempty" yaml:"ldflags,omitempty"`

	// Public is a directory of static files copied into the build output.
	Public string `json:"public,omitempty" yaml:"public,omitempty"`

	// Title is the title of the generated index page.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Listen: DefaultListen,
		Area:   DefaultArea,
		Render: RenderConfig{
			MaxDepth:  DefaultMaxDepth,
			FrameRate: DefaultFrameRate,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Build: BuildConfig{
			Package: DefaultPackage,
			Title:   DefaultTitle,
		},
	}
}

// Load loads the configuration of the project in dir. A missing
// configuration file is not an error: defaults apply. The .env file in dir,
// if any, is loaded into the process environment first, without overriding
// variables that are already set.
func Load(dir string) (*Config, error) {
	if err := LoadEnv(filepath.Join(dir, EnvFileName)); err != nil {
		return nil, err
	}

	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := New()
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadEnv loads a .env file. A missing file is ignored.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.New("E108").Wrap(err).WithLocationFromError(path, err)
}

// LoadFile loads a configuration file. The format follows the extension:
// .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No configuration file found at " + path).
				WithSuggestion("Create " + JSONFileName + " or omit --config to use defaults")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E102").
				Wrap(err).
				WithLocationFromError(path, err).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML")
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			e := errors.New("E102").
				Wrap(err).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
			var syntax *json.SyntaxError
			if stderrors.As(err, &syntax) {
				line, col := position(data, syntax.Offset)
				e.WithLocation(path, line, col)
			}
			return nil, e
		}
	}

	cfg.configPath = path
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset-1 && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvArea); v != "" {
		c.Area = v
	}
	if v := os.Getenv(EnvAssets); v != "" {
		c.Assets.Dir = v
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Area == "" {
		c.Area = DefaultArea
	}
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = DefaultMaxDepth
	}
	if c.Render.FrameRate == 0 {
		c.Render.FrameRate = DefaultFrameRate
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Build.Package == "" {
		c.Build.Package = DefaultPackage
	}
	if c.Build.Title == "" {
		c.Build.Title = DefaultTitle
	}
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E102").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E102").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the configuration file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Resolve returns path relative to the configuration directory.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// AssetsDir returns the resolved build directory, falling back to
// DefaultAssetsDir when no source is configured.
func (c *Config) AssetsDir() string {
	if c.Assets.Dir == "" && c.Assets.Bundle == "" && c.Assets.S3.Bucket == "" {
		return c.Resolve(DefaultAssetsDir)
	}
	return c.Resolve(c.Assets.Dir)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	_, port, err := net.SplitHostPort(c.Listen)
	if err != nil {
		return errors.New("E103").Wrap(err).
			WithSuggestion("Use host:port, for example " + DefaultListen)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("E103").
			WithDetail("Port " + strconv.Quote(port) + " must be a number between 0 and 65535")
	}

	if c.Render.MaxDepth < 1 {
		return errors.New("E104")
	}
	if c.Render.FrameRate < 1 || c.Render.FrameRate > 1000 {
		return errors.New("E105")
	}
	if c.Render.ArenaLimit < 0 {
		return errors.New("E106")
	}

	sources := 0
	for _, set := range []bool{c.Assets.Dir != "", c.Assets.Bundle != "", c.Assets.S3.Bucket != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return errors.New("E107").
			WithSuggestion("Remove all but one of assets.dir, assets.bundle and assets.s3.bucket")
	}
	return nil
}
