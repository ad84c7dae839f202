package build

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/internal/errors"
	"github.com/vango-dev/frameloop/pkg/assets"
	"github.com/vango-dev/frameloop/pkg/render"
)

// Artifact names written by a build.
const (
	WasmName     = "app.wasm"
	WasmExecName = "wasm_exec.js"
	IndexName    = "index.html"
	ManifestName = "manifest.json"
)

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Dir is the build directory.
	Dir string

	// WasmSize is the size of the compiled module in bytes.
	WasmSize int64

	// Copied is the number of files copied from the public directory.
	Copied int

	// Manifest fingerprints every artifact of Dir.
	Manifest *assets.Manifest
}

// IndexFunc renders the index page into w.
type IndexFunc func(w io.Writer, page render.PageData) error

// Options configures the builder.
type Options struct {
	// Out is the build directory. It is removed and recreated.
	Out string

	// Package is the main package to compile, relative to the project.
	Package string

	// LDFlags are linker flags for go build.
	LDFlags string

	// Tags are build tags.
	Tags []string

	// Public is a directory of static files copied into Out.
	Public string

	// Title is the index page title.
	Title string

	// GoBin is the go command. Defaults to "go" on PATH.
	GoBin string

	// WasmExec is the wasm_exec.js to copy. Defaults to the one shipped
	// with the toolchain.
	WasmExec string

	// Index renders index.html. A nil Index skips the page.
	Index IndexFunc

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder handles wasm builds of one project.
type Builder struct {
	dir     string
	options Options
}

// New creates a builder for the project in dir. Unset options fall back to
// the build section of cfg.
func New(cfg *config.Config, dir string, options Options) *Builder {
	if options.Package == "" {
		options.Package = cfg.Build.Package
	}
	if options.LDFlags == "" && cfg.Build.LDFlags != "" {
		options.LDFlags = cfg.Build.LDFlags
	}
	if len(options.Tags) == 0 && len(cfg.Build.Tags) > 0 {
		options.Tags = cfg.Build.Tags
	}
	if options.Public == "" && cfg.Build.Public != "" {
		options.Public = cfg.Resolve(cfg.Build.Public)
	}
	if options.Title == "" {
		options.Title = cfg.Build.Title
	}
	if options.Out == "" {
		options.Out = filepath.Join(dir, config.DefaultAssetsDir)
	}
	if options.GoBin == "" {
		options.GoBin = "go"
	}

	return &Builder{
		dir:     dir,
		options: options,
	}
}

// Build performs a build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	out := b.options.Out
	result := &Result{Dir: out}

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(out); err != nil {
		return nil, errors.New("E403").Wrap(err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, errors.New("E403").Wrap(err)
	}

	b.progress("Compiling " + b.options.Package + " to WebAssembly...")
	wasmPath := filepath.Join(out, WasmName)
	if err := b.buildWasm(ctx, wasmPath); err != nil {
		return nil, err
	}
	if info, err := os.Stat(wasmPath); err == nil {
		result.WasmSize = info.Size()
	}

	b.progress("Copying " + WasmExecName + "...")
	src, err := b.wasmExecPath(ctx)
	if err != nil {
		return nil, err
	}
	if err := copyFile(src, filepath.Join(out, WasmExecName)); err != nil {
		return nil, errors.New("E403").Wrap(err)
	}

	if b.options.Public != "" {
		b.progress("Copying static files...")
		n, err := b.CopyPublic()
		if err != nil {
			return nil, err
		}
		result.Copied = n
	}

	store := assets.NewDirStore(out)
	if b.options.Index != nil {
		b.progress("Rendering " + IndexName + "...")
		m, err := assets.BuildManifest(ctx, store)
		if err != nil {
			return nil, errors.New("E403").Wrap(err)
		}
		if err := b.writeIndex(out, assets.NewResolver(m, "/")); err != nil {
			return nil, err
		}
	}

	b.progress("Writing manifest...")
	m, err := assets.BuildManifest(ctx, store)
	if err != nil {
		return nil, errors.New("E403").Wrap(err)
	}
	if err := m.Save(filepath.Join(out, ManifestName)); err != nil {
		return nil, errors.New("E403").Wrap(err)
	}
	result.Manifest = m

	result.Duration = time.Since(start)
	return result, nil
}

// buildWasm compiles the main package.
func (b *Builder) buildWasm(ctx context.Context, output string) error {
	args := []string{"build", "-o", output}

	ldflags := "-s -w"
	if b.options.LDFlags != "" {
		ldflags = b.options.LDFlags + " " + ldflags
	}
	args = append(args, "-ldflags", ldflags)

	if len(b.options.Tags) > 0 {
		args = append(args, "-tags", strings.Join(b.options.Tags, ","))
	}

	// Trimpath for reproducible builds
	args = append(args, "-trimpath", b.options.Package)

	cmd := exec.CommandContext(ctx, b.options.GoBin, args...)
	cmd.Dir = b.dir
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm", "CGO_ENABLED=0")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.New("E401").
			WithDetail(strings.TrimSpace(stderr.String())).
			Wrap(err)
	}
	return nil
}

// wasmExecPath locates wasm_exec.js. Go 1.24 moved it from misc/wasm to
// lib/wasm.
func (b *Builder) wasmExecPath(ctx context.Context) (string, error) {
	if b.options.WasmExec != "" {
		if _, err := os.Stat(b.options.WasmExec); err != nil {
			return "", errors.New("E402").Wrap(err)
		}
		return b.options.WasmExec, nil
	}

	cmd := exec.CommandContext(ctx, b.options.GoBin, "env", "GOROOT")
	cmd.Dir = b.dir
	goroot, err := cmd.Output()
	if err != nil {
		return "", errors.New("E402").Wrap(err)
	}
	root := strings.TrimSpace(string(goroot))
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		path := filepath.Join(root, filepath.FromSlash(dir), WasmExecName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("E402").
		WithDetail("GOROOT is " + root).
		WithSuggestion("Pass --wasm-exec with the path to " + WasmExecName)
}

func (b *Builder) writeIndex(out string, resolver assets.Resolver) error {
	page := render.PageData{
		Title:    b.options.Title,
		Wasm:     resolver.Asset(WasmName),
		WasmExec: resolver.Asset(WasmExecName),
	}
	var buf bytes.Buffer
	if err := b.options.Index(&buf, page); err != nil {
		return errors.New("E404").Wrap(err)
	}
	if err := os.WriteFile(filepath.Join(out, IndexName), buf.Bytes(), 0o644); err != nil {
		return errors.New("E403").Wrap(err)
	}
	return nil
}

// CopyPublic copies the public directory into the build directory and
// returns the number of files copied. It is a no-op without a public
// directory.
func (b *Builder) CopyPublic() (int, error) {
	if b.options.Public == "" {
		return 0, nil
	}
	n, err := copyDir(b.options.Public, b.options.Out)
	if err != nil {
		return n, errors.New("E403").Wrap(err)
	}
	return n, nil
}

// Options returns the effective options.
func (b *Builder) Options() Options {
	return b.options
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// copyDir copies the regular files under src into dst, keeping their
// relative paths.
func copyDir(src, dst string) (int, error) {
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// copyFile copies a file.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Clean removes the build directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.options.Out)
}
