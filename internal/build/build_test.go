package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/internal/errors"
	"github.com/vango-dev/frameloop/pkg/assets"
	"github.com/vango-dev/frameloop/pkg/render"
)

// fakeGo writes a go command that answers "env GOROOT" with goroot and
// fakes "build" by writing the -o file. Arguments and the GOOS/GOARCH
// environment of each call are appended to the returned capture file.
func fakeGo(t *testing.T, goroot string, fail bool) (bin, capture string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake go command is a shell script")
	}
	dir := t.TempDir()
	capture = filepath.Join(dir, "capture")
	exit := "0"
	if fail {
		exit = "1"
	}
	script := fmt.Sprintf(`#!/bin/sh
echo "$GOOS/$GOARCH $*" >> %q
if [ "$1" = "env" ]; then
	echo %q
	exit 0
fi
if [ %s != 0 ]; then
	echo "main.go:3: undefined: frobnicate" >&2
	exit %s
fi
while [ $# -gt 0 ]; do
	if [ "$1" = "-o" ]; then
		printf '\000asm' > "$2"
	fi
	shift
done
`, capture, goroot, exit, exit)
	bin = filepath.Join(dir, "go")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin, capture
}

// fakeGoroot creates a GOROOT holding wasm_exec.js under lib/wasm.
func fakeGoroot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "lib", "wasm", WasmExecName), "// runtime support")
	return root
}

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestNewDefaultsFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Build.Tags = []string{"production"}
	cfg.Build.LDFlags = "-X main.version=1"

	b := New(cfg, "/project", Options{})
	want := Options{
		Out:     filepath.Join("/project", config.DefaultAssetsDir),
		Package: config.DefaultPackage,
		LDFlags: "-X main.version=1",
		Tags:    []string{"production"},
		Title:   config.DefaultTitle,
		GoBin:   "go",
	}
	if diff := cmp.Diff(want, b.options, cmp.Comparer(func(a, b IndexFunc) bool { return (a == nil) == (b == nil) }),
		cmp.Comparer(func(a, b func(string)) bool { return (a == nil) == (b == nil) })); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOptionsOverride(t *testing.T) {
	cfg := config.New()
	cfg.Build.Tags = []string{"production"}

	b := New(cfg, ".", Options{Tags: []string{"debug"}, Package: "./cmd/other", Out: "dist"})
	if b.options.Package != "./cmd/other" || b.options.Out != "dist" {
		t.Errorf("options = %+v", b.options)
	}
	if len(b.options.Tags) != 1 || b.options.Tags[0] != "debug" {
		t.Errorf("Tags = %v, want [debug]", b.options.Tags)
	}
}

func TestBuild(t *testing.T) {
	goBin, capture := fakeGo(t, fakeGoroot(t), false)
	project := t.TempDir()
	mustWrite(t, filepath.Join(project, "public", "favicon.ico"), "icon")
	mustWrite(t, filepath.Join(project, "public", "css", "site.css"), "p{}")

	cfg := config.New()
	cfg.Build.Tags = []string{"prod", "web"}
	out := filepath.Join(project, "build")
	mustWrite(t, filepath.Join(out, "stale.txt"), "from a previous build")

	var steps []string
	b := New(cfg, project, Options{
		Out:    out,
		Public: filepath.Join(project, "public"),
		GoBin:  goBin,
		Index: func(w io.Writer, page render.PageData) error {
			return render.NewRenderer(render.Config{}).RenderPage(w, page)
		},
		OnProgress: func(step string) { steps = append(steps, step) },
	})

	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "stale.txt")); !os.IsNotExist(err) {
		t.Error("output directory was not cleaned")
	}
	if res.WasmSize != 4 || res.Copied != 2 {
		t.Errorf("WasmSize = %d, Copied = %d", res.WasmSize, res.Copied)
	}
	if got := mustRead(t, filepath.Join(out, "css", "site.css")); got != "p{}" {
		t.Errorf("site.css = %q", got)
	}

	calls := mustRead(t, capture)
	for _, want := range []string{"js/wasm build -o " + filepath.Join(out, WasmName), "-ldflags -s -w", "-tags prod,web", "-trimpath " + config.DefaultPackage} {
		if !strings.Contains(calls, want) {
			t.Errorf("go calls missing %q:\n%s", want, calls)
		}
	}

	names, err := assets.NewDirStore(out).List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"app.wasm", "css/site.css", "favicon.ico", "index.html", "manifest.json", "wasm_exec.js"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("build dir (-want +got):\n%s", diff)
	}

	index := mustRead(t, filepath.Join(out, IndexName))
	wasmURL := "/app.wasm?v=" + assets.Fingerprint([]byte("\x00asm"))
	execURL := "/wasm_exec.js?v=" + assets.Fingerprint([]byte("// runtime support"))
	for _, want := range []string{`fetch("` + wasmURL + `")`, `src="` + execURL + `"`, "<title>frameloop</title>"} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %q:\n%s", want, index)
		}
	}

	saved, err := assets.Load(filepath.Join(out, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Manifest.All(), saved.All()); diff != "" {
		t.Errorf("saved manifest (-result +saved):\n%s", diff)
	}
	if fp, _ := saved.Fingerprint(IndexName); fp != assets.Fingerprint([]byte(index)) {
		t.Errorf("index fingerprint = %q", fp)
	}
	if len(steps) != 6 {
		t.Errorf("progress steps = %q", steps)
	}
}

func TestBuildWithoutIndex(t *testing.T) {
	goBin, _ := fakeGo(t, fakeGoroot(t), false)
	out := filepath.Join(t.TempDir(), "build")

	res, err := New(config.New(), t.TempDir(), Options{Out: out, GoBin: goBin}).Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Manifest.Fingerprint(IndexName); ok {
		t.Error("index.html written without an IndexFunc")
	}
	if res.Manifest.Len() != 2 {
		t.Errorf("manifest = %v", res.Manifest.All())
	}
}

func TestBuildCompileFailure(t *testing.T) {
	goBin, _ := fakeGo(t, fakeGoroot(t), true)

	_, err := New(config.New(), t.TempDir(), Options{Out: filepath.Join(t.TempDir(), "build"), GoBin: goBin}).Build(context.Background())
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %T %v, want *errors.Error", err, err)
	}
	if e.Code != "E401" {
		t.Errorf("Code = %q, want E401", e.Code)
	}
	if !strings.Contains(e.Detail, "undefined: frobnicate") {
		t.Errorf("Detail missing compiler output: %q", e.Detail)
	}
}

func TestBuildMissingWasmExec(t *testing.T) {
	goBin, _ := fakeGo(t, t.TempDir(), false)

	_, err := New(config.New(), t.TempDir(), Options{Out: filepath.Join(t.TempDir(), "build"), GoBin: goBin}).Build(context.Background())
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E402" {
		t.Fatalf("err = %v, want E402", err)
	}
}

func TestBuildExplicitWasmExec(t *testing.T) {
	goBin, _ := fakeGo(t, t.TempDir(), false)
	wasmExec := filepath.Join(t.TempDir(), WasmExecName)
	mustWrite(t, wasmExec, "// pinned")
	out := filepath.Join(t.TempDir(), "build")

	if _, err := New(config.New(), t.TempDir(), Options{Out: out, GoBin: goBin, WasmExec: wasmExec}).Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := mustRead(t, filepath.Join(out, WasmExecName)); got != "// pinned" {
		t.Errorf("wasm_exec.js = %q", got)
	}
}

func TestBuildIndexFailure(t *testing.T) {
	goBin, _ := fakeGo(t, fakeGoroot(t), false)

	_, err := New(config.New(), t.TempDir(), Options{
		Out:   filepath.Join(t.TempDir(), "build"),
		GoBin: goBin,
		Index: func(io.Writer, render.PageData) error { return stderrors.New("view failed") },
	}).Build(context.Background())
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E404" {
		t.Fatalf("err = %v, want E404", err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	mustWrite(t, src, "test content")

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile: %v", err)
	}
	if got := mustRead(t, dst); got != "test content" {
		t.Errorf("copied = %q", got)
	}
	if err := copyFile(filepath.Join(dir, "missing"), dst); err == nil {
		t.Error("copyFile of a missing source succeeded")
	}
}

func TestClean(t *testing.T) {
	out := filepath.Join(t.TempDir(), "build")
	mustWrite(t, filepath.Join(out, WasmName), "x")

	if err := New(config.New(), ".", Options{Out: out}).Clean(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("build directory still exists")
	}
}

