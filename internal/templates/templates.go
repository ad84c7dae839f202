package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/template"

	"github.com/vango-dev/frameloop/internal/errors"
)

// DefaultGoVersion is the go directive written when Config.GoVersion is empty.
const DefaultGoVersion = "1.24"

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project. Defaults to the base name of
	// the target directory.
	ProjectName string

	// ModulePath is the Go module path. Defaults to ProjectName.
	ModulePath string

	// Description is a short project description.
	Description string

	// GoVersion is the go directive of the generated go.mod.
	GoVersion string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E405").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: full, minimal")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates a project from the template into dir, which must be
// missing or empty. It returns the written paths relative to dir, sorted.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return nil, errors.New("E406").
			WithDetail(dir + " contains " + pluralFiles(len(entries))).
			WithSuggestion("Choose a new directory name")
	}
	cfg = cfg.withDefaults(dir)

	paths := make([]string, 0, len(t.Files))
	for relPath := range t.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func (c Config) withDefaults(dir string) Config {
	if c.ProjectName == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		c.ProjectName = filepath.Base(abs)
	}
	if c.ModulePath == "" {
		c.ModulePath = c.ProjectName
	}
	if c.Description == "" {
		c.Description = "A frameloop app"
	}
	if c.GoVersion == "" {
		c.GoVersion = DefaultGoVersion
	}
	return c
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return strconv.Itoa(n) + " entries"
}

func minimalFiles() map[string]string {
	return map[string]string{
		".gitignore": `build/
*.bundle
.env
`,
		"app/app.go": `// Package app holds the {{.ProjectName}} view.
package app

import (
	"github.com/vango-dev/frameloop/el"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Model is the app state.
type Model struct {
	Count int
}

// View renders the model.
func View(f *loop.Frame[Model], m *Model) vdom.Node {
	a := f.Arena
	return el.Main(a, vdom.Class("app"),
		el.H1(a, "{{.ProjectName}}"),
		el.Button(a, f.OnClick(increment), f.Textf("Clicked %d times", m.Count)),
	)
}

func increment(m *Model) {
	m.Count++
}
`,
		"cmd/web/main.go": `//go:build js && wasm

// Command web is {{.ProjectName}} compiled to WebAssembly.
package main

import (
	"log/slog"
	"syscall/js"

	"github.com/vango-dev/frameloop/pkg/dom/jsdom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/scheduler/jshost"

	"{{.ModulePath}}/app"
)

func main() {
	doc := jsdom.New(slog.Default())
	container := doc.ByID("app")
	if container.IsNull() {
		slog.Error("mount point #app not found")
		return
	}

	l, err := loop.Attach(doc, container, app.Model{}, app.View, loop.WithScheduler(jshost.RAF{}))
	if err != nil {
		slog.Error("attach failed", "error", err)
		return
	}
	if err := l.Render(); err != nil {
		slog.Error("first render failed", "error", err)
		return
	}

	var teardown js.Func
	teardown = js.FuncOf(func(js.Value, []js.Value) any {
		if l.Detach() == nil {
			doc.Release(container)
			js.Global().Call("removeEventListener", "pagehide", teardown)
			teardown.Release()
		}
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", teardown)
	select {}
}
`,
		"frameloop.yaml": `# {{.Description}}
listen: localhost:8080
area: server
build:
  package: ./cmd/web
  public: public
  title: {{.ProjectName}}
render:
  maxDepth: 20
  frameRate: 60
`,
		"go.mod": `module {{.ModulePath}}

go {{.GoVersion}}
`,
	}
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A counter view and its wasm entry point",
		Files:       minimalFiles(),
	}
}

// fullTemplate returns the full template: the minimal files plus a server,
// a stylesheet and tests.
func fullTemplate() *Template {
	files := minimalFiles()
	for path, content := range map[string]string{
		".env.example": `LISTEN_ADDR=localhost:8080
`,
		"README.md": `# {{.ProjectName}}

{{.Description}}

    frameloop dev            # rebuild and reload on change
    frameloop build          # compile into build/
    go run ./cmd/server      # serve build/
    go test ./...
`,
		"app/app_test.go": `package app

import (
	"testing"

	"github.com/vango-dev/frameloop/pkg/vtest"
)

func TestView(t *testing.T) {
	vtest.ExpectContains(t, View, Model{}, "Clicked 0 times")
}

func TestIncrement(t *testing.T) {
	h := vtest.Mount(t, View, Model{})
	h.Click("button")
	h.Tick()
	h.ExpectContains("Clicked 1 times")
}
`,
		"cmd/server/main.go": `// Command server serves the built {{.ProjectName}} app with the view
// pre-rendered into the index page.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vango-dev/frameloop/pkg/assets"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/server"

	"{{.ModulePath}}/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}

	index := func(w io.Writer, page render.PageData) error {
		return render.PageView(w, render.NewRenderer(render.Config{}), page, app.View, app.Model{})
	}
	srv, err := server.New(ctx, assets.NewDirStore("build"), index,
		server.WithAddr(addr),
		server.WithTitle("{{.ProjectName}}"),
	)
	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("serving", "addr", addr)
	if err := srv.Run(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
`,
		"public/css/site.css": `.app {
  font-family: system-ui, sans-serif;
  max-width: 40rem;
  margin: 2rem auto;
}
`,
	} {
		files[path] = content
	}
	return &Template{
		Name:        "full",
		Description: "Counter app with a server binary, stylesheet and tests",
		Files:       files,
	}
}
