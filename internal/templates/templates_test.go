package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/frameloop/internal/errors"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"full", false},
		{"api", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				var fe *errors.Error
				if !stderrors.As(err, &fe) || fe.Code != "E405" {
					t.Fatalf("Get(%q) error = %v, want E405", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.name, err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
			if tmpl.Description == "" {
				t.Error("empty Description")
			}
		})
	}
}

func TestList(t *testing.T) {
	if diff := cmp.Diff([]string{"full", "minimal"}, List()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateMinimal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo")
	tmpl, _ := Get("minimal")

	files, err := tmpl.Create(dir, Config{ModulePath: "example.com/todo", Description: "Things to do"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := []string{".gitignore", "app/app.go", "cmd/web/main.go", "frameloop.yaml", "go.mod"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	read := func(rel string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if got := read("go.mod"); got != "module example.com/todo\n\ngo "+DefaultGoVersion+"\n" {
		t.Errorf("go.mod = %q", got)
	}
	if got := read("cmd/web/main.go"); !strings.Contains(got, `"example.com/todo/app"`) || !strings.HasPrefix(got, "//go:build js && wasm") {
		t.Errorf("cmd/web/main.go missing build tag or app import:\n%s", got)
	}
	yaml := read("frameloop.yaml")
	for _, s := range []string{"# Things to do", "title: todo", "package: ./cmd/web"} {
		if !strings.Contains(yaml, s) {
			t.Errorf("frameloop.yaml missing %q:\n%s", s, yaml)
		}
	}
	if got := read("app/app.go"); !strings.Contains(got, `el.H1(a, "todo")`) {
		t.Errorf("app/app.go missing project name:\n%s", got)
	}
}

func TestCreateFull(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("full")

	files, err := tmpl.Create(dir, Config{ProjectName: "shop"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, f := range []string{"cmd/server/main.go", "app/app_test.go", "public/css/site.css", ".env.example", "README.md", "app/app.go"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Errorf("%s not created: %v", f, err)
		}
	}
	if len(files) != 10 {
		t.Errorf("created %d files, want 10: %v", len(files), files)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "go.mod"))
	if !strings.HasPrefix(string(data), "module shop\n") {
		t.Errorf("module path did not default to project name: %q", data)
	}
	readme, _ := os.ReadFile(filepath.Join(dir, "README.md"))
	if !strings.Contains(string(readme), "A frameloop app") {
		t.Errorf("default description missing from README:\n%s", readme)
	}
}

func TestFullDoesNotModifyMinimal(t *testing.T) {
	minimal, _ := Get("minimal")
	if _, ok := minimal.Files["cmd/server/main.go"]; ok {
		t.Error("minimal template contains server files")
	}
}

func TestCreateRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("minimal")
	_, err := tmpl.Create(dir, Config{})

	var fe *errors.Error
	if !stderrors.As(err, &fe) || fe.Code != "E406" {
		t.Fatalf("Create error = %v, want E406", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); !os.IsNotExist(err) {
		t.Error("go.mod written into non-empty directory")
	}
}

func TestTemplatesParse(t *testing.T) {
	for _, name := range List() {
		tmpl, _ := Get(name)
		if _, err := tmpl.Create(filepath.Join(t.TempDir(), "p"), Config{}); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
