package errors

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E101",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "assets error",
			code:    "E202",
			wantMsg: "Bundle could not be opened",
			wantCat: CategoryAssets,
		},
		{
			name:    "render error",
			code:    "E303",
			wantMsg: "Document structure changed outside the loop",
			wantCat: CategoryRender,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestCodesAreCategorisedByRange(t *testing.T) {
	want := map[byte]Category{'1': CategoryConfig, '2': CategoryAssets, '3': CategoryRender, '4': CategoryBuild}
	for _, code := range Codes() {
		tmpl, _ := Lookup(code)
		if tmpl.Category != want[code[1]] {
			t.Errorf("%s: category %q, want %q", code, tmpl.Category, want[code[1]])
		}
		if tmpl.Message == "" || tmpl.Detail == "" {
			t.Errorf("%s: missing message or detail", code)
		}
		if got := New(code).DocURL; !strings.HasSuffix(got, "#"+code) {
			t.Errorf("%s: DocURL %q", code, got)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	err := New("E202").Wrap(fs.ErrNotExist)
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is does not see the wrapped error")
	}
	if got := err.Error(); got != "E202: Bundle could not be opened: file does not exist" {
		t.Errorf("Error() = %q", got)
	}

	if FromError(nil, "E202") != nil {
		t.Error("FromError(nil) should be nil")
	}
	if FromError(err, "E301") != err {
		t.Error("FromError should pass *Error through")
	}
	if got := FromError(fs.ErrClosed, "E301"); got.Code != "E301" || got.Wrapped != fs.ErrClosed {
		t.Errorf("FromError wrapped = %+v", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown command %q", "serv")
	if err.Code != "" || err.Category != CategoryCLI {
		t.Errorf("unexpected %+v", err)
	}
	if got := err.Error(); got != `unknown command "serv"` {
		t.Errorf("Error() = %q", got)
	}
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frameloop.yaml")
	content := "listen: localhost:8080\nrender:\n  maxDepth: 20\n\tframeRate: 60\nmetrics:\n  enabled: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWithLocationFromError(t *testing.T) {
	path := writeConfig(t)
	parseErr := stderrors.New("yaml: line 4: found character that cannot start any token")

	err := New("E102").WithLocationFromError(path, parseErr)
	if err.Location == nil || err.Location.Line != 4 {
		t.Fatalf("Location = %v", err.Location)
	}
	if len(err.Context) != 5 || err.Context[1] != "  maxDepth: 20" {
		t.Errorf("Context = %q", err.Context)
	}

	if New("E102").WithLocationFromError(path, stderrors.New("no position")).Location != nil {
		t.Error("location set without a line reference")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").
		WithLocation(writeConfig(t), 4, 2).
		WithSuggestion("Indent nested keys with spaces").
		Wrap(stderrors.New("tab found"))
	out := err.Format()

	for _, want := range []string{
		"ERROR E102: Invalid configuration file",
		"frameloop.yaml:4:2",
		"→    4 │ \tframeRate: 60",
		"Cause: tab found",
		"Hint: Indent nested keys with spaces",
		"Learn more: " + docBase + "E102",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors emitted while disabled")
	}
}

func TestFormatCompactAndJSON(t *testing.T) {
	err := New("E103")
	err.Location = &Location{File: "frameloop.json", Line: 2}
	if got := err.FormatCompact(); got != "frameloop.json:2: E103: Invalid listen address" {
		t.Errorf("FormatCompact() = %q", got)
	}

	var decoded map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("FormatJSON is not JSON: %v", e)
	}
	if decoded["code"] != "E103" || decoded["category"] != "config" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Print(&b, stderrors.New("plain"))
	if !strings.Contains(b.String(), "ERROR: plain") {
		t.Errorf("Print(plain) = %q", b.String())
	}
	b.Reset()
	Print(&b, New("E205"))
	if !strings.Contains(b.String(), "ERROR E205") {
		t.Errorf("Print(coded) = %q", b.String())
	}
}
