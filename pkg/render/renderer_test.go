package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/frameloop/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	r := NewRenderer(Config{})

	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{"text", vdom.Text("hello"), "hello"},
		{"escaped text", vdom.Text(`<b>&"`), "&lt;b&gt;&amp;&quot;"},
		{"comment", vdom.Comment("a--b"), "<!--a- -b-->"},
		{
			"element with attributes",
			vdom.Elem("a", vdom.Attrs(vdom.Href("/x?a=1&b=2"), vdom.Class("btn", "primary")), nil, vdom.Text("go")),
			`<a href="/x?a=1&amp;b=2" class="btn primary">go</a>`,
		},
		{
			"boolean attribute",
			vdom.Elem("input", vdom.Attrs(vdom.Type("checkbox"), vdom.Checked()), nil),
			`<input type="checkbox" checked>`,
		},
		{
			"empty non-boolean attribute",
			vdom.Elem("input", vdom.Attrs(vdom.Value("")), nil),
			`<input value="">`,
		},
		{
			"multi is flattened",
			vdom.Elem("ul", nil, nil, vdom.Multi(vdom.Elem("li", nil, nil, vdom.Text("a")), vdom.Elem("li", nil, nil, vdom.Text("b")))),
			"<ul><li>a</li><li>b</li></ul>",
		},
		{
			"events are not rendered",
			vdom.Elem("button", nil, []vdom.EventBinding{{Event: vdom.EventClick}}, vdom.Text("+")),
			"<button>+</button>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(Config{})

	if _, err := r.RenderToString(vdom.Node{Kind: vdom.KindElement}); err == nil {
		t.Error("expected error for element without tag")
	}
	if _, err := r.RenderToString(vdom.Elem("br", nil, nil, vdom.Text("x"))); err == nil {
		t.Error("expected error for void element with children")
	}
	if _, err := r.RenderToString(vdom.Node{Kind: vdom.Kind(42)}); err == nil || !strings.HasPrefix(err.Error(), "render:") {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(Config{Pretty: true})
	got, err := r.RenderToString(vdom.Elem("div", nil, nil,
		vdom.Elem("p", nil, nil, vdom.Text("a")),
		vdom.Elem("span", nil, nil, vdom.Text("b")),
	))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <p>a</p>\n  <span>b</span>\n</div>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
