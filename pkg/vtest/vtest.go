package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/render"
)

// RenderToString renders view against model on a static frame. It fails the
// test if the view cannot be rendered.
func RenderToString[M any](t testing.TB, view loop.View[M], model M) string {
	t.Helper()
	var sb strings.Builder
	if err := render.RenderView(&sb, render.NewRenderer(render.Config{}), view, model); err != nil {
		t.Fatalf("vtest: render: %v", err)
	}
	return sb.String()
}

// ExpectContains asserts that the rendered view contains expected.
func ExpectContains[M any](t testing.TB, view loop.View[M], model M, expected string) {
	t.Helper()
	expectContains(t, RenderToString(t, view, model), expected)
}

// ExpectNotContains asserts that the rendered view does not contain
// unexpected.
func ExpectNotContains[M any](t testing.TB, view loop.View[M], model M, unexpected string) {
	t.Helper()
	expectNotContains(t, RenderToString(t, view, model), unexpected)
}

// ExpectElement asserts that the rendered view contains a tag element.
func ExpectElement[M any](t testing.TB, view loop.View[M], model M, tag string) {
	t.Helper()
	html := RenderToString(t, view, model)
	if !strings.Contains(html, "<"+tag+">") && !strings.Contains(html, "<"+tag+" ") {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the rendered view carries attr="value".
func ExpectAttribute[M any](t testing.TB, view loop.View[M], model M, attr, value string) {
	t.Helper()
	html := RenderToString(t, view, model)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func expectContains(t testing.TB, html, expected string) {
	t.Helper()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

func expectNotContains(t testing.TB, html, unexpected string) {
	t.Helper()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
