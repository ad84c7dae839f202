package loop

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/scheduler"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

type rows struct {
	n     int
	label int
}

func rowsView(f *Frame[rows], m *rows) vdom.Node {
	children := f.NodesSeq(m.n, func(yield func(vdom.Node) bool) {
		for i := 0; i < m.n; i++ {
			row := f.Element("li", f.Attrs(vdom.Data("row", f.Sprintf("%d", i))), nil,
				f.Textf("row %d of %d", i, m.label),
			)
			if !yield(row) {
				return
			}
		}
	})
	return vdom.Node{Kind: vdom.KindElement, Tag: "ul", Children: children}
}

func attachBench[M any](b *testing.B, model M, view View[M]) (*Loop[M, *html.Node], *scheduler.Manual, *dom.Headless) {
	b.Helper()
	doc := dom.NewHeadless()
	container := doc.CreateElement("div")
	doc.AppendChild(doc.Body(), container)
	host := scheduler.NewManual()
	l, err := Attach(doc, container, model, view, WithScheduler(host))
	if err != nil {
		b.Fatal(err)
	}
	if err := l.Render(); err != nil {
		b.Fatal(err)
	}
	return l, host, doc
}

// === Render Benchmarks ===

func BenchmarkRender_Unchanged(b *testing.B) {
	l, _, _ := attachBench(b, rows{n: 100}, rowsView)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := l.Render(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender_AllTextChanged(b *testing.B) {
	l, _, _ := attachBench(b, rows{n: 100}, rowsView)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Model().label = i
		if err := l.Render(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender_GrowShrink(b *testing.B) {
	l, _, _ := attachBench(b, rows{n: 50}, rowsView)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			l.Model().n = 100
		} else {
			l.Model().n = 50
		}
		if err := l.Render(); err != nil {
			b.Fatal(err)
		}
	}
}

// === Event Benchmarks ===

func BenchmarkClickAndTick(b *testing.B) {
	l, host, doc := attachBench(b, model{area: "bench"}, counterView)
	p := doc.ChildNodes(l.Container())[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := doc.Click(p); err != nil {
			b.Fatal(err)
		}
		host.Tick()
	}
}
