package loop

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"

	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/diff"
	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/scheduler"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

type model struct {
	area string
	n    int
}

func counterView(f *Frame[model], m *model) vdom.Node {
	return f.Element("p", nil, f.OnClick(func(m *model) { m.n++ }),
		f.Textf("Hello from %s! Counter is %d", m.area, m.n),
	)
}

type harness struct {
	doc  *dom.Headless
	body *html.Node
	host *scheduler.Manual
	loop *Loop[model, *html.Node]
}

func attach(t *testing.T, view View[model], opts ...Option) *harness {
	t.Helper()
	h := &harness{
		doc:  dom.NewHeadless(dom.WithJournal(true)),
		host: scheduler.NewManual(),
	}
	h.body = h.doc.Body()
	opts = append([]Option{WithScheduler(h.host), WithPoison(true)}, opts...)
	l, err := Attach(h.doc, h.body, model{area: "test"}, view, opts...)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	h.loop = l
	return h
}

func (h *harness) p() *html.Node {
	return h.doc.ChildNodes(h.body)[0]
}

func (h *harness) click(t *testing.T) {
	t.Helper()
	if _, err := h.doc.Click(h.p()); err != nil {
		t.Fatalf("Click: %v", err)
	}
}

func (h *harness) text() string {
	return h.doc.InnerHTML(h.body)
}

func TestCounterScenario(t *testing.T) {
	h := attach(t, counterView)

	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}
	if got, want := h.text(), "<p>Hello from test! Counter is 0</p>"; got != want {
		t.Fatalf("after first render: %q, want %q", got, want)
	}
	p := h.p()

	h.doc.ResetCounts()
	h.click(t)
	if h.loop.Model().n != 1 {
		t.Fatalf("n = %d after click, want 1", h.loop.Model().n)
	}
	if h.host.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1 scheduled frame", h.host.Pending())
	}
	h.host.Tick()

	if got, want := h.text(), "<p>Hello from test! Counter is 1</p>"; got != want {
		t.Errorf("after click: %q, want %q", got, want)
	}
	c := h.doc.Counts()
	if c.TextSet != 1 || c.Mutations() != 1 {
		t.Errorf("Counts = %+v, want exactly one text update", c)
	}
	if c.Retargeted != 1 {
		t.Errorf("Retargeted = %d, want 1", c.Retargeted)
	}
	if h.p() != p {
		t.Error("paragraph should not be recreated")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	h := attach(t, counterView)
	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}

	h.doc.ResetCounts()
	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}

	if n := h.doc.Counts().Mutations(); n != 0 {
		t.Errorf("second render made %d mutations: %v", n, h.doc.Journal())
	}
	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}
	if got, want := h.text(), "<p>Hello from test! Counter is 0</p>"; got != want {
		t.Errorf("after unchanged renders: %q, want %q", got, want)
	}
}

// Text the diff leaves untouched must survive the reset of the arena it was
// first built in, even when later frames lay out the arena differently.
func TestUntouchedTextSurvivesArenaReuse(t *testing.T) {
	view := func(f *Frame[model], m *model) vdom.Node {
		return f.Element("div", nil, nil,
			f.Element("b", nil, nil, f.Text(m.area)),
			f.Element("i", nil, nil, f.Textf("count %d", m.n)),
		)
	}
	h := attach(t, view)
	h.loop.Model().area = "ab"
	h.loop.Model().n = 1
	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}

	h.loop.Model().area = "abcdef"
	for i := 0; i < 3; i++ {
		if err := h.loop.Render(); err != nil {
			t.Fatal(err)
		}
		if got, want := h.text(), "<div><b>abcdef</b><i>count 1</i></div>"; got != want {
			t.Fatalf("render %d: %q, want %q", i+2, got, want)
		}
	}
}

func TestTwoRapidEvents(t *testing.T) {
	h := attach(t, counterView)
	_ = h.loop.Render()

	h.click(t)
	h.click(t)
	h.host.Tick()

	if h.loop.Model().n != 2 {
		t.Errorf("n = %d, want 2", h.loop.Model().n)
	}
	if fired := h.loop.Stats().Scheduler.Fired; fired != 1 {
		t.Errorf("renders fired = %d, want 1", fired)
	}
	if !strings.Contains(h.text(), "Counter is 2") {
		t.Errorf("text = %q", h.text())
	}
}

func TestPending(t *testing.T) {
	h := attach(t, counterView)
	_ = h.loop.Render()
	if h.loop.Pending() {
		t.Fatal("Pending before any event")
	}

	h.click(t)
	if !h.loop.Pending() {
		t.Fatal("Pending = false after click")
	}
	h.host.Tick()
	if h.loop.Pending() {
		t.Error("Pending = true after the frame fired")
	}

	h.click(t)
	_ = h.loop.Detach()
	if h.loop.Pending() {
		t.Error("Pending = true after Detach")
	}
}

func TestOldHandlesRevokedAfterRender(t *testing.T) {
	h := attach(t, counterView)
	_ = h.loop.Render()
	old, _ := h.doc.Listener(h.p(), vdom.EventClick, vdom.BindingOptions{})

	_ = h.loop.Render()

	if err := h.loop.Dispatch(old, callback.NewEvent(vdom.EventClick)); err != nil {
		t.Fatal(err)
	}
	if h.loop.Model().n != 0 {
		t.Error("handle of a replaced frame reached the model")
	}
	st := h.loop.Stats()
	if st.Stale != 1 || st.Registry.Live != 1 || st.LiveHandles != 1 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestDetachThenLateDispatch(t *testing.T) {
	h := attach(t, counterView)
	_ = h.loop.Render()
	handle, _ := h.doc.Listener(h.p(), vdom.EventClick, vdom.BindingOptions{})
	h.click(t) // leaves a frame pending

	if err := h.loop.Detach(); err != nil {
		t.Fatal(err)
	}
	if err := h.loop.Detach(); err != nil {
		t.Errorf("second Detach = %v", err)
	}

	h.click(t)
	if err := h.loop.Dispatch(handle, callback.NewEvent(vdom.EventClick)); err != nil {
		t.Fatal(err)
	}
	if ran := h.host.Tick(); ran != 0 {
		t.Errorf("pending frame ran %d callbacks after detach", ran)
	}

	if h.loop.Model().n != 1 {
		t.Errorf("n = %d, want 1", h.loop.Model().n)
	}
	if !errors.Is(h.loop.Render(), ErrDetached) {
		t.Error("Render after Detach should return ErrDetached")
	}
	if h.loop.ScheduleRender() {
		t.Error("ScheduleRender after Detach should not request a frame")
	}
	st := h.loop.Stats()
	if st.Registry.Live != 0 || st.Registry.Receivers != 0 {
		t.Errorf("Registry = %+v, want empty", st.Registry)
	}
	if st.Stale != 2 {
		t.Errorf("Stale = %d, want 2", st.Stale)
	}
}

func TestReentrantRender(t *testing.T) {
	var l *Loop[model, *html.Node]
	var inner error
	h := attach(t, func(f *Frame[model], m *model) vdom.Node {
		inner = l.Render()
		return f.Text("x")
	})
	l = h.loop

	if err := l.Render(); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrRenderInProgress) {
		t.Errorf("nested Render = %v, want ErrRenderInProgress", inner)
	}
	if l.Stats().Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", l.Stats().Rejected)
	}
}

func TestAbortOnStructuralMismatch(t *testing.T) {
	h := attach(t, counterView)
	_ = h.loop.Render()
	handle, _ := h.doc.Listener(h.p(), vdom.EventClick, vdom.BindingOptions{})

	// Someone else replaces the paragraph behind the loop's back.
	h.doc.ReplaceChild(h.body, h.doc.CreateElement("div"), h.p())
	h.doc.ResetCounts()

	err := h.loop.Render()
	var re *RenderError
	if !errors.As(err, &re) || re.Op != "diff" || !errors.Is(err, diff.ErrStructuralMismatch) {
		t.Fatalf("Render = %v, want diff RenderError", err)
	}
	if h.doc.Counts().Mutations() != 0 {
		t.Errorf("aborted render mutated the document: %v", h.doc.Journal())
	}

	st := h.loop.Stats()
	if st.Aborted != 1 || st.Registry.Live != 1 {
		t.Errorf("Stats = %+v, want one abort and only the displayed frame's handle live", st)
	}
	// The displayed frame's listener still works.
	if err := h.loop.Dispatch(handle, callback.NewEvent(vdom.EventClick)); err != nil {
		t.Fatal(err)
	}
	if h.loop.Model().n != 1 {
		t.Errorf("n = %d, want 1", h.loop.Model().n)
	}
}

func TestAbortKeepsDisplayedHandlesLive(t *testing.T) {
	fail := false
	h := attach(t, func(f *Frame[model], m *model) vdom.Node {
		node := counterView(f, m)
		if fail {
			panic("view failed")
		}
		return node
	})
	_ = h.loop.Render()
	handle, _ := h.doc.Listener(h.p(), vdom.EventClick, vdom.BindingOptions{})

	fail = true
	err := h.loop.Render()
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "view failed" {
		t.Fatalf("Render = %v, want PanicError", err)
	}

	if err := h.loop.Dispatch(handle, callback.NewEvent(vdom.EventClick)); err != nil {
		t.Fatal(err)
	}
	if h.loop.Model().n != 1 {
		t.Errorf("displayed frame's handler should still work: n = %d", h.loop.Model().n)
	}
	if live := h.loop.Stats().Registry.Live; live != 1 {
		t.Errorf("Live = %d, want 1", live)
	}

	fail = false
	if err := h.loop.Render(); err != nil {
		t.Fatalf("render after abort: %v", err)
	}
	if !strings.Contains(h.text(), "Counter is 1") {
		t.Errorf("text = %q", h.text())
	}
}

func TestAbortOnArenaExhaustion(t *testing.T) {
	big := false
	h := attach(t, func(f *Frame[model], m *model) vdom.Node {
		if big {
			return f.Text(strings.Repeat("x", 1<<16))
		}
		return counterView(f, m)
	}, WithArenaLimit(4096))
	if err := h.loop.Render(); err != nil {
		t.Fatal(err)
	}
	before := h.text()

	big = true
	err := h.loop.Render()

	if !errors.Is(err, arena.ErrExhausted) {
		t.Fatalf("Render = %v, want ErrExhausted", err)
	}
	if h.text() != before {
		t.Errorf("document changed after aborted render: %q", h.text())
	}
}

func TestRenderErrorFromScheduledFrameIsLogged(t *testing.T) {
	fail := false
	h := attach(t, func(f *Frame[model], m *model) vdom.Node {
		if fail {
			panic("boom")
		}
		return counterView(f, m)
	})
	_ = h.loop.Render()

	fail = true
	h.click(t)
	h.host.Tick()

	st := h.loop.Stats()
	if st.Scheduler.Failed != 1 || st.Aborted != 1 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestAttachMirrorsExistingContent(t *testing.T) {
	doc := dom.NewHeadless(dom.WithJournal(true))
	body, err := doc.Parse(`<body><p>Hello from test! Counter is 0</p></body>`)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Attach(doc, body, model{area: "test"}, counterView)
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Render(); err != nil {
		t.Fatal(err)
	}

	c := doc.Counts()
	if c.ListenersAdded != 1 || c.Mutations() != 1 {
		t.Errorf("Counts = %+v, want only the click listener attached", c)
	}
}

func TestAttachUnsupportedContent(t *testing.T) {
	doc := dom.NewHeadless()
	root := doc.Root()
	root.InsertBefore(&html.Node{Type: html.DoctypeNode, Data: "html"}, root.FirstChild)

	if _, err := Attach(doc, root, model{}, counterView); !errors.Is(err, dom.ErrUnsupportedNode) {
		t.Errorf("Attach = %v, want ErrUnsupportedNode", err)
	}
}

func TestDepthOption(t *testing.T) {
	h := attach(t, func(f *Frame[model], m *model) vdom.Node {
		return f.Element("div", nil, nil, f.Element("p", nil, nil, f.Text("deep")))
	}, WithDepth(2))

	if err := h.loop.Render(); !errors.Is(err, diff.ErrDepthExceeded) {
		t.Errorf("Render = %v, want ErrDepthExceeded", err)
	}
}

type recordingObserver struct {
	reports []RenderReport
	stale   []bool
}

func (o *recordingObserver) RenderDone(r RenderReport) { o.reports = append(o.reports, r) }
func (o *recordingObserver) Dispatched(stale bool)     { o.stale = append(o.stale, stale) }

func TestObserver(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	h := attach(t, counterView, WithObserver(Observers(a, b)))

	_ = h.loop.Render()
	h.click(t)
	h.host.Tick()

	for _, o := range []*recordingObserver{a, b} {
		if len(o.reports) != 2 || len(o.stale) != 1 || o.stale[0] {
			t.Fatalf("observer saw %d reports, %v dispatches", len(o.reports), o.stale)
		}
		first, second := o.reports[0], o.reports[1]
		if first.Frame != 1 || first.Created != 2 || first.Handles != 1 {
			t.Errorf("first report = %+v", first)
		}
		if second.Frame != 2 || second.Retargets != 1 || second.Patches != 2 || second.Err != nil {
			t.Errorf("second report = %+v", second)
		}
	}
}

func TestStaticFrame(t *testing.T) {
	a := arena.New()
	f := StaticFrame[model](a)

	node := counterView(f, &model{area: "x", n: 3})

	if !f.Static() || node.Events != nil {
		t.Errorf("static frame produced bindings: %+v", node.Events)
	}
	if node.Children[0].Text != "Hello from x! Counter is 3" {
		t.Errorf("text = %q", node.Children[0].Text)
	}
}

// Any interleaving of clicks, frames, forced renders and aborted renders
// keeps the document in sync with the model, never reads a reset arena and
// leaves exactly the displayed frame's handles live.
func TestLoopProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("document follows model", prop.ForAll(
		func(ops []uint8) bool {
			fail := false
			h := &harness{doc: dom.NewHeadless(), host: scheduler.NewManual()}
			h.body = h.doc.Body()
			l, err := Attach(h.doc, h.body, model{area: "prop"}, func(f *Frame[model], m *model) vdom.Node {
				node := counterView(f, m)
				if fail {
					panic("fail")
				}
				return node
			}, WithScheduler(h.host), WithPoison(true))
			if err != nil || l.Render() != nil {
				return false
			}
			h.loop = l

			for _, op := range ops {
				switch op % 4 {
				case 0:
					if _, err := h.doc.Click(h.p()); err != nil {
						return false
					}
				case 1:
					h.host.Tick()
				case 2:
					if l.Render() != nil {
						return false
					}
				case 3:
					fail = true
					if l.Render() == nil {
						return false
					}
					fail = false
				}
			}
			h.host.Tick()
			if l.Render() != nil {
				return false
			}

			st := l.Stats()
			want := "<p>Hello from prop! Counter is " + strconv.Itoa(l.Model().n) + "</p>"
			return h.text() == want &&
				st.StaleReads == 0 &&
				st.Registry.Live == st.LiveHandles &&
				st.LiveHandles == 1
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
