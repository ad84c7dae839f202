package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/frameloop/app/counter"
	"github.com/vango-dev/frameloop/internal/config"
	"github.com/vango-dev/frameloop/pkg/dom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/metrics"
	"github.com/vango-dev/frameloop/pkg/render"
	"github.com/vango-dev/frameloop/pkg/scheduler"
	"github.com/vango-dev/frameloop/pkg/tracing"
)

// simulation describes a headless run of the counter app.
type simulation struct {
	area      string
	clicks    int
	realtime  bool // drive frames with a Ticker instead of a manual host
	prerender bool // attach to pre-rendered markup instead of an empty container
	cfg       *config.Config
}

// simulationResult is what a simulation observed.
type simulationResult struct {
	HTML    string
	Stats   loop.Stats
	Counts  dom.Counts
	Journal []dom.Mutation
}

func simulateCmd(flags *globalFlags) *cobra.Command {
	sim := simulation{}
	var journal bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the counter app against a headless document",
		Long: `Attach the render loop to a headless document, click the counter and
print the resulting markup with loop, diff and document statistics.

Clicks are delivered through the document's event dispatch. With
--realtime, frames are driven by a ticker at render.frameRate and clicks
are posted to its event loop, so bursts of clicks between two frames
coalesce into one render.

Examples:
  frameloop simulate --clicks=3
  frameloop simulate --clicks=50 --realtime
  frameloop simulate --prerender --journal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			sim.cfg = cfg
			if sim.area == "" {
				sim.area = cfg.Area
			}
			res, err := sim.run(cmd.Context())
			if err != nil {
				return err
			}
			printSimulation(cmd.OutOrStdout(), res, journal)
			return nil
		},
	}

	cmd.Flags().StringVar(&sim.area, "area", "", "Area label (default from config)")
	cmd.Flags().IntVarP(&sim.clicks, "clicks", "n", 3, "Number of clicks")
	cmd.Flags().BoolVar(&sim.realtime, "realtime", false, "Drive frames with a ticker at render.frameRate")
	cmd.Flags().BoolVar(&sim.prerender, "prerender", false, "Start from server pre-rendered markup")
	cmd.Flags().BoolVar(&journal, "journal", false, "Print every document mutation")

	return cmd
}

func (s simulation) run(ctx context.Context) (simulationResult, error) {
	doc := dom.NewHeadless(dom.WithJournal(true))
	container, err := s.container(doc)
	if err != nil {
		return simulationResult{}, err
	}

	reg := prometheus.NewRegistry()
	observer := loop.Observers(
		metrics.New(metrics.WithRegistry(reg)),
		tracing.New(tracing.WithContext(ctx)),
	)
	opts := []loop.Option{
		loop.WithDepth(s.cfg.Render.MaxDepth),
		loop.WithArenaLimit(s.cfg.Render.ArenaLimit),
		loop.WithObserver(observer),
	}

	if s.realtime {
		return s.runTicker(ctx, doc, container, opts)
	}

	host := scheduler.NewManual()
	l, err := loop.Attach(doc, container, counter.New(s.area), counter.View, append(opts, loop.WithScheduler(host))...)
	if err != nil {
		return simulationResult{}, err
	}
	defer l.Detach()

	if err := l.Render(); err != nil {
		return simulationResult{}, err
	}
	for i := 0; i < s.clicks; i++ {
		if err := click(doc, container); err != nil {
			return simulationResult{}, err
		}
		host.Tick()
	}
	return result(doc, container, l), nil
}

// runTicker runs the simulation on a Ticker's event loop. The loop and the
// document are only touched from posted tasks and frame callbacks.
func (s simulation) runTicker(ctx context.Context, doc *dom.Headless, container *html.Node, opts []loop.Option) (simulationResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := scheduler.NewTicker(s.cfg.Render.FrameRate)
	runErr := make(chan error, 1)
	go func() { runErr <- ticker.Run(ctx) }()

	var (
		l   *loop.Loop[counter.Model, *html.Node]
		err error
	)
	if postErr := post(ctx, ticker, func() {
		l, err = loop.Attach(doc, container, counter.New(s.area), counter.View, append(opts, loop.WithScheduler(ticker))...)
		if err == nil {
			err = l.Render()
		}
	}); postErr != nil {
		return simulationResult{}, postErr
	}
	if err != nil {
		return simulationResult{}, err
	}

	for i := 0; i < s.clicks; i++ {
		if postErr := post(ctx, ticker, func() { err = click(doc, container) }); postErr != nil {
			return simulationResult{}, postErr
		}
		if err != nil {
			return simulationResult{}, err
		}
	}

	// Wait for the coalesced frame.
	timeout := time.Second + 10*ticker.Interval()
	deadline := time.Now().Add(timeout)
	for {
		var pending bool
		var res simulationResult
		if postErr := post(ctx, ticker, func() {
			pending = l.Pending()
			if !pending {
				res = result(doc, container, l)
				l.Detach()
			}
		}); postErr != nil {
			return simulationResult{}, postErr
		}
		if !pending {
			cancel()
			<-runErr
			return res, nil
		}
		if time.Now().After(deadline) {
			return simulationResult{}, fmt.Errorf("simulate: frame did not fire within %s", timeout)
		}
		time.Sleep(ticker.Interval())
	}
}

// post runs fn on the ticker loop and waits for it.
func post(ctx context.Context, t *scheduler.Ticker, fn func()) error {
	done := make(chan struct{})
	if err := t.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s simulation) container(doc *dom.Headless) (*html.Node, error) {
	if !s.prerender {
		app := doc.CreateElement("div")
		doc.SetAttribute(app, "id", "app")
		doc.AppendChild(doc.Body(), app)
		doc.ResetCounts()
		return app, nil
	}

	var page bytesWriter
	data := render.PageData{Title: "frameloop"}
	if err := render.PageView(&page, render.NewRenderer(render.Config{}), data, counter.View, counter.New(s.area)); err != nil {
		return nil, err
	}
	if _, err := doc.Parse(string(page)); err != nil {
		return nil, err
	}
	app := doc.ByID("app")
	if app == nil {
		return nil, fmt.Errorf("simulate: pre-rendered page has no #app")
	}
	return app, nil
}

type bytesWriter []byte

func (b *bytesWriter) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

func click(doc *dom.Headless, container *html.Node) error {
	children := doc.ChildNodes(container)
	if len(children) == 0 {
		return fmt.Errorf("simulate: nothing to click")
	}
	_, err := doc.Click(children[0])
	return err
}

func result(doc *dom.Headless, container *html.Node, l *loop.Loop[counter.Model, *html.Node]) simulationResult {
	return simulationResult{
		HTML:    doc.InnerHTML(container),
		Stats:   l.Stats(),
		Counts:  doc.Counts(),
		Journal: doc.Journal(),
	}
}

func printSimulation(w io.Writer, res simulationResult, journal bool) {
	success(w, "%s", res.HTML)
	fmt.Fprintln(w)

	st := res.Stats
	fmt.Fprintln(w, "  Loop:")
	info(w, "  frames %d, aborted %d, dispatched %d, stale %d, live handles %d",
		st.Frames, st.Aborted, st.Dispatched, st.Stale, st.LiveHandles)
	info(w, "  scheduler: requested %d, coalesced %d, fired %d",
		st.Scheduler.Requested, st.Scheduler.Coalesced, st.Scheduler.Fired)
	info(w, "  diff: %d patches, %d retargets, %d nodes created",
		st.Diff.Patches, st.Diff.Retargets, st.Diff.Created)
	info(w, "  arena: %s in %d allocations, last pass %s",
		formatBytes(int64(st.Arena.Bytes)), st.Arena.Allocs, st.LastDuration.Round(time.Microsecond))

	fmt.Fprintln(w, "  Document:")
	c := res.Counts
	info(w, "  %d mutations: created %d, text %d, attrs %d, appended %d, replaced %d, removed %d, listeners +%d/-%d",
		c.Mutations(), c.Created, c.TextSet, c.AttrSet, c.Appended, c.Replaced, c.Removed, c.ListenersAdded, c.ListenersRemoved)

	if journal {
		fmt.Fprintln(w, "  Journal:")
		for _, m := range res.Journal {
			info(w, "  %s", m)
		}
	}
}
