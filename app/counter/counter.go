// Package counter is the reference frameloop app: a paragraph that counts
// clicks on itself.
package counter

import (
	"log/slog"

	"github.com/vango-dev/frameloop/el"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Model is the app state.
type Model struct {
	Area    string // Where the view is rendered, "server" or "browser"
	Counter int
}

// New returns a model with the counter at zero.
func New(area string) Model {
	return Model{Area: area}
}

// View renders the model as a single clickable paragraph.
func View(f *loop.Frame[Model], m *Model) vdom.Node {
	slog.Debug("counter: rendering view", "frame", f.Number(), "counter", m.Counter)
	return el.P(f.Arena, f.OnClick(increment),
		f.Textf("Hello from %s of your full-stack Go app! Counter is %d", m.Area, m.Counter),
	)
}

func increment(m *Model) {
	slog.Info("counter: increment", "counter", m.Counter)
	m.Counter++
}
