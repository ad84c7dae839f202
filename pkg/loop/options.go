package loop

import (
	"log/slog"

	"github.com/vango-dev/frameloop/pkg/callback"
	"github.com/vango-dev/frameloop/pkg/diff"
	"github.com/vango-dev/frameloop/pkg/scheduler"
)

// Option configures a Loop.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	host       scheduler.Host
	depth      int
	arenaLimit int
	registry   *callback.Registry
	observer   Observer
	poison     bool
}

func defaultConfig() config {
	return config{
		logger:   slog.Default(),
		depth:    diff.DefaultDepth,
		observer: nopObserver{},
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithScheduler sets the host that provides frame callbacks for
// ScheduleRender. Without it the loop uses a scheduler.Manual host, available
// through Host.
func WithScheduler(host scheduler.Host) Option {
	return func(c *config) {
		c.host = host
	}
}

// WithDepth sets the diff depth budget. The default is diff.DefaultDepth.
func WithDepth(depth int) Option {
	return func(c *config) {
		c.depth = depth
	}
}

// WithArenaLimit caps the bytes a single frame may allocate. A view that
// exceeds it aborts the pass. 0 means no limit.
func WithArenaLimit(bytes int) Option {
	return func(c *config) {
		c.arenaLimit = bytes
	}
}

// WithRegistry shares a callback registry between loops.
func WithRegistry(r *callback.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithObserver sets the observer notified of renders and dispatches.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o == nil {
			o = nopObserver{}
		}
		c.observer = o
	}
}

// WithPoison overwrites frame memory on reset so that use after reset shows
// up in tests. It slows every render down.
func WithPoison(poison bool) Option {
	return func(c *config) {
		c.poison = poison
	}
}
