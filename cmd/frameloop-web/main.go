//go:build js && wasm

// Command frameloop-web is the counter app compiled to WebAssembly. It adopts
// the markup pre-rendered into #app by "frameloop serve" and keeps it in sync
// with the model, one animation frame at a time.
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/vango-dev/frameloop/app/counter"
	"github.com/vango-dev/frameloop/pkg/dom/jsdom"
	"github.com/vango-dev/frameloop/pkg/loop"
	"github.com/vango-dev/frameloop/pkg/scheduler/jshost"
)

// mountID is the container the server renders the app into.
const mountID = "app"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	doc := jsdom.New(logger)
	app := doc.ByID(mountID)
	if app.IsNull() {
		logger.Error("frameloop-web: mount point not found", "id", mountID)
		return
	}

	l, err := loop.Attach(doc, app, counter.New("browser"), counter.View,
		loop.WithScheduler(jshost.RAF{}),
		loop.WithLogger(logger),
	)
	if err != nil {
		logger.Error("frameloop-web: attach failed", "error", err)
		return
	}
	if err := l.Render(); err != nil {
		logger.Error("frameloop-web: first render failed", "error", err)
		return
	}
	logger.Info("frameloop-web: running", "frames", l.Stats().Frames)

	var teardown js.Func
	teardown = js.FuncOf(func(js.Value, []js.Value) any {
		if err := l.Detach(); err != nil {
			logger.Warn("frameloop-web: detach failed", "error", err)
			return nil
		}
		doc.Release(app)
		js.Global().Call("removeEventListener", "pagehide", teardown)
		teardown.Release()
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", teardown)

	// Event callbacks run on this program; keep it alive.
	select {}
}
