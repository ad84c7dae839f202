//go:build js && wasm

// Package jshost provides a scheduler.Host backed by the browser's
// requestAnimationFrame.
package jshost

import "syscall/js"

// RAF requests frames with window.requestAnimationFrame.
type RAF struct{}

// RequestFrame registers fn for the next animation frame.
func (RAF) RequestFrame(fn func()) func() {
	var (
		cb       js.Func
		released bool
	)
	release := func() {
		if !released {
			released = true
			cb.Release()
		}
	}
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		fn()
		return nil
	})
	id := js.Global().Call("requestAnimationFrame", cb)
	return func() {
		if released {
			return
		}
		js.Global().Call("cancelAnimationFrame", id)
		release()
	}
}
