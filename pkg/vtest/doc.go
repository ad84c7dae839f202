// Package vtest provides testing helpers for frameloop views.
//
// Mount attaches a view to a headless document with a manual frame host, so
// a test drives every frame itself:
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, counter.View, counter.New("test"))
//	    h.Click("p")
//	    h.Click("p")
//	    h.Tick()
//	    h.ExpectContains("Counter is 2")
//	}
//
// Prerender starts from server-rendered markup instead of an empty
// container, and Reload simulates a page refresh: the current model is
// rendered on the server side, parsed into a fresh document and adopted by
// a new loop.
//
// # Render Assertions
//
// For views without a loop, RenderToString and the Expect helpers run the
// view once on a static frame:
//
//	vtest.ExpectContains(t, counter.View, counter.New("server"), "Counter is 0")
package vtest
