// Package scheduler coalesces render requests into host frames.
//
// A Scheduler is either idle or scheduled. Schedule moves an idle scheduler
// to scheduled and asks the host for exactly one frame callback; further
// Schedule calls before that callback runs are absorbed. When the frame
// fires the scheduler returns to idle and then runs the render function, so
// a render that schedules again gets a fresh frame.
//
// Hosts provide the frame source. Manual fires frames on demand and is meant
// for tests and simulations; Ticker runs a serial event loop with a fixed
// frame rate; package jshost uses requestAnimationFrame in the browser.
package scheduler
