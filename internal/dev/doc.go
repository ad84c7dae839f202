// Package dev provides the development server behind "frameloop dev".
//
// The server builds the app with package build, serves the build
// directory, and polls the project for changes:
//
//   - Go files trigger a rebuild; on success pages reload, on failure they
//     show the compiler output and the previous build keeps being served
//   - Files in the public directory are copied into the build directory;
//     stylesheets are refetched in place, anything else reloads the page
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{
//	    Config:    cfg,
//	    Dir:       ".",
//	    HotReload: true,
//	})
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
//
// # Reload Protocol
//
// Pages connect to /_frameloop/reload via WebSocket. Messages are JSON:
//
//	{"type": "reload"}                // Full page reload
//	{"type": "css"}                   // Refetch stylesheets
//	{"type": "error", "error": "..."} // Show the build error
//	{"type": "clear"}                 // Hide the build error
//
// A reload restarts the wasm module, which adopts the freshly pre-rendered
// markup of the page, so application state resets on every rebuild.
package dev
