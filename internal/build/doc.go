// Package build compiles the wasm app and lays out its build directory.
//
// A build runs these steps:
//   - compile the main package with GOOS=js GOARCH=wasm
//   - copy wasm_exec.js from the Go toolchain
//   - copy static files from the public directory
//   - pre-render index.html with fingerprinted artifact URLs
//   - write manifest.json
//
// # Usage
//
//	builder := build.New(cfg, build.Options{Out: "build", Index: index})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Built in %s\n", result.Duration)
//
// # Output Structure
//
//	build/
//	├── app.wasm        # Compiled module
//	├── wasm_exec.js    # Go runtime support
//	├── index.html      # Pre-rendered page
//	├── ...             # Files from the public directory
//	└── manifest.json   # Artifact fingerprints
//
// The directory can be served by "frameloop serve", packed with
// "frameloop bundle" or uploaded to a bucket as is.
package build
