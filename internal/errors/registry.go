package errors

import "sort"

// docBase prefixes the documentation anchor of every registered code.
const docBase = "https://github.com/vango-dev/frameloop/blob/main/docs/errors.md#"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Configuration errors (E100-E199)
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No frameloop.json or frameloop.yaml was found in the project directory.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "The listen address must have the form host:port with a port between 0 and 65535.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid render depth",
		Detail:   "render.maxDepth must be at least 1. It bounds how many levels of child lists a render pass may descend.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid frame rate",
		Detail:   "render.frameRate must be between 1 and 1000 frames per second.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid arena limit",
		Detail:   "render.arenaLimit must not be negative. Zero means unlimited.",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Conflicting asset sources",
		Detail:   "Only one of assets.dir, assets.bundle and assets.s3.bucket may be set.",
	},
	"E108": {
		Category: CategoryConfig,
		Message:  "Environment file could not be loaded",
		Detail:   "The .env file exists but could not be parsed.",
	},

	// Asset errors (E200-E299)
	"E201": {
		Category: CategoryAssets,
		Message:  "Asset directory not found",
		Detail:   "The build directory does not exist. Build the wasm module first.",
	},
	"E202": {
		Category: CategoryAssets,
		Message:  "Bundle could not be opened",
		Detail:   "The bundle file is missing, locked by another process, or not a bundle.",
	},
	"E203": {
		Category: CategoryAssets,
		Message:  "S3 asset store unavailable",
		Detail:   "The AWS configuration could not be loaded or the bucket could not be listed.",
	},
	"E204": {
		Category: CategoryAssets,
		Message:  "Bundle could not be written",
		Detail:   "Packing the build directory into a bundle failed.",
	},
	"E205": {
		Category: CategoryAssets,
		Message:  "No asset source configured",
		Detail:   "Set assets.dir, assets.bundle or assets.s3.bucket, or pass --assets.",
	},

	// Render errors (E300-E399)
	"E301": {
		Category: CategoryRender,
		Message:  "Render aborted",
		Detail:   "A render pass failed and the previous frame was kept.",
	},
	"E302": {
		Category: CategoryRender,
		Message:  "View panicked",
		Detail:   "The view function panicked while building the frame.",
	},
	"E303": {
		Category: CategoryRender,
		Message:  "Document structure changed outside the loop",
		Detail:   "The live children of the container no longer match the previous frame. Something other than the render loop modified them.",
	},
	"E304": {
		Category: CategoryRender,
		Message:  "Frame arena exhausted",
		Detail:   "The view allocated more than render.arenaLimit bytes in one frame.",
	},

	// Build errors (E400-E499)
	"E401": {
		Category: CategoryBuild,
		Message:  "WebAssembly compilation failed",
		Detail:   "go build with GOOS=js GOARCH=wasm returned an error.",
	},
	"E402": {
		Category: CategoryBuild,
		Message:  "wasm_exec.js not found",
		Detail:   "The Go runtime support script was not found under GOROOT/lib/wasm or GOROOT/misc/wasm.",
	},
	"E403": {
		Category: CategoryBuild,
		Message:  "Build output could not be written",
		Detail:   "The build directory could not be cleaned, created or written.",
	},
	"E404": {
		Category: CategoryBuild,
		Message:  "Index page could not be rendered",
		Detail:   "Pre-rendering the view into index.html failed.",
	},
	"E405": {
		Category: CategoryBuild,
		Message:  "Unknown project template",
		Detail:   "frameloop init knows the templates listed by frameloop init --list.",
	},
	"E406": {
		Category: CategoryBuild,
		Message:  "Project directory is not empty",
		Detail:   "frameloop init only writes into a missing or empty directory.",
	},
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
