// Package errors provides coded, actionable errors for the frameloop CLI.
//
// Each error has a code that maps to a category, a short message, a detailed
// explanation and a documentation anchor:
//   - E1xx: configuration (frameloop.json, frameloop.yaml, .env)
//   - E2xx: assets (build directories, bundles, S3)
//   - E3xx: rendering (aborted passes, structural mismatches)
//
// # Usage
//
//	err := errors.New("E102").
//	    WithLocation("frameloop.yaml", 4, 3).
//	    WithSuggestion("Indent nested keys with spaces")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E102: Invalid configuration file
//	//
//	//   frameloop.yaml:4:3
//	//
//	//       2 │ render:
//	//       3 │   maxDepth: 20
//	//   →   4 │ 	frameRate: 60
//	//         │   ^
//	//
//	//   Hint: Indent nested keys with spaces
package errors
