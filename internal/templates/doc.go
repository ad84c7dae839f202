// Package templates scaffolds new frameloop projects.
//
// # Available Templates
//
//   - minimal: a counter view, its wasm entry point and a config file
//   - full: adds a server binary, a stylesheet and view tests
//
// # Usage
//
//	tmpl, err := templates.Get("full")
//	if err != nil {
//	    return err
//	}
//	files, err := tmpl.Create(projectDir, templates.Config{ProjectName: "todo"})
//
// # Template Variables
//
// File contents are text/template sources executed with Config:
//
//	{{.ProjectName}}     - Name of the project
//	{{.ModulePath}}      - Go module path
//	{{.Description}}     - Project description
//	{{.GoVersion}}       - go directive of the generated go.mod
package templates
