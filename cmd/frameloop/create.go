package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		module      string
		description string
		list        bool
	)

	cmd := &cobra.Command{
		Use:   "create <dir>",
		Short: "Scaffold a new frameloop project",
		Long: `Scaffold a new frameloop project into a missing or empty directory.

The minimal template has a view, its wasm entry point and a config file.
The full template adds a server binary, a stylesheet and view tests.

Examples:
  frameloop create todo
  frameloop create ./shop --template=full --module=example.com/shop
  frameloop create --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list {
				for _, name := range templates.List() {
					tmpl, _ := templates.Get(name)
					fmt.Fprintf(w, "%-10s %s\n", name, tmpl.Description)
				}
				return nil
			}
			return runCreate(w, args[0], template, templates.Config{
				ModulePath:  module,
				Description: description,
			})
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template (minimal, full)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Go module path (default: directory name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().BoolVar(&list, "list", false, "List templates and exit")

	return cmd
}

func runCreate(w io.Writer, dir, name string, cfg templates.Config) error {
	tmpl, err := templates.Get(name)
	if err != nil {
		return err
	}
	files, err := tmpl.Create(dir, cfg)
	if err != nil {
		return err
	}

	success(w, "Created %s project in %s", tmpl.Name, dir)
	for _, f := range files {
		info(w, "%s", filepath.ToSlash(filepath.Join(dir, f)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  To get started:")
	fmt.Fprintf(w, "    cd %s\n", dir)
	fmt.Fprintln(w, "    go get github.com/vango-dev/frameloop@latest && go mod tidy")
	fmt.Fprintln(w, "    frameloop dev")
	return nil
}
