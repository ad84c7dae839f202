package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/frameloop/app/counter"
	"github.com/vango-dev/frameloop/pkg/render"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		area    string
		count   int
		page    bool
		pretty  bool
		wasm    string
		title   string
		mountID string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Pre-render the counter view as HTML",
		Long: `Render the counter view once, without event bindings, and print the HTML.

With --page the view is wrapped in a complete document that loads the
wasm module, the same page "frameloop serve" answers with.

Examples:
  frameloop render
  frameloop render --count=3 --area=docs
  frameloop render --page --wasm=/app.wasm > build/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if area == "" {
				area = cfg.Area
			}
			model := counter.New(area)
			model.Counter = count

			w := cmd.OutOrStdout()
			r := render.NewRenderer(render.Config{Pretty: pretty})
			if !page {
				if err := render.RenderView(w, r, counter.View, model); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w)
				return err
			}
			data := render.PageData{Title: title, MountID: mountID, Wasm: wasm}
			return render.PageView(w, r, data, counter.View, model)
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area label (default from config)")
	cmd.Flags().IntVar(&count, "count", 0, "Initial counter value")
	cmd.Flags().BoolVar(&page, "page", false, "Render a complete HTML document")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the view markup")
	cmd.Flags().StringVar(&wasm, "wasm", "/app.wasm", "Wasm module URL loaded by the page")
	cmd.Flags().StringVar(&title, "title", "frameloop", "Page title")
	cmd.Flags().StringVar(&mountID, "mount", "app", "Mount container id")

	return cmd
}
