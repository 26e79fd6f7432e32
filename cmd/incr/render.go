package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/incr/internal/demo"
	"github.com/vango-dev/incr/pkg/dom"
	"github.com/vango-dev/incr/pkg/engine"
)

func renderCmd() *cobra.Command {
	var (
		pretty    bool
		refreshes int
	)

	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Render a demo and print its HTML",
		Long: `Render a demo template and print the serialized result.

The demo's first pass always runs. With --refresh N the demo's scripted
interaction is applied N times, each followed by an update pass.

Examples:
  incr render hello
  incr render todos --refresh 3 --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			name := cfg.Render.Demo
			if len(args) == 1 {
				name = args[0]
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = cfg.Render.Pretty
			}
			if !cmd.Flags().Changed("refresh") {
				refreshes = cfg.Render.Refreshes
			}

			d, err := demo.Get(name)
			if err != nil {
				return err
			}
			html, err := renderDemo(d, refreshes, pretty, engine.WithLogger(newLogger()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the printed HTML")
	cmd.Flags().IntVarP(&refreshes, "refresh", "r", 0, "Number of scripted update passes to run")

	return cmd
}

// renderDemo renders d into a fresh document, runs refreshes scripted
// update passes and returns the serialized content.
func renderDemo(d *demo.Demo, refreshes int, pretty bool, opts ...engine.Option) (string, error) {
	doc := dom.NewDocument()
	host := doc.CreateElement("body").(*dom.Node)
	state := d.NewState()

	r, err := engine.Render(doc, host, d.Template, state, opts...)
	if err != nil {
		return "", err
	}
	for i := 0; i < refreshes; i++ {
		d.Step(state)
		if err := r.Refresh(); err != nil {
			return "", err
		}
	}

	out := dom.Options{Inner: true}
	if pretty {
		out.Indent = "  "
	}
	var buf bytes.Buffer
	if err := dom.Write(&buf, host, out); err != nil {
		return "", err
	}
	return buf.String(), nil
}
