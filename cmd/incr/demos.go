package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/incr/internal/demo"
)

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the built-in demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.List() {
				d, _ := demo.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", d.Name, d.Description)
			}
		},
	}
}
