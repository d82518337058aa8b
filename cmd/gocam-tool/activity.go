package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pombase/pombase-gocam-tool/internal/graph"
)

func newActivityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <file> <activity-id>",
		Short: "Show one activity and the edges touching it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]

			m, err := opts.runner().LoadFile(path)
			if err != nil {
				return err
			}
			g, err := graph.New(m)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a, err := g.Activity(id)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			emitter, err := opts.emitter(cmd)
			if err != nil {
				return err
			}
			return emitter.Activity(a, g.IncomingEdges(id), g.OutgoingEdges(id))
		},
	}
}
