package main

import (
	"github.com/spf13/cobra"

	"github.com/pombase/pombase-gocam-tool/internal/analysis"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>...",
		Short: "Print structural statistics for GO-CAM models",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emitter, err := opts.emitter(cmd)
			if err != nil {
				return err
			}
			return opts.analyzeAll(cmd.Context(), args, func(res analysis.FileResult) error {
				return emitter.Stats(res.Report.Stats)
			})
		},
	}
}
