package main

import (
	"github.com/spf13/cobra"

	"github.com/pombase/pombase-gocam-tool/internal/analysis"
)

func newFindHolesCmd(opts *options) *cobra.Command {
	var failOnHoles bool

	cmd := &cobra.Command{
		Use:   "find-holes <file>...",
		Short: "Report incomplete activities in GO-CAM models",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emitter, err := opts.emitter(cmd)
			if err != nil {
				return err
			}

			total := 0
			err = opts.analyzeAll(cmd.Context(), args, func(res analysis.FileResult) error {
				total += len(res.Report.Findings)
				return emitter.Findings(res.Report.ModelID, res.Report.Title, res.Report.Findings)
			})
			if err != nil {
				return err
			}
			if failOnHoles && total > 0 {
				return errHolesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnHoles, "fail-on-holes", false, "exit with status 2 when any hole is found")
	return cmd
}
