package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pombase/pombase-gocam-tool/internal/parser"
	"github.com/pombase/pombase-gocam-tool/internal/report"
)

func newTuplesCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tuples <file>...",
		Short: "Print every fact as a tab-separated row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				doc, err := parser.ParseDocument(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := report.Tuples(cmd.OutOrStdout(), doc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
