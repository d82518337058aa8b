package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pombase/pombase-gocam-tool/internal/analysis"
	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/logger"
	"github.com/pombase/pombase-gocam-tool/internal/report"
)

// errHolesFound is returned by find-holes --fail-on-holes when any model
// has findings.
var errHolesFound = errors.New("holes found")

// options carries the persistent flags and what is derived from them once
// a command starts.
type options struct {
	configPath string
	format     string
	verbose    bool
	workers    int

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gocam-tool",
		Short:         "Inspect GO-CAM models",
		Long:          `gocam-tool reads GO-CAM JSON models and reports annotation holes and structural statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file (default $"+config.EnvConfigPath+")")
	flags.StringVarP(&opts.format, "format", "f", "",
		"output format: "+strings.Join(report.Formats(), ", ")+" (default from config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "files analyzed in parallel (default GOMAXPROCS)")

	root.AddCommand(
		newFindHolesCmd(opts),
		newStatsCmd(opts),
		newTuplesCmd(opts),
		newActivityCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.format == "" {
		o.format = cfg.Output.Format
	}
	o.cfg = cfg
	o.log = logger.New(cmd.ErrOrStderr(), cfg.Log, o.verbose)
	return nil
}

func (o *options) runner() *analysis.Runner {
	return analysis.NewRunner(o.cfg.Analysis, o.log)
}

func (o *options) emitter(cmd *cobra.Command) (*report.Emitter, error) {
	return report.NewEmitter(o.format, cmd.OutOrStdout())
}

// analyzeAll runs every path and hands each successful report to emit.
// Files that fail are logged and counted; the batch fails afterwards if
// any did.
func (o *options) analyzeAll(ctx context.Context, paths []string, emit func(res analysis.FileResult) error) error {
	results, err := o.runner().RunFiles(ctx, paths, o.workers)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			o.log.Error("analysis failed", "path", res.Path, "error", res.Err)
			failed++
			continue
		}
		if err := emit(res); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
