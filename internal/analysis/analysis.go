// Package analysis ties parsing, graph construction, hole detection and
// stats aggregation together for one model or a batch of model files.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/graph"
	"github.com/pombase/pombase-gocam-tool/internal/holes"
	"github.com/pombase/pombase-gocam-tool/internal/models"
	"github.com/pombase/pombase-gocam-tool/internal/parser"
	"github.com/pombase/pombase-gocam-tool/internal/stats"
)

// FileResult is the outcome for one input file. Exactly one of Report and
// Err is set.
type FileResult struct {
	Path   string
	Report *models.Report
	Err    error
}

type Runner struct {
	cfg        config.Analysis
	log        *slog.Logger
	builder    *parser.Builder
	detector   *holes.Detector
	aggregator *stats.Aggregator
}

func NewRunner(cfg config.Analysis, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		log:        log,
		builder:    parser.NewBuilder(cfg, log),
		detector:   holes.NewDetector(cfg, log),
		aggregator: stats.NewAggregator(cfg, log),
	}
}

// Run builds the graph for m and runs detection and aggregation side by
// side. The graph is read-only once built, so both share it.
func (r *Runner) Run(ctx context.Context, m *models.Model) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := graph.New(m)
	if err != nil {
		return nil, err
	}

	report := &models.Report{ModelID: g.ModelID(), Title: g.Title()}

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		report.Findings = r.detector.Detect(g)
		return nil
	})
	eg.Go(func() error {
		report.Stats = r.aggregator.Summarize(g)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("model analyzed",
		"model", report.ModelID,
		"activities", report.Stats.ActivityCount,
		"findings", len(report.Findings))

	return report, nil
}

// Load parses a GO-CAM JSON document and builds its model.
func (r *Runner) Load(data []byte) (*models.Model, error) {
	doc, err := parser.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return r.builder.Build(doc), nil
}

func (r *Runner) LoadFile(path string) (*models.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := r.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Analyze is Load followed by Run.
func (r *Runner) Analyze(ctx context.Context, data []byte) (*models.Report, error) {
	m, err := r.Load(data)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, m)
}

// RunFiles loads and analyzes every path with at most workers files in
// flight; workers <= 0 means GOMAXPROCS. Results keep the order of paths.
// A file that fails to load or analyze records its error in its result;
// only cancellation of ctx fails the batch.
func (r *Runner) RunFiles(ctx context.Context, paths []string, workers int) ([]FileResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Path = path

			m, err := r.LoadFile(path)
			if err != nil {
				r.log.Warn("skipping model file", "path", path, "error", err)
				results[i].Err = err
				return nil
			}
			report, err := r.Run(ctx, m)
			if err != nil {
				r.log.Warn("model analysis failed", "path", path, "error", err)
				results[i].Err = fmt.Errorf("%s: %w", path, err)
				return nil
			}
			results[i].Report = report
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
