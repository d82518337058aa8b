package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/logger"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

func newRunner() *Runner {
	return NewRunner(config.Default().Analysis, logger.Discard())
}

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("report carries findings and stats", func(t *testing.T) {
		r := newRunner()
		m, err := r.LoadFile(fixture("holes.json"))
		require.NoError(t, err)

		report, err := r.Run(ctx, m)
		require.NoError(t, err)

		assert.Equal(t, "gomodel:holes", report.ModelID)
		assert.Len(t, report.Findings, 6)
		assert.Equal(t, 5, report.Stats.ActivityCount)
		assert.Equal(t, 4, report.Stats.EdgeCount)
	})

	t.Run("malformed model", func(t *testing.T) {
		r := newRunner()
		m, err := r.LoadFile(fixture("duplicate.json"))
		require.NoError(t, err)

		_, err = r.Run(ctx, m)
		assert.True(t, errors.Is(err, models.ErrMalformedModel))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := newRunner().Run(cancelled, &models.Model{})
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("default logger", func(t *testing.T) {
		report, err := NewRunner(config.Default().Analysis, nil).Run(ctx, &models.Model{ID: "m"})
		require.NoError(t, err)

		assert.Equal(t, "m", report.ModelID)
		assert.NotNil(t, report.Findings)
		assert.Empty(t, report.Findings)
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("complete model", func(t *testing.T) {
		data, err := os.ReadFile(fixture("complete.json"))
		require.NoError(t, err)

		report, err := newRunner().Analyze(context.Background(), data)
		require.NoError(t, err)

		assert.Empty(t, report.Findings)
		assert.Equal(t, 2, report.Stats.ActivityCount)
		assert.Equal(t, 1, report.Stats.ComponentCount)
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := newRunner().Analyze(context.Background(), []byte("not json"))
		assert.True(t, errors.Is(err, models.ErrInvalidDocument))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := newRunner().LoadFile(fixture("nope.json"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		_, err := newRunner().LoadFile(path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidDocument))
		assert.Contains(t, err.Error(), path)
	})
}

func TestRunFiles(t *testing.T) {
	paths := []string{
		fixture("holes.json"),
		fixture("nope.json"),
		fixture("complete.json"),
		fixture("duplicate.json"),
		fixture("empty.json"),
	}

	for _, workers := range []int{0, 1, 3} {
		results, err := newRunner().RunFiles(context.Background(), paths, workers)
		require.NoError(t, err)
		require.Len(t, results, len(paths))

		for i, res := range results {
			assert.Equal(t, paths[i], res.Path)
		}

		require.NoError(t, results[0].Err)
		assert.Equal(t, "gomodel:holes", results[0].Report.ModelID)

		assert.Nil(t, results[1].Report)
		assert.True(t, errors.Is(results[1].Err, os.ErrNotExist))

		require.NoError(t, results[2].Err)
		assert.Empty(t, results[2].Report.Findings)

		assert.True(t, errors.Is(results[3].Err, models.ErrMalformedModel))

		require.NoError(t, results[4].Err)
		assert.Equal(t, 0, results[4].Report.Stats.ActivityCount)
	}
}

func TestRunFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().RunFiles(ctx, []string{fixture("holes.json")}, 1)

	assert.True(t, errors.Is(err, context.Canceled))
}
