package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pombase/pombase-gocam-tool/internal/analysis"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// HolesResponse is the body of POST /holes.
type HolesResponse struct {
	ModelID  string           `json:"model_id"`
	Title    string           `json:"title"`
	Findings []models.Finding `json:"findings"`
}

// AnalysisHandler serves the model analysis endpoints. Reports are cached
// by a digest of the request body, so resubmitting an unchanged model does
// not rerun the analysis.
type AnalysisHandler struct {
	runner  *analysis.Runner
	cache   *lru.Cache[string, *models.Report]
	maxBody int64
	log     *slog.Logger
}

// NewAnalysisHandler builds a handler. cacheSize 0 disables caching and
// maxBody <= 0 leaves the body size unbounded.
func NewAnalysisHandler(runner *analysis.Runner, cacheSize int, maxBody int64, log *slog.Logger) (*AnalysisHandler, error) {
	if log == nil {
		log = slog.Default()
	}
	h := &AnalysisHandler{runner: runner, maxBody: maxBody, log: log}
	if cacheSize > 0 {
		cache, err := lru.New[string, *models.Report](cacheSize)
		if err != nil {
			return nil, err
		}
		h.cache = cache
	}
	return h, nil
}

func (h *AnalysisHandler) Holes(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, h.log, HolesResponse{
		ModelID:  report.ModelID,
		Title:    report.Title,
		Findings: report.Findings,
	})
}

func (h *AnalysisHandler) Stats(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, h.log, report.Stats)
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, h.log, report)
}

// report reads the body and returns its analysis. On failure it has
// already written the error response.
func (h *AnalysisHandler) report(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if h.cache != nil {
		if report, ok := h.cache.Get(key); ok {
			w.Header().Set("X-Cache", "hit")
			return report, true
		}
	}

	report, err := h.runner.Analyze(r.Context(), data)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidDocument):
		http.Error(w, "Invalid GO-CAM document: "+err.Error(), http.StatusBadRequest)
		return nil, false
	case errors.Is(err, models.ErrMalformedModel):
		http.Error(w, "Malformed model: "+err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Request cancelled", http.StatusServiceUnavailable)
		return nil, false
	default:
		h.log.Error("analysis failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	if h.cache != nil {
		w.Header().Set("X-Cache", "miss")
		h.cache.Add(key, report)
	}
	return report, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		log.Error("encoding response", "error", err)
	}
}
