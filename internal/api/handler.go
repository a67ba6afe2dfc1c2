// Package api implements the GAII read API. Datasets are resolved through a
// DatasetCache; assembled reports are kept in an archive.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gaii/gaii/internal/archive"
	"github.com/gaii/gaii/internal/datasource"
	"github.com/gaii/gaii/internal/metrics"
	"github.com/gaii/gaii/internal/publish"
	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/surface"
)

// Options configures a Handler. Zero values fall back to report defaults.
type Options struct {
	Title   string
	TopN    int
	APIKey  string
	Metrics *metrics.Metrics

	// Publisher, when set, uploads archived reports in Formats.
	Publisher *publish.Publisher
	Formats   []surface.Format

	Now func() time.Time
}

// Handler is the top-level API handler for the GAII service.
type Handler struct {
	cache   *DatasetCache
	archive archive.Archive
	opts    Options
}

// NewHandler creates a new API handler. A nil archive keeps reports in
// memory.
func NewHandler(cache *DatasetCache, arch archive.Archive, opts Options) *Handler {
	if arch == nil {
		arch = archive.NewMemory()
	}
	if opts.TopN <= 0 {
		opts.TopN = report.DefaultTopN
	}
	return &Handler{cache: cache, archive: arch, opts: opts}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.Handle("POST /api/v1/reports", APIKeyAuth(h.opts.APIKey)(http.HandlerFunc(h.handleCreateReport)))

	// Read endpoints
	mux.HandleFunc("GET /api/v1/countries", h.handleListCountries)
	mux.HandleFunc("GET /api/v1/countries/{code}", h.handleGetCountry)
	mux.HandleFunc("GET /api/v1/regions", h.handleRegions)
	mux.HandleFunc("GET /api/v1/global", h.handleGlobal)
	mux.HandleFunc("GET /api/v1/rankings/{order}", h.handleRanking)
	mux.HandleFunc("GET /api/v1/methodology", h.handleMethodology)
	mux.HandleFunc("GET /api/v1/report", h.handleReport)
	mux.HandleFunc("GET /api/v1/reports", h.handleListReports)
	mux.HandleFunc("GET /api/v1/reports/{id}", h.handleGetReport)

	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", h.opts.Metrics.Handler())
}

// dataset resolves the ?dataset= query parameter and writes the error
// response itself when loading fails.
func (h *Handler) dataset(w http.ResponseWriter, r *http.Request) (*country.Dataset, bool) {
	name := r.URL.Query().Get("dataset")
	ds, err := h.cache.Get(r.Context(), name)
	if err == nil {
		return ds, true
	}
	if eris.Is(err, datasource.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dataset not found")
		return nil, false
	}
	zap.L().Error("load dataset", zap.String("dataset", name), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "dataset unavailable")
	return nil, false
}

func (h *Handler) assemble(ds *country.Dataset, topN int, trigger string) *report.Report {
	h.opts.Metrics.IncrementReport(trigger)
	return report.Assemble(ds, report.Options{Title: h.opts.Title, TopN: topN, Now: h.opts.Now})
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.archive.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes before writing the status so an unencodable value
// becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		zap.L().Error("encode response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "encode failed"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
