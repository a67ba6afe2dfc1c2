package api

import (
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gaii/gaii/internal/archive"
	"github.com/gaii/gaii/internal/publish"
	"github.com/gaii/gaii/pkg/report"
)

type createReportResponse struct {
	Summary   report.Summary      `json:"summary"`
	Published []publish.Published `json:"published,omitempty"`
}

// handleCreateReport assembles a report over the requested dataset, archives
// it and, when a publisher is configured, uploads its renditions.
func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	n, ok := h.limit(w, r)
	if !ok {
		return
	}
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	rep := h.assemble(ds, n, "archive")
	if err := h.archive.Save(r.Context(), rep); err != nil {
		zap.L().Error("archive report", zap.String("id", rep.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "archive failed")
		return
	}

	resp := createReportResponse{Summary: rep.Summary()}
	if h.opts.Publisher != nil && len(h.opts.Formats) > 0 {
		published, err := h.opts.Publisher.Publish(r.Context(), rep, h.opts.Formats...)
		if err != nil {
			zap.L().Error("publish report", zap.String("id", rep.ID), zap.Error(err))
			writeError(w, http.StatusBadGateway, "report archived but publishing failed")
			return
		}
		resp.Published = published
	}

	zap.L().Info("report archived",
		zap.String("id", rep.ID),
		zap.String("dataset", rep.Dataset.Name),
		zap.Int("published", len(resp.Published)),
	)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := archive.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	summaries, err := h.archive.List(r.Context(), limit)
	if err != nil {
		zap.L().Error("list reports", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if summaries == nil {
		summaries = []report.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleGetReport returns an archived report. The id "latest" resolves to
// the most recently generated one.
func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		rep *report.Report
		err error
	)
	if id == "latest" {
		rep, err = h.archive.Latest(r.Context())
	} else {
		rep, err = h.archive.Get(r.Context(), id)
	}
	if err != nil {
		if eris.Is(err, archive.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		zap.L().Error("get report", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
