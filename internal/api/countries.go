package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/ranking"
	"github.com/gaii/gaii/pkg/rollup"
	"github.com/gaii/gaii/pkg/scoring"
	"github.com/gaii/gaii/pkg/surface"
)

type countryList struct {
	Dataset   string           `json:"dataset"`
	Count     int              `json:"count"`
	Countries []country.Record `json:"countries"`
}

func (h *Handler) handleListCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var region country.Region
	if v := q.Get("region"); v != "" {
		region = country.Region(strings.ToUpper(v))
		if !region.Valid() {
			writeError(w, http.StatusBadRequest, "unknown region "+strconv.Quote(v))
			return
		}
	}
	var grade scoring.Grade
	if v := q.Get("grade"); v != "" {
		g, err := scoring.ParseGrade(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		grade = g
	}

	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	recs := ds.Records()
	if region != "" {
		recs = ds.InRegion(region)
	}
	out := make([]country.Record, 0, len(recs))
	for _, rec := range recs {
		if grade != "" && rec.Grade != grade {
			continue
		}
		out = append(out, rec)
	}

	writeJSON(w, http.StatusOK, countryList{Dataset: ds.Meta().Name, Count: len(out), Countries: out})
}

func (h *Handler) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	rec, found := ds.Find(r.PathValue("code"))
	if !found {
		writeError(w, http.StatusNotFound, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rollup.ByRegion(ds))
}

func (h *Handler) handleGlobal(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rollup.Global(ds))
}

type rankingResponse struct {
	Order     ranking.Order    `json:"order"`
	N         int              `json:"n"`
	Countries []country.Record `json:"countries"`
}

func (h *Handler) handleRanking(w http.ResponseWriter, r *http.Request) {
	order, err := ranking.ParseOrder(r.PathValue("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, ok := h.limit(w, r)
	if !ok {
		return
	}
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	recs, err := ranking.By(ds, order, n)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rankingResponse{Order: order, N: n, Countries: recs})
}

func (h *Handler) handleMethodology(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scoring.MethodologyInfo())
}

// handleReport assembles a report on the fly in the requested format
// without archiving it.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	format := surface.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := surface.ParseFormat(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}
	n, ok := h.limit(w, r)
	if !ok {
		return
	}
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	renderer, err := surface.ForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep := h.assemble(ds, n, "read")
	var buf bytes.Buffer
	if err := renderer.Render(&buf, rep); err != nil {
		zap.L().Error("render report", zap.String("format", string(format)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == surface.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="report`+format.Extension()+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// limit parses ?n=, defaulting to the configured top N.
func (h *Handler) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("n")
	if v == "" {
		return h.opts.TopN, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
		return 0, false
	}
	return n, true
}
