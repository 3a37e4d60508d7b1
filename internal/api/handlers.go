package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListDays handles GET /api/days.
//
//	@Summary		List journal days, newest first
//	@Tags			days
//	@Produce		json
//	@Param			limit	query		int		false	"Page size"
//	@Param			offset	query		int		false	"Page offset"
//	@Param			from	query		string	false	"Earliest day (YYYY-MM-DD)"
//	@Param			to		query		string	false	"Latest day (YYYY-MM-DD)"
//	@Success		200		{object}	DayListResponse
//	@Security		BearerAuth
//	@Router			/days [get]
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	from := q.Get("from")
	to := q.Get("to")

	items, total, err := h.svc.ListDays(r.Context(), limit, offset, from, to)
	if err != nil {
		slog.Error("list days failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":  items,
		"total": total,
	})
}

// GetDay handles GET /api/days/{date}.
//
//	@Summary		Get one journal day by date
//	@Tags			days
//	@Produce		json
//	@Param			date	path		string	true	"Day (YYYY-MM-DD)"
//	@Success		200		{object}	DayDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/days/{date} [get]
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	day, err := dates.Normalize(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	detail, err := h.svc.GetDay(r.Context(), day)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get day failed", slog.String("day", day), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across journal days
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{
			Path:    hit.Path,
			Day:     hit.Day,
			Title:   hit.Title,
			Snippet: hit.Snippet,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Summary handles GET /api/summary.
//
//	@Summary		Get journal span and day count
//	@Tags			summary
//	@Produce		json
//	@Success		200	{object}	JournalSummary
//	@Security		BearerAuth
//	@Router			/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		slog.Error("summary failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
