package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/repository"
	"github.com/umputun/plaidfeed/pkg/scheduler"
	"github.com/umputun/plaidfeed/pkg/weigh"
)

const (
	defaultFeedLimit = 100
	maxFeedLimit     = 1000
)

// feedResponse is a window of the merged feed
type feedResponse struct {
	Items  []domain.WeighedItem `json:"items"`
	Total  int                  `json:"total"`
	Offset int                  `json:"offset"`
}

// sourceResponse is a source with its item count in the merged feed store
type sourceResponse struct {
	domain.Source
	Items int `json:"items"`
}

// pageRequest is a page of items pushed by an external fetcher
type pageRequest struct {
	Items []domain.Item `json:"items"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.db.CountItems(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to count items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"items":   s.feed.Len(),
		"sources": s.feed.Sources(),
		"stored":  counts,
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedHandler returns the merged feed in weight order.
// Query params: source (only items of this source), offset, limit (default 100, max 1000).
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := queryInt(q.Get("limit"), defaultFeedLimit)
	if err != nil || limit < 0 {
		renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
		return
	}
	limit = min(limit, maxFeedLimit)
	if limit == 0 {
		limit = defaultFeedLimit
	}

	offset, err := queryInt(q.Get("offset"), 0)
	if err != nil || offset < 0 {
		renderError(w, r, fmt.Errorf("invalid offset"), http.StatusBadRequest)
		return
	}

	items := filterSource(s.feed.Snapshot(), q.Get("source"))
	resp := feedResponse{Items: []domain.WeighedItem{}, Total: len(items), Offset: offset}
	if offset < len(items) {
		resp.Items = items[offset:min(offset+limit, len(items))]
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// sourcesHandler lists all sources with their state
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sources, err := s.db.GetSources(ctx, false)
	if err != nil {
		log.Printf("[ERROR] failed to get sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	counts, err := s.db.CountItems(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to count items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	resp := make([]sourceResponse, 0, len(sources))
	for _, src := range sources {
		resp = append(resp, sourceResponse{Source: src, Items: counts[src.Name]})
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// refreshSourceHandler fetches the source right away
func (s *Server) refreshSourceHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.scheduler.UpdateSource(r.Context(), name); err != nil {
		log.Printf("[WARN] failed to refresh source %s: %v", name, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"source": name, "items": s.feed.Len()})
}

// enableSourceHandler turns the source filter on
func (s *Server) enableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.setSourceEnabled(w, r, true)
}

// disableSourceHandler turns the source filter off
func (s *Server) disableSourceHandler(w http.ResponseWriter, r *http.Request) {
	s.setSourceEnabled(w, r, false)
}

func (s *Server) setSourceEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	name := r.PathValue("name")

	toggle := s.scheduler.DisableSource
	if enabled {
		toggle = s.scheduler.EnableSource
	}
	if err := toggle(r.Context(), name); err != nil {
		log.Printf("[WARN] failed to set source %s enabled=%v: %v", name, enabled, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"source": name, "enabled": enabled})
}

// deliverPageHandler merges a page of items pushed in the request body
func (s *Server) deliverPageHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	number, err := strconv.Atoi(r.PathValue("page"))
	if err != nil || number < 0 {
		renderError(w, r, fmt.Errorf("invalid page number"), http.StatusBadRequest)
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid page body: %w", err), http.StatusBadRequest)
		return
	}

	page := domain.Page{Source: name, Number: number, Items: req.Items}
	if err := s.scheduler.DeliverPage(r.Context(), page); err != nil {
		log.Printf("[WARN] failed to deliver page %d of %s: %v", number, name, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusAccepted, map[string]any{"source": name, "page": number, "items": len(req.Items)})
}

// errorStatus maps domain errors to http status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduler.ErrSourceDisabled):
		return http.StatusConflict
	case errors.Is(err, weigh.ErrInvalidBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// filterSource keeps items of the source, empty source keeps everything
func filterSource(items []domain.WeighedItem, source string) []domain.WeighedItem {
	if source == "" {
		return items
	}
	res := make([]domain.WeighedItem, 0, len(items))
	for _, it := range items {
		if it.Source == source {
			res = append(res, it)
		}
	}
	return res
}

func queryInt(val string, def int) (int, error) {
	if val == "" {
		return def, nil
	}
	return strconv.Atoi(val)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
