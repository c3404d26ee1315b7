package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/plaidfeed/pkg/feed"
)

const defaultRSSLimit = 100

// rssHandler serves the merged feed as RSS, supports ?source= and ?limit=
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	limit := defaultRSSLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxFeedLimit)
		}
	}

	items := filterSource(s.feed.Snapshot(), source)
	items = items[:min(limit, len(items))]

	generator := feed.NewGenerator(s.config.GetFullConfig().Server.BaseURL)
	rss, err := generator.GenerateRSS(items, source)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves enabled sources as an OPML subscription list
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.GetSources(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to get sources for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetFullConfig().Server.BaseURL)
	opml, err := generator.GenerateOPML(sources)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plaidfeed.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
