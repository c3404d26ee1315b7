// Package feed renders the merged feed for feed readers: RSS 2.0 of the snapshot and OPML of the sources.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/plaidfeed/pkg/domain"
)

// Generator creates RSS and OPML documents from the merged feed
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed from snapshot items, keeping their weight order.
// Non-empty source limits the title and self link to that source.
func (g *Generator) GenerateRSS(items []domain.WeighedItem, source string) (string, error) {
	title := "Plaidfeed - All Sources"
	selfLink := g.baseURL + "/rss"
	if source != "" {
		title = "Plaidfeed - " + source
		selfLink = fmt.Sprintf("%s/rss?source=%s", g.baseURL, source)
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Unified feed of all enabled sources, most relevant first",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a weighed item to an RSS item, source goes to the category
func (g *Generator) convertToRSSItem(item domain.WeighedItem) *RSSItem {
	desc := item.Summary
	if item.Votes > 0 || item.Comments > 0 {
		stats := fmt.Sprintf("%d votes, %d comments", item.Votes, item.Comments)
		if desc != "" {
			desc = stats + "\n\n" + desc
		} else {
			desc = stats
		}
	}

	res := &RSSItem{
		Title:       item.Title,
		Link:        item.Link,
		GUID:        item.ID,
		Description: desc,
		Author:      item.Author,
		Categories:  []string{item.Source},
	}
	if !item.Published.IsZero() {
		res.PubDate = item.Published.Format(time.RFC1123Z)
	}
	return res
}

// GenerateOPML creates an OPML file with subscriptions of enabled sources
func (g *Generator) GenerateOPML(sources []domain.Source) (string, error) {
	outlines := make([]Outline, 0, len(sources))
	for _, src := range sources {
		if !src.Enabled {
			continue
		}
		outlines = append(outlines, Outline{
			Text:   src.Name,
			Title:  src.Name,
			Type:   "rss",
			XMLURL: src.URL,
		})
	}

	doc := OPML{
		Version: "2.0",
		Head: OPMLHead{
			Title:       "Plaidfeed Sources",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: OPMLBody{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
