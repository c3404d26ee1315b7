// Package source fetches content sources and cuts them into pages ready for the merger
package source

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
)

const (
	maxSummaryLen     = 500
	maxExtractWorkers = 4
)

// TextExtractor returns readable text of a linked page
type TextExtractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// Parser fetches RSS/Atom sources and converts them to pages of items
type Parser struct {
	client    *http.Client
	userAgent string
	policy    *bluemonday.Policy
	extractor TextExtractor
}

// NewParser creates a new source parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		policy:    bluemonday.StrictPolicy(),
	}
}

// WithExtractor makes the parser fill empty summaries with text extracted from the item link
func (p *Parser) WithExtractor(e TextExtractor) *Parser {
	p.extractor = e
	return p
}

// Parse fetches the source and returns its items split into pages of src.PageSize, at most src.MaxPages.
// Items keep the order of the source.
func (p *Parser) Parse(ctx context.Context, src config.Source) ([]domain.Page, error) {
	body, err := p.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.Name, err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse source %s: %w", src.Name, err)
	}

	items := make([]domain.Item, 0, len(feed.Items))
	seen := make(map[string]bool, len(feed.Items))
	for _, fi := range feed.Items {
		item := p.convert(src.Name, feed.Title, fi)
		if seen[item.ID] {
			continue // some feeds repeat entries, the merger rejects duplicate ids within a page
		}
		seen[item.ID] = true
		items = append(items, item)
	}

	pages := paginate(src, items)
	p.fillSummaries(ctx, pages)
	return pages, nil
}

// fillSummaries extracts summaries for kept items that came without one, failures leave the summary empty
func (p *Parser) fillSummaries(ctx context.Context, pages []domain.Page) {
	if p.extractor == nil {
		return
	}
	g := errgroup.Group{}
	g.SetLimit(maxExtractWorkers)
	for i := range pages {
		for j := range pages[i].Items {
			item := &pages[i].Items[j]
			if item.Summary != "" || item.Link == "" {
				continue
			}
			g.Go(func() error {
				text, err := p.extractor.Extract(ctx, item.Link)
				if err != nil {
					lgr.Printf("[DEBUG] no summary for %s: %v", item.ID, err)
					return nil
				}
				item.Summary = truncate(strings.Join(strings.Fields(text), " "))
				return nil
			})
		}
	}
	_ = g.Wait()
}

// convert makes a domain item from a parsed feed entry
func (p *Parser) convert(source, feedTitle string, fi *gofeed.Item) domain.Item {
	guid := fi.GUID
	if guid == "" {
		guid = fi.Link
	}
	if guid == "" {
		guid = fmt.Sprintf("%s-%s", feedTitle, fi.Title)
	}

	item := domain.Item{
		ID:       source + ":" + guid,
		Source:   source,
		Title:    strings.TrimSpace(fi.Title),
		Link:     fi.Link,
		Summary:  p.summary(fi.Description),
		Votes:    signal(fi, "votes", "vote_count", "votes_count", "upvotes"),
		Comments: signal(fi, "comments", "comment_count", "comments_count"),
	}

	if fi.Author != nil {
		item.Author = fi.Author.Name
	} else if len(fi.Authors) > 0 && fi.Authors[0] != nil {
		item.Author = fi.Authors[0].Name
	}

	if fi.PublishedParsed != nil {
		item.Published = *fi.PublishedParsed
	} else if fi.UpdatedParsed != nil {
		item.Published = *fi.UpdatedParsed
	}

	return item
}

// summary strips html from the description and trims it to maxSummaryLen runes
func (p *Parser) summary(description string) string {
	text := html.UnescapeString(p.policy.Sanitize(description))
	return truncate(strings.Join(strings.Fields(text), " "))
}

// truncate cuts text to maxSummaryLen runes
func truncate(text string) string {
	if runes := []rune(text); len(runes) > maxSummaryLen {
		return string(runes[:maxSummaryLen]) + "…"
	}
	return text
}

// signal reads a popularity counter from the entry, trying namespaced extensions
// (slash:comments, dn:votes, ...) first and plain custom elements next. Missing or broken values are 0.
func signal(fi *gofeed.Item, names ...string) int {
	for _, name := range names {
		for _, byName := range fi.Extensions {
			if v, ok := extValue(byName, name); ok {
				return v
			}
		}
		if raw, ok := fi.Custom[name]; ok {
			if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v >= 0 {
				return v
			}
		}
	}
	return 0
}

func extValue(byName map[string][]ext.Extension, name string) (int, bool) {
	for _, e := range byName[name] {
		if v, err := strconv.Atoi(strings.TrimSpace(e.Value)); err == nil && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

// paginate cuts items into pages of src.PageSize, dropping everything past src.MaxPages
func paginate(src config.Source, items []domain.Item) []domain.Page {
	size := max(src.PageSize, 1)
	pages := make([]domain.Page, 0, len(items)/size+1)
	for start := 0; start < len(items); start += size {
		if src.MaxPages > 0 && len(pages) >= src.MaxPages {
			break
		}
		end := min(start+size, len(items))
		number := len(pages)
		page := domain.Page{Source: src.Name, Number: number, Items: make([]domain.Item, 0, end-start)}
		for _, item := range items[start:end] {
			item.Page = number
			page.Items = append(page.Items, item)
		}
		pages = append(pages, page)
	}
	return pages
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	setHeaders(req, p.userAgent, feedRequest)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
