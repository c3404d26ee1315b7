// Package weigh assigns sort weights to one page of items from one source.
//
// Every item of page p gets a weight in [p, p+1). Pages are weighed independently of each other,
// and the bucketing alone keeps the global order page-first across sources: all items of page N sort
// before any item of page N+1, and the strategy decides the order inside a page.
package weigh

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/umputun/plaidfeed/pkg/domain"
)

// ErrInvalidBatch is returned when a batch breaks the weighing contract, e.g. mixes pages or sources
var ErrInvalidBatch = errors.New("invalid batch")

// Strategy selects how a page is weighed
type Strategy int

// enum of supported strategies
const (
	// NaturalOrder keeps the order the source returned, spaced evenly across the page interval
	NaturalOrder Strategy = iota
	// Popularity ranks items by votes and comments relative to the best item of the same page
	Popularity
)

// ParseStrategy converts the config name of a strategy to Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "natural", "":
		return NaturalOrder, nil
	case "popularity":
		return Popularity, nil
	}
	return NaturalOrder, fmt.Errorf("unknown weighing strategy %q", name)
}

// String returns the config name of the strategy
func (s Strategy) String() string {
	switch s {
	case NaturalOrder:
		return "natural"
	case Popularity:
		return "popularity"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Weigh returns a weight for each item, in input order. All items must share the same page and source.
// Empty input is a no-op.
func Weigh(strategy Strategy, items []domain.Item) ([]float64, error) {
	if len(items) == 0 {
		return []float64{}, nil
	}
	if err := validate(strategy, items); err != nil {
		return nil, err
	}

	switch strategy {
	case NaturalOrder:
		return naturalOrder(items), nil
	case Popularity:
		return popularity(items), nil
	}
	return nil, fmt.Errorf("%w: unsupported strategy %s", ErrInvalidBatch, strategy)
}

// validate checks the batch preconditions, fails on the first violation
func validate(strategy Strategy, items []domain.Item) error {
	first := items[0]
	if first.Page < 0 {
		return fmt.Errorf("%w: negative page %d", ErrInvalidBatch, first.Page)
	}
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidBatch, i)
		}
		if item.Page != first.Page {
			return fmt.Errorf("%w: item %s is on page %d, batch page is %d", ErrInvalidBatch, item.ID, item.Page, first.Page)
		}
		if item.Source != first.Source {
			return fmt.Errorf("%w: item %s is from source %q, batch source is %q", ErrInvalidBatch, item.ID, item.Source, first.Source)
		}
		if strategy == Popularity && (item.Votes < 0 || item.Comments < 0) {
			return fmt.Errorf("%w: item %s has negative votes or comments", ErrInvalidBatch, item.ID)
		}
	}
	return nil
}

// naturalOrder spaces n items evenly across [p, p+1) preserving input order
func naturalOrder(items []domain.Item) []float64 {
	page := items[0].Page
	n := float64(len(items))
	res := make([]float64, len(items))
	for i := range items {
		res[i] = bounded(page, float64(page)+float64(i)/n)
	}
	return res
}

// popularity weighs each item by how far it is from the page's most voted and most commented items.
// badness = 1 - (comments/maxComments + votes/maxVotes) / 2, weight = page + badness.
// A signal with zero maximum is skipped for the whole page and the average is taken over the rest,
// a page without any signal puts every item at badness 1.
func popularity(items []domain.Item) []float64 {
	page := items[0].Page
	var maxVotes, maxComments float64
	for _, item := range items {
		maxVotes = math.Max(maxVotes, float64(item.Votes))
		maxComments = math.Max(maxComments, float64(item.Comments))
	}

	signals := 0
	for _, m := range []float64{maxVotes, maxComments} {
		if m > 0 {
			signals++
		}
	}

	res := make([]float64, len(items))
	for i, item := range items {
		badness := 1.0
		if signals > 0 {
			var score float64
			if maxComments > 0 {
				score += float64(item.Comments) / maxComments
			}
			if maxVotes > 0 {
				score += float64(item.Votes) / maxVotes
			}
			badness -= score / float64(signals)
		}
		res[i] = bounded(page, float64(page)+badness)
	}
	return res
}

// bounded keeps w inside [page, page+1). The upper bound is open, so the worst possible item
// (badness 1) lands on the largest float64 below page+1.
func bounded(page int, w float64) float64 {
	lo, hi := float64(page), float64(page+1)
	if w < lo {
		return lo
	}
	if w >= hi {
		return math.Nextafter(hi, lo)
	}
	return w
}
