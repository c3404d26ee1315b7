// Package merger keeps the unified feed: all items of all active sources, weighed page by page and
// kept in one ascending-weight order.
package merger

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/weigh"
)

// Merger owns the items of all sources and their weights. It is safe for concurrent use,
// all operations are serialized by a single lock.
type Merger struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
	sorted  []domain.WeighedItem // cached sorted view, nil when invalidated
}

// entry keeps the weight outside of the item, items themselves are never mutated
type entry struct {
	item   domain.Item
	weight float64
	seq    uint64 // first insertion order, breaks weight ties
}

// New makes an empty Merger
func New() *Merger {
	return &Merger{entries: make(map[string]*entry)}
}

// AddPage weighs a page of items with the given strategy and merges them in.
// Items already known by id are replaced in place and keep their original insertion order.
// A batch violating the weighing contract is rejected as a whole, nothing is merged.
func (m *Merger) AddPage(items []domain.Item, strategy weigh.Strategy) error {
	weights, err := prepare(items, strategy)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.merge(items, weights)
	return nil
}

// Deliver merges a freshly fetched page. Items are stamped with the page's source and number,
// so fetchers don't need to set them. A page delivered again supersedes the earlier delivery:
// its items missing from the new one are dropped, items moved in from other pages are taken over.
// An empty page is a no-op.
func (m *Merger) Deliver(page domain.Page, strategy weigh.Strategy) error {
	items := stamp(page)
	weights, err := prepare(items, strategy)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	keep := make(map[string]bool, len(items))
	for _, item := range items {
		keep[item.ID] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.item.Source == page.Source && e.item.Page == page.Number && !keep[id] {
			delete(m.entries, id)
		}
	}
	m.merge(items, weights)
	return nil
}

// ReplaceSource swaps all items of a source for the given pages in one step. Items of the source
// missing from the new pages are dropped, the rest are merged as with AddPage.
// Pages are weighed before anything changes, an invalid page leaves the merger untouched.
func (m *Merger) ReplaceSource(source string, pages []domain.Page, strategy weigh.Strategy) error {
	batches := make([][]domain.Item, len(pages))
	weights := make([][]float64, len(pages))
	keep := map[string]bool{}
	for i, page := range pages {
		if page.Source != source {
			return fmt.Errorf("%w: page %d belongs to %q, not %q", weigh.ErrInvalidBatch, page.Number, page.Source, source)
		}
		batches[i] = stamp(page)
		w, err := prepare(batches[i], strategy)
		if err != nil {
			return fmt.Errorf("page %d: %w", page.Number, err)
		}
		weights[i] = w
		for _, item := range batches[i] {
			keep[item.ID] = true
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.item.Source == source && !keep[id] {
			delete(m.entries, id)
		}
	}
	for i := range batches {
		m.merge(batches[i], weights[i])
	}
	m.sorted = nil
	return nil
}

// RemoveSource drops every item of the source and returns how many were removed
func (m *Merger) RemoveSource(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if e.item.Source == source {
			delete(m.entries, id)
			removed++
		}
	}
	if removed > 0 {
		m.sorted = nil
	}
	return removed
}

// Snapshot returns all items in ascending weight order, equal weights keep insertion order.
// The returned slice is owned by the caller.
func (m *Merger) Snapshot() []domain.WeighedItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sorted == nil {
		m.sorted = make([]domain.WeighedItem, 0, len(m.entries))
		seqs := make(map[string]uint64, len(m.entries))
		for id, e := range m.entries {
			m.sorted = append(m.sorted, domain.WeighedItem{Item: e.item, Weight: e.weight})
			seqs[id] = e.seq
		}
		slices.SortFunc(m.sorted, func(a, b domain.WeighedItem) int {
			if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
				return c
			}
			return cmp.Compare(seqs[a.ID], seqs[b.ID])
		})
	}
	return slices.Clone(m.sorted)
}

// Len returns the number of items in the merger
func (m *Merger) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sources returns names of all sources with at least one item, sorted
func (m *Merger) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	uniq := map[string]struct{}{}
	for _, e := range m.entries {
		uniq[e.item.Source] = struct{}{}
	}
	res := make([]string, 0, len(uniq))
	for s := range uniq {
		res = append(res, s)
	}
	slices.Sort(res)
	return res
}

// merge inserts or replaces weighed items, must be called under lock
func (m *Merger) merge(items []domain.Item, weights []float64) {
	for i, item := range items {
		if e, ok := m.entries[item.ID]; ok {
			e.item, e.weight = item, weights[i]
			continue
		}
		m.seq++
		m.entries[item.ID] = &entry{item: item, weight: weights[i], seq: m.seq}
	}
	if len(items) > 0 {
		m.sorted = nil
	}
}

// prepare weighs a batch and rejects duplicate ids inside it
func prepare(items []domain.Item, strategy weigh.Strategy) ([]float64, error) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %s", weigh.ErrInvalidBatch, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	weights, err := weigh.Weigh(strategy, items)
	if err != nil {
		return nil, fmt.Errorf("weigh page: %w", err)
	}
	return weights, nil
}

// stamp returns a copy of page items with source and page set from the page header
func stamp(page domain.Page) []domain.Item {
	items := make([]domain.Item, len(page.Items))
	for i, item := range page.Items {
		item.Source, item.Page = page.Source, page.Number
		items[i] = item
	}
	return items
}
