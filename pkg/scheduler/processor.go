package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/weigh"
)

// ErrSourceDisabled is returned when a page is delivered to or a refresh is requested for a disabled source
var ErrSourceDisabled = errors.New("source disabled")

// UpdateAll fetches all enabled sources in parallel, limited by maxWorkers.
// Failures of individual sources are logged and recorded, they don't stop the others.
func (s *Scheduler) UpdateAll(ctx context.Context) {
	sources, err := s.sourceManager.GetSources(ctx, true)
	if err != nil {
		lgr.Printf("[ERROR] failed to get enabled sources: %v", err)
		return
	}

	lgr.Printf("[INFO] updating %d sources", len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for _, src := range sources {
		g.Go(func() error {
			if err := s.UpdateSource(ctx, src.Name); err != nil {
				lgr.Printf("[WARN] failed to update source %s: %v", src.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lgr.Printf("[ERROR] source update error: %v", err)
	}

	lgr.Printf("[INFO] source update completed")
}

// UpdateSource fetches the source and replaces all its items in the merged feed and in the store.
// Items the source doesn't list anymore leave the feed, the rest keep their place on ties.
func (s *Scheduler) UpdateSource(ctx context.Context, name string) error {
	unlock := s.lock(name)
	defer unlock()

	src, strategy, err := s.activeSource(ctx, name)
	if err != nil {
		return err
	}

	lgr.Printf("[DEBUG] updating source %s", name)
	pages, err := s.parser.Parse(ctx, fetchSpec(*src))
	if err != nil {
		s.recordError(ctx, name, err)
		return err
	}

	if err := s.merger.ReplaceSource(name, pages, strategy); err != nil {
		s.recordError(ctx, name, err)
		return fmt.Errorf("merge source %s: %w", name, err)
	}

	// the merger is already updated, a store failure only loses persistence until the next refresh
	storeErr := s.itemManager.ReplaceSource(ctx, name, pages)
	if storeErr != nil {
		storeErr = fmt.Errorf("store source %s: %w", name, storeErr)
	}

	if err := s.sourceManager.UpdateFetched(ctx, name, time.Now()); err != nil {
		lgr.Printf("[WARN] failed to update fetch time for source %s: %v", name, err)
	}

	s.publish(ctx)
	lgr.Printf("[INFO] updated source %s: %d pages, %d items", name, len(pages), countItems(pages))
	return storeErr
}

// DeliverPage merges one page of items pushed from outside. The page replaces the earlier delivery
// of the same number in the feed and in the store, items are stamped with the page's source and number.
// An empty page changes nothing.
func (s *Scheduler) DeliverPage(ctx context.Context, page domain.Page) error {
	unlock := s.lock(page.Source)
	defer unlock()

	_, strategy, err := s.activeSource(ctx, page.Source)
	if err != nil {
		return err
	}

	if err := s.merger.Deliver(page, strategy); err != nil {
		return fmt.Errorf("deliver page %d of %s: %w", page.Number, page.Source, err)
	}
	if len(page.Items) == 0 {
		return nil
	}

	if err := s.itemManager.SavePage(ctx, page); err != nil {
		s.publish(ctx)
		return fmt.Errorf("store page %d of %s: %w", page.Number, page.Source, err)
	}

	s.publish(ctx)
	lgr.Printf("[DEBUG] delivered page %d of %s with %d items", page.Number, page.Source, len(page.Items))
	return nil
}

// EnableSource turns the source filter on and fetches it right away. A failed fetch doesn't undo
// the toggle, it is logged and left in the source's error state for the next scheduled update.
func (s *Scheduler) EnableSource(ctx context.Context, name string) error {
	if err := s.sourceManager.SetEnabled(ctx, name, true); err != nil {
		return fmt.Errorf("enable source %s: %w", name, err)
	}
	lgr.Printf("[INFO] source %s enabled", name)
	if err := s.UpdateSource(ctx, name); err != nil {
		lgr.Printf("[WARN] failed to refresh enabled source %s: %v", name, err)
	}
	return nil
}

// DisableSource turns the source filter off and drops all its items from the feed and the store
func (s *Scheduler) DisableSource(ctx context.Context, name string) error {
	unlock := s.lock(name)
	defer unlock()

	if err := s.sourceManager.SetEnabled(ctx, name, false); err != nil {
		return fmt.Errorf("disable source %s: %w", name, err)
	}

	removed := s.merger.RemoveSource(name)
	if _, err := s.itemManager.DeleteSource(ctx, name); err != nil {
		lgr.Printf("[WARN] failed to delete stored items of source %s: %v", name, err)
	}

	s.publish(ctx)
	lgr.Printf("[INFO] source %s disabled, %d items removed", name, removed)
	return nil
}

// Restore replays stored pages of enabled sources into the merger, weights are recomputed on the way.
// Sources with stored pages that fail to weigh are skipped with a warning.
func (s *Scheduler) Restore(ctx context.Context) error {
	sources, err := s.sourceManager.GetSources(ctx, true)
	if err != nil {
		return fmt.Errorf("get enabled sources: %w", err)
	}
	if len(sources) == 0 {
		return nil
	}

	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	pages, err := s.itemManager.LoadPages(ctx, names...)
	if err != nil {
		return fmt.Errorf("load stored pages: %w", err)
	}

	bySource := make(map[string][]domain.Page, len(sources))
	for _, p := range pages {
		bySource[p.Source] = append(bySource[p.Source], p)
	}

	restored := 0
	for _, src := range sources {
		stored := bySource[src.Name]
		if len(stored) == 0 {
			continue
		}
		strategy, err := weigh.ParseStrategy(src.Strategy)
		if err != nil {
			lgr.Printf("[WARN] skip restoring source %s: %v", src.Name, err)
			continue
		}
		if err := s.merger.ReplaceSource(src.Name, stored, strategy); err != nil {
			lgr.Printf("[WARN] skip restoring source %s: %v", src.Name, err)
			continue
		}
		restored += countItems(stored)
	}

	s.publish(ctx)
	lgr.Printf("[INFO] restored %d items of %d sources", restored, len(sources))
	return nil
}

// activeSource returns an enabled source with its weighing strategy
func (s *Scheduler) activeSource(ctx context.Context, name string) (*domain.Source, weigh.Strategy, error) {
	src, err := s.sourceManager.GetSource(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("get source %s: %w", name, err)
	}
	if !src.Enabled {
		return nil, 0, fmt.Errorf("%w: %s", ErrSourceDisabled, name)
	}
	strategy, err := weigh.ParseStrategy(src.Strategy)
	if err != nil {
		return nil, 0, fmt.Errorf("source %s: %w", name, err)
	}
	return src, strategy, nil
}

func (s *Scheduler) recordError(ctx context.Context, name string, fetchErr error) {
	if err := s.sourceManager.UpdateError(ctx, name, fetchErr.Error()); err != nil {
		lgr.Printf("[WARN] failed to update error status for source %s: %v", name, err)
	}
}

// fetchSpec converts a stored source to what the parser needs
func fetchSpec(src domain.Source) config.Source {
	return config.Source{
		Name:     src.Name,
		URL:      src.URL,
		Strategy: src.Strategy,
		PageSize: src.PageSize,
		MaxPages: src.MaxPages,
	}
}

func countItems(pages []domain.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Items)
	}
	return n
}
