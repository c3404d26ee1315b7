package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/weigh"
)

//go:generate moq -out mocks/source_manager.go -pkg mocks -skip-ensure -fmt goimports . SourceManager
//go:generate moq -out mocks/item_manager.go -pkg mocks -skip-ensure -fmt goimports . ItemManager
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// Scheduler keeps the merged feed fresh: it fetches enabled sources periodically, feeds their pages
// into the merger, persists them and publishes the resulting snapshot.
type Scheduler struct {
	sourceManager SourceManager
	itemManager   ItemManager
	parser        Parser
	merger        Merger
	publisher     Publisher

	updateInterval time.Duration
	maxWorkers     int

	locksMu   sync.Mutex
	locks     map[string]*sync.Mutex // per-source, serializes fetch, delivery and filter changes
	publishMu sync.Mutex

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// SourceManager handles source state operations
type SourceManager interface {
	GetSource(ctx context.Context, name string) (*domain.Source, error)
	GetSources(ctx context.Context, enabledOnly bool) ([]domain.Source, error)
	SetEnabled(ctx context.Context, name string, enabled bool) error
	UpdateFetched(ctx context.Context, name string, fetchedAt time.Time) error
	UpdateError(ctx context.Context, name, errMsg string) error
}

// ItemManager handles persisted pages
type ItemManager interface {
	SavePage(ctx context.Context, page domain.Page) error
	ReplaceSource(ctx context.Context, source string, pages []domain.Page) error
	DeleteSource(ctx context.Context, source string) (int64, error)
	LoadPages(ctx context.Context, sources ...string) ([]domain.Page, error)
}

// Parser fetches a source and splits it into pages
type Parser interface {
	Parse(ctx context.Context, src config.Source) ([]domain.Page, error)
}

// Publisher receives every new snapshot of the merged feed
type Publisher interface {
	Publish(ctx context.Context, snapshot []domain.WeighedItem) error
}

// Merger is the in-memory unified feed
type Merger interface {
	Deliver(page domain.Page, strategy weigh.Strategy) error
	ReplaceSource(source string, pages []domain.Page, strategy weigh.Strategy) error
	RemoveSource(source string) int
	Snapshot() []domain.WeighedItem
}

// Params contains all dependencies and configuration for the scheduler
type Params struct {
	SourceManager SourceManager
	ItemManager   ItemManager
	Parser        Parser
	Merger        Merger
	Publisher     Publisher // optional

	UpdateInterval time.Duration
	MaxWorkers     int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.UpdateInterval <= 0 {
		params.UpdateInterval = 30 * time.Minute
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{
		sourceManager:  params.SourceManager,
		itemManager:    params.ItemManager,
		parser:         params.Parser,
		merger:         params.Merger,
		publisher:      params.Publisher,
		updateInterval: params.UpdateInterval,
		maxWorkers:     params.MaxWorkers,
		locks:          make(map[string]*sync.Mutex),
	}
}

// Start begins periodic updates, the first one runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.updateWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, %d workers", s.updateInterval, s.maxWorkers)
}

// Stop gracefully stops the scheduler and waits for running updates
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// updateWorker periodically updates all enabled sources
func (s *Scheduler) updateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.UpdateAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.UpdateAll(ctx)
		}
	}
}

// lock returns the unlock func of the source's mutex, creating it on first use
func (s *Scheduler) lock(source string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[source]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[source] = mu
	}
	s.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

// publish sends the current snapshot to the publisher. The snapshot is taken under publishMu,
// so the last published snapshot is always the latest one.
func (s *Scheduler) publish(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	if err := s.publisher.Publish(ctx, s.merger.Snapshot()); err != nil {
		lgr.Printf("[WARN] failed to publish snapshot: %v", err)
	}
}
