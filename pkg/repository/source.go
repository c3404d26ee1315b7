package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/plaidfeed/pkg/domain"
)

// ErrSourceNotFound is returned for operations on unknown sources
var ErrSourceNotFound = errors.New("source not found")

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	Name        string     `db:"name"`
	URL         string     `db:"url"`
	Strategy    string     `db:"strategy"`
	PageSize    int        `db:"page_size"`
	MaxPages    int        `db:"max_pages"`
	Enabled     bool       `db:"enabled"`
	LastFetched *time.Time `db:"last_fetched"`
	LastError   string     `db:"last_error"`
	ErrorCount  int        `db:"error_count"`
	CreatedAt   time.Time  `db:"created_at"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(database *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: database}
}

// SyncSources upserts configured sources. Settings come from the config, but the enabled flag of
// an already known source is kept, so runtime filter changes survive restarts.
func (r *SourceRepository) SyncSources(ctx context.Context, sources []domain.Source) error {
	query := `
		INSERT INTO sources (name, url, strategy, page_size, max_pages, enabled)
		VALUES (:name, :url, :strategy, :page_size, :max_pages, :enabled)
		ON CONFLICT(name) DO UPDATE SET
			url = excluded.url,
			strategy = excluded.strategy,
			page_size = excluded.page_size,
			max_pages = excluded.max_pages
	`
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, src := range sources {
		rec := sourceSQL{Name: src.Name, URL: src.URL, Strategy: src.Strategy, PageSize: src.PageSize,
			MaxPages: src.MaxPages, Enabled: src.Enabled}
		if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
			return fmt.Errorf("upsert source %s: %w", src.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSource retrieves a source by name
func (r *SourceRepository) GetSource(ctx context.Context, name string) (*domain.Source, error) {
	var rec sourceSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM sources WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return rec.toDomain(), nil
}

// GetSources retrieves all sources ordered by name, optionally only the enabled ones
func (r *SourceRepository) GetSources(ctx context.Context, enabledOnly bool) ([]domain.Source, error) {
	query := "SELECT * FROM sources"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY name"

	var recs []sourceSQL
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	res := make([]domain.Source, len(recs))
	for i := range recs {
		res[i] = *recs[i].toDomain()
	}
	return res, nil
}

// SetEnabled turns a source filter on or off
func (r *SourceRepository) SetEnabled(ctx context.Context, name string, enabled bool) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE sources SET enabled = ? WHERE name = ?", enabled, name)
		if err != nil {
			return fmt.Errorf("update source status: %w", err)
		}
		return affected(res, name)
	})
}

// UpdateFetched records a successful fetch and resets the error counter
func (r *SourceRepository) UpdateFetched(ctx context.Context, name string, fetchedAt time.Time) error {
	return withLockRetry(ctx, func() error {
		query := `
			UPDATE sources
			SET last_fetched = ?,
			    error_count = 0,
			    last_error = ''
			WHERE name = ?
		`
		res, err := r.db.ExecContext(ctx, query, fetchedAt.UTC(), name)
		if err != nil {
			return fmt.Errorf("update source fetched: %w", err)
		}
		return affected(res, name)
	})
}

// UpdateError records a failed fetch
func (r *SourceRepository) UpdateError(ctx context.Context, name, errMsg string) error {
	return withLockRetry(ctx, func() error {
		query := `
			UPDATE sources
			SET error_count = error_count + 1,
			    last_error = ?
			WHERE name = ?
		`
		res, err := r.db.ExecContext(ctx, query, errMsg, name)
		if err != nil {
			return fmt.Errorf("update source error: %w", err)
		}
		return affected(res, name)
	})
}

// affected turns "no rows updated" into ErrSourceNotFound
func affected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	return nil
}

func (s *sourceSQL) toDomain() *domain.Source {
	return &domain.Source{
		Name:        s.Name,
		URL:         s.URL,
		Strategy:    s.Strategy,
		PageSize:    s.PageSize,
		MaxPages:    s.MaxPages,
		Enabled:     s.Enabled,
		LastFetched: s.LastFetched,
		LastError:   s.LastError,
		ErrorCount:  s.ErrorCount,
	}
}
