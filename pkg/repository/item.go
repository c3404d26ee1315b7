package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/plaidfeed/pkg/domain"
)

// ItemRepository stores items of delivered pages
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID        string    `db:"id"`
	Source    string    `db:"source"`
	Page      int       `db:"page"`
	Position  int       `db:"position"`
	Title     string    `db:"title"`
	Link      string    `db:"link"`
	Author    string    `db:"author"`
	Summary   string    `db:"summary"`
	Published time.Time `db:"published"`
	Votes     int       `db:"votes"`
	Comments  int       `db:"comments"`
	UpdatedAt time.Time `db:"updated_at"`
}

const upsertItemQuery = `
	INSERT INTO items (id, source, page, position, title, link, author, summary, published, votes, comments)
	VALUES (:id, :source, :page, :position, :title, :link, :author, :summary, :published, :votes, :comments)
	ON CONFLICT(id) DO UPDATE SET
		source = excluded.source,
		page = excluded.page,
		position = excluded.position,
		title = excluded.title,
		link = excluded.link,
		author = excluded.author,
		summary = excluded.summary,
		published = excluded.published,
		votes = excluded.votes,
		comments = excluded.comments
`

// NewItemRepository creates a new item repository
func NewItemRepository(database *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: database}
}

// SavePage replaces stored items of the page's (source, number) with the page content
func (r *ItemRepository) SavePage(ctx context.Context, page domain.Page) error {
	return withLockRetry(ctx, func() error {
		return r.inTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE source = ? AND page = ?", page.Source, page.Number); err != nil {
				return fmt.Errorf("delete page items: %w", err)
			}
			return insertPage(ctx, tx, page)
		})
	})
}

// ReplaceSource replaces all stored items of the source with the given pages
func (r *ItemRepository) ReplaceSource(ctx context.Context, source string, pages []domain.Page) error {
	return withLockRetry(ctx, func() error {
		return r.inTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE source = ?", source); err != nil {
				return fmt.Errorf("delete source items: %w", err)
			}
			for _, page := range pages {
				if page.Source != source {
					return fmt.Errorf("page %d belongs to %q, not %q", page.Number, page.Source, source)
				}
				if err := insertPage(ctx, tx, page); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// DeleteSource removes all stored items of the source, returns number of removed items
func (r *ItemRepository) DeleteSource(ctx context.Context, source string) (int64, error) {
	var removed int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE source = ?", source)
		if err != nil {
			return fmt.Errorf("delete source items: %w", err)
		}
		if removed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		return nil
	})
	return removed, err
}

// LoadPages returns stored pages of the given sources, ordered by source and page number,
// items in their original source order. No sources means all of them.
func (r *ItemRepository) LoadPages(ctx context.Context, sources ...string) ([]domain.Page, error) {
	query := "SELECT * FROM items"
	var args []any
	if len(sources) > 0 {
		q, a, err := sqlx.In(query+" WHERE source IN (?)", sources)
		if err != nil {
			return nil, fmt.Errorf("build load query: %w", err)
		}
		query, args = r.db.Rebind(q), a
	}
	query += " ORDER BY source, page, position"

	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	var pages []domain.Page
	for _, rec := range recs {
		if n := len(pages); n == 0 || pages[n-1].Source != rec.Source || pages[n-1].Number != rec.Page {
			pages = append(pages, domain.Page{Source: rec.Source, Number: rec.Page})
		}
		last := &pages[len(pages)-1]
		last.Items = append(last.Items, rec.toDomain())
	}
	return pages, nil
}

// CountItems returns number of stored items per source
func (r *ItemRepository) CountItems(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Source string `db:"source"`
		Count  int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT source, COUNT(*) AS cnt FROM items GROUP BY source"); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Source] = row.Count
	}
	return res, nil
}

// inTx executes fn within a transaction, lock errors from commit are left for the retrier
func (r *ItemRepository) inTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback also failed: %s)", err, rbErr.Error())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertPage(ctx context.Context, tx *sqlx.Tx, page domain.Page) error {
	for pos, item := range page.Items {
		rec := itemSQL{
			ID:        item.ID,
			Source:    page.Source,
			Page:      page.Number,
			Position:  pos,
			Title:     item.Title,
			Link:      item.Link,
			Author:    item.Author,
			Summary:   item.Summary,
			Published: item.Published.UTC(),
			Votes:     item.Votes,
			Comments:  item.Comments,
		}
		if _, err := tx.NamedExecContext(ctx, upsertItemQuery, rec); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}
	return nil
}

func (i *itemSQL) toDomain() domain.Item {
	return domain.Item{
		ID:        i.ID,
		Source:    i.Source,
		Page:      i.Page,
		Title:     i.Title,
		Link:      i.Link,
		Author:    i.Author,
		Summary:   i.Summary,
		Published: i.Published,
		Votes:     i.Votes,
		Comments:  i.Comments,
	}
}
