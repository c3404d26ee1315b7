package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/plaidfeed/pkg/domain"
)

func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func testPage(source string, number, size int) domain.Page {
	p := domain.Page{Source: source, Number: number}
	for i := range size {
		p.Items = append(p.Items, domain.Item{
			ID:        fmt.Sprintf("%s:%d:%d", source, number, i),
			Source:    source,
			Page:      number,
			Title:     fmt.Sprintf("item %d", i),
			Link:      fmt.Sprintf("https://example.com/%s/%d/%d", source, number, i),
			Published: time.Date(2024, 1, 1, 12, i, 0, 0, time.UTC),
			Votes:     i * 2,
			Comments:  i,
		})
	}
	return p
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Ping(ctx))

	var count int
	require.NoError(t, repos.DB.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_items_source_page'"))
	assert.Equal(t, 1, count, "migrations should create indexes")

	// migrations are idempotent
	require.NoError(t, runMigrations(ctx, repos.DB))
}

func TestSourceRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	sources := []domain.Source{
		{Name: "dn", URL: "https://dn.example.com/rss", Strategy: "popularity", PageSize: 10, MaxPages: 2, Enabled: true},
		{Name: "dribbble", URL: "https://dribbble.example.com/rss", Strategy: "natural", PageSize: 20, MaxPages: 3, Enabled: false},
	}
	require.NoError(t, repos.Source.SyncSources(ctx, sources))

	t.Run("get sources", func(t *testing.T) {
		all, err := repos.Source.GetSources(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "dn", all[0].Name)
		assert.Equal(t, "popularity", all[0].Strategy)
		assert.Equal(t, 10, all[0].PageSize)
		assert.True(t, all[0].Enabled)
		assert.Nil(t, all[0].LastFetched)

		enabled, err := repos.Source.GetSources(ctx, true)
		require.NoError(t, err)
		require.Len(t, enabled, 1)
		assert.Equal(t, "dn", enabled[0].Name)
	})

	t.Run("sync keeps runtime enabled flag", func(t *testing.T) {
		require.NoError(t, repos.Source.SetEnabled(ctx, "dn", false))
		updated := sources[0]
		updated.URL = "https://dn.example.com/new-rss"
		require.NoError(t, repos.Source.SyncSources(ctx, []domain.Source{updated}))

		src, err := repos.Source.GetSource(ctx, "dn")
		require.NoError(t, err)
		assert.False(t, src.Enabled)
		assert.Equal(t, "https://dn.example.com/new-rss", src.URL)
		require.NoError(t, repos.Source.SetEnabled(ctx, "dn", true))
	})

	t.Run("fetch state", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateError(ctx, "dn", "timeout"))
		require.NoError(t, repos.Source.UpdateError(ctx, "dn", "status 503"))
		src, err := repos.Source.GetSource(ctx, "dn")
		require.NoError(t, err)
		assert.Equal(t, 2, src.ErrorCount)
		assert.Equal(t, "status 503", src.LastError)

		fetched := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, repos.Source.UpdateFetched(ctx, "dn", fetched))
		src, err = repos.Source.GetSource(ctx, "dn")
		require.NoError(t, err)
		assert.Equal(t, 0, src.ErrorCount)
		assert.Empty(t, src.LastError)
		require.NotNil(t, src.LastFetched)
		assert.True(t, fetched.Equal(*src.LastFetched))
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := repos.Source.GetSource(ctx, "unknown")
		require.ErrorIs(t, err, ErrSourceNotFound)
		require.ErrorIs(t, repos.Source.SetEnabled(ctx, "unknown", true), ErrSourceNotFound)
		require.ErrorIs(t, repos.Source.UpdateFetched(ctx, "unknown", time.Now()), ErrSourceNotFound)
		require.ErrorIs(t, repos.Source.UpdateError(ctx, "unknown", "x"), ErrSourceNotFound)
	})
}

func TestItemRepository_Pages(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Item.SavePage(ctx, testPage("dn", 1, 2)))
	require.NoError(t, repos.Item.SavePage(ctx, testPage("dn", 0, 3)))
	require.NoError(t, repos.Item.SavePage(ctx, testPage("ph", 0, 1)))

	t.Run("load keeps page and position order", func(t *testing.T) {
		pages, err := repos.Item.LoadPages(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 3)

		assert.Equal(t, "dn", pages[0].Source)
		assert.Equal(t, 0, pages[0].Number)
		require.Len(t, pages[0].Items, 3)
		for i, want := range testPage("dn", 0, 3).Items {
			got := pages[0].Items[i]
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Link, got.Link)
			assert.Equal(t, want.Votes, got.Votes)
			assert.Equal(t, want.Comments, got.Comments)
			assert.True(t, want.Published.Equal(got.Published), "published %v != %v", want.Published, got.Published)
		}

		assert.Equal(t, "dn", pages[1].Source)
		assert.Equal(t, 1, pages[1].Number)
		assert.Equal(t, "ph", pages[2].Source)
	})

	t.Run("load selected sources", func(t *testing.T) {
		pages, err := repos.Item.LoadPages(ctx, "ph")
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "ph", pages[0].Source)
	})

	t.Run("save page replaces its items", func(t *testing.T) {
		fresh := testPage("dn", 0, 1)
		fresh.Items[0].Votes = 100
		require.NoError(t, repos.Item.SavePage(ctx, fresh))

		pages, err := repos.Item.LoadPages(ctx, "dn")
		require.NoError(t, err)
		require.Len(t, pages, 2)
		require.Len(t, pages[0].Items, 1)
		assert.Equal(t, 100, pages[0].Items[0].Votes)
	})

	t.Run("item moved to another page", func(t *testing.T) {
		moved := domain.Page{Source: "dn", Number: 2, Items: []domain.Item{testPage("dn", 1, 1).Items[0]}}
		require.NoError(t, repos.Item.SavePage(ctx, moved))

		pages, err := repos.Item.LoadPages(ctx, "dn")
		require.NoError(t, err)
		counts := map[int]int{}
		for _, p := range pages {
			counts[p.Number] = len(p.Items)
		}
		assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, counts)
		assert.Equal(t, 2, pages[2].Items[0].Page)
	})

	t.Run("count and delete", func(t *testing.T) {
		counts, err := repos.Item.CountItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"dn": 3, "ph": 1}, counts)

		removed, err := repos.Item.DeleteSource(ctx, "dn")
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		pages, err := repos.Item.LoadPages(ctx)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "ph", pages[0].Source)
	})
}

func TestItemRepository_ReplaceSource(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Item.SavePage(ctx, testPage("dn", 0, 3)))
	require.NoError(t, repos.Item.SavePage(ctx, testPage("dn", 1, 3)))
	require.NoError(t, repos.Item.SavePage(ctx, testPage("ph", 0, 2)))

	require.NoError(t, repos.Item.ReplaceSource(ctx, "dn", []domain.Page{testPage("dn", 0, 2)}))
	counts, err := repos.Item.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dn": 2, "ph": 2}, counts)

	err = repos.Item.ReplaceSource(ctx, "dn", []domain.Page{testPage("ph", 0, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `belongs to "ph"`)

	counts, err = repos.Item.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dn": 2, "ph": 2}, counts, "failed replace must roll back")
}

func TestItemRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	repos, err := NewRepositories(ctx, Config{
		DSN:          "file:" + dbFile + "?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	})
	require.NoError(t, err)
	defer repos.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- repos.Item.SavePage(ctx, testPage(fmt.Sprintf("src%d", n%5), n/5, 5))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	pages, err := repos.Item.LoadPages(ctx)
	require.NoError(t, err)
	assert.Len(t, pages, 20)
}

func TestSplitMigrationStatements(t *testing.T) {
	sql := `
-- comment
CREATE INDEX IF NOT EXISTS a ON t(x);

CREATE TRIGGER IF NOT EXISTS tr AFTER UPDATE ON t
BEGIN
    UPDATE t SET y = 1;
END;
CREATE INDEX IF NOT EXISTS b ON t(y)`

	stmts := splitMigrationStatements(sql)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS a ON t(x);", stmts[0])
	assert.Contains(t, stmts[1], "UPDATE t SET y = 1;")
	assert.True(t, strings.HasSuffix(stmts[1], "END;"))
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS b ON t(y)", stmts[2])
}
