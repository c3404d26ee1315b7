package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/merger"
	"github.com/umputun/plaidfeed/pkg/repository"
	"github.com/umputun/plaidfeed/pkg/scheduler/mocks"
	"github.com/umputun/plaidfeed/pkg/source"
)

// rssWithComments makes an RSS document, one item per comments value
func rssWithComments(prefix string, comments ...int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><rss version="2.0" xmlns:slash="http://purl.org/rss/1.0/modules/slash/"><channel><title>t</title>`)
	for i, c := range comments {
		fmt.Fprintf(&sb, `<item><guid>%s-%d</guid><title>%s %d</title><link>https://example.com/%s/%d</link><slash:comments>%d</slash:comments></item>`,
			prefix, i, prefix, i, prefix, i, c)
	}
	sb.WriteString(`</channel></rss>`)
	return sb.String()
}

func TestScheduler_Integration_FullWorkflow(t *testing.T) {
	ctx := context.Background()

	feeds := map[string]string{
		"/dn":  rssWithComments("dn", 3, 10, 0, 5),
		"/drb": rssWithComments("drb", 0, 0, 0, 0),
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := feeds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Source.SyncSources(ctx, []domain.Source{
		{Name: "dn", URL: ts.URL + "/dn", Strategy: "popularity", PageSize: 2, MaxPages: 5, Enabled: true},
		{Name: "drb", URL: ts.URL + "/drb", Strategy: "natural", PageSize: 3, MaxPages: 1, Enabled: true},
		{Name: "gone", URL: ts.URL + "/gone", Strategy: "natural", PageSize: 2, MaxPages: 1, Enabled: true},
	}))

	publisher := &mocks.PublisherMock{
		PublishFunc: func(ctx context.Context, snapshot []domain.WeighedItem) error { return nil },
	}
	newSched := func(m *merger.Merger) *Scheduler {
		return NewScheduler(Params{
			SourceManager: repos.Source,
			ItemManager:   repos.Item,
			Parser:        source.NewParser(2*time.Second, "test"),
			Merger:        m,
			Publisher:     publisher,
			MaxWorkers:    1, // sources are merged in name order, so cross-source ties are deterministic
		})
	}

	mrg := merger.New()
	sched := newSched(mrg)
	sched.UpdateAll(ctx)

	// dn pages [3,10] [0,5] weigh 0.7 0 | 2 1, drb page 0 weighs 0 1/3 2/3 and drops the fourth item.
	// dn-1 and drb-0 share weight 0, dn was merged first.
	snapshot := mrg.Snapshot()
	assert.Equal(t, []string{"dn:dn-1", "drb:drb-0", "drb:drb-1", "drb:drb-2", "dn:dn-0", "dn:dn-3", "dn:dn-2"}, ids(snapshot))

	counts, err := repos.Item.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dn": 4, "drb": 3}, counts)

	gone, err := repos.Source.GetSource(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, 1, gone.ErrorCount)
	assert.Contains(t, gone.LastError, "404")
	dn, err := repos.Source.GetSource(ctx, "dn")
	require.NoError(t, err)
	assert.NotNil(t, dn.LastFetched)

	t.Run("restart restores the same feed", func(t *testing.T) {
		restored := merger.New()
		require.NoError(t, newSched(restored).Restore(ctx))
		got := restored.Snapshot()
		require.Len(t, got, len(snapshot))
		assert.Equal(t, ids(snapshot), ids(got))
		for i := range snapshot {
			assert.InDelta(t, snapshot[i].Weight, got[i].Weight, 1e-9, snapshot[i].ID)
		}
	})

	t.Run("disable removes source everywhere", func(t *testing.T) {
		require.NoError(t, sched.DisableSource(ctx, "drb"))
		assert.Equal(t, []string{"dn"}, mrg.Sources())

		counts, err := repos.Item.CountItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"dn": 4}, counts)

		restored := merger.New()
		require.NoError(t, newSched(restored).Restore(ctx))
		assert.Equal(t, 4, restored.Len())

		last := publisher.PublishCalls()[len(publisher.PublishCalls())-1]
		assert.Len(t, last.Snapshot, 4)
	})

	t.Run("refresh follows the source", func(t *testing.T) {
		feeds["/dn"] = rssWithComments("dn", 1, 2)
		require.NoError(t, sched.UpdateSource(ctx, "dn"))
		assert.Equal(t, []string{"dn:dn-1", "dn:dn-0"}, ids(mrg.Snapshot()))

		pages, err := repos.Item.LoadPages(ctx, "dn")
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Len(t, pages[0].Items, 2)
	})

	t.Run("pushed page joins the feed", func(t *testing.T) {
		require.NoError(t, sched.EnableSource(ctx, "drb"))
		page := domain.Page{Source: "drb", Number: 3, Items: []domain.Item{{ID: "drb:pushed", Title: "pushed"}}}
		require.NoError(t, sched.DeliverPage(ctx, page))

		snap := mrg.Snapshot()
		require.NotEmpty(t, snap)
		assert.Equal(t, "drb:pushed", snap[len(snap)-1].ID)
		assert.InDelta(t, 3.0, snap[len(snap)-1].Weight, 1e-9)

		pages, err := repos.Item.LoadPages(ctx, "drb")
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 3, pages[1].Number)
	})

	t.Run("redelivered page matches the store", func(t *testing.T) {
		first := domain.Page{Source: "dn", Number: 4, Items: []domain.Item{{ID: "dn:a", Votes: 5}, {ID: "dn:b", Votes: 1}}}
		require.NoError(t, sched.DeliverPage(ctx, first))
		second := domain.Page{Source: "dn", Number: 4, Items: []domain.Item{{ID: "dn:a", Votes: 5}}}
		require.NoError(t, sched.DeliverPage(ctx, second))

		live := mrg.Snapshot()
		assert.NotContains(t, ids(live), "dn:b")

		restored := merger.New()
		require.NoError(t, newSched(restored).Restore(ctx))
		got := restored.Snapshot()
		require.Len(t, got, len(live))
		assert.ElementsMatch(t, ids(live), ids(got))

		pages, err := repos.Item.LoadPages(ctx, "dn")
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 4, pages[1].Number)
		assert.Len(t, pages[1].Items, 1)
	})
}
