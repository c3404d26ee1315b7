package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/server/mocks"
)

// testEnv holds mocks behind a test server
type testEnv struct {
	cfg       *mocks.ConfigProviderMock
	db        *mocks.DatabaseMock
	feed      *mocks.FeedMock
	scheduler *mocks.SchedulerMock
}

// newTestServer creates a server with permissive mocks, snapshot is served by the feed mock
func newTestServer(t *testing.T, snapshot []domain.WeighedItem) (*Server, *testEnv) {
	t.Helper()
	env := &testEnv{
		cfg: &mocks.ConfigProviderMock{
			GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
			GetFullConfigFunc: func() *config.Config {
				return &config.Config{Server: config.ServerConfig{BaseURL: "https://feed.example.com"}}
			},
		},
		db: &mocks.DatabaseMock{
			GetSourcesFunc: func(ctx context.Context, enabledOnly bool) ([]domain.Source, error) { return nil, nil },
			CountItemsFunc: func(ctx context.Context) (map[string]int, error) { return map[string]int{}, nil },
		},
		feed: &mocks.FeedMock{
			SnapshotFunc: func() []domain.WeighedItem { return snapshot },
			LenFunc:      func() int { return len(snapshot) },
			SourcesFunc: func() []string {
				var res []string
				for _, it := range snapshot {
					if !slices.Contains(res, it.Source) {
						res = append(res, it.Source)
					}
				}
				return res
			},
		},
		scheduler: &mocks.SchedulerMock{
			UpdateSourceFunc:  func(ctx context.Context, name string) error { return nil },
			EnableSourceFunc:  func(ctx context.Context, name string) error { return nil },
			DisableSourceFunc: func(ctx context.Context, name string) error { return nil },
			DeliverPageFunc:   func(ctx context.Context, page domain.Page) error { return nil },
		},
	}
	return New(env.cfg, env.db, env.feed, env.scheduler, "1.0.0", false), env
}

// serve sends request through the full router with middlewares
func serve(srv *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_New(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.router)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv, env := newTestServer(t, nil)
	env.cfg.GetServerConfigFunc = func() (string, time.Duration) {
		return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:gosec // test url
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Middlewares(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	w := serve(srv, http.MethodGet, "/ping", http.NoBody)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = serve(srv, http.MethodGet, "/api/v1/status", http.NoBody)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plaidfeed", w.Header().Get("App-Name"))
	assert.Equal(t, "1.0.0", w.Header().Get("App-Version"))
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/api/v1/status", http.StatusOK},
		{http.MethodGet, "/api/v1/feed", http.StatusOK},
		{http.MethodGet, "/api/v1/sources", http.StatusOK},
		{http.MethodPost, "/api/v1/sources/dn/refresh", http.StatusOK},
		{http.MethodPost, "/api/v1/sources/dn/enable", http.StatusOK},
		{http.MethodPost, "/api/v1/sources/dn/disable", http.StatusOK},
		{http.MethodGet, "/rss", http.StatusOK},
		{http.MethodGet, "/opml", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(srv, tc.method, tc.path, http.NoBody)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
