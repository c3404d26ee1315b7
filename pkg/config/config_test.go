package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
  base_url: https://feed.example.com

schedule:
  update_interval: 10m
  max_workers: 2

sources:
  - name: designer-news
    url: https://www.designernews.co/?format=rss
    strategy: popularity
    page_size: 10
    max_pages: 2
  - name: dribbble
    url: https://dribbble.com/shots/popular.rss
    disabled: true
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://feed.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 2, cfg.Schedule.MaxWorkers)
		require.Len(t, cfg.Sources, 2)

		assert.Equal(t, "designer-news", cfg.Sources[0].Name)
		assert.Equal(t, "popularity", cfg.Sources[0].Strategy)
		assert.Equal(t, 10, cfg.Sources[0].PageSize)
		assert.Equal(t, 2, cfg.Sources[0].MaxPages)
		assert.False(t, cfg.Sources[0].Disabled)

		assert.Equal(t, "natural", cfg.Sources[1].Strategy)
		assert.Equal(t, 20, cfg.Sources[1].PageSize)
		assert.Equal(t, 3, cfg.Sources[1].MaxPages)
		assert.True(t, cfg.Sources[1].Disabled)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "sources:\n  - url: https://example.com/feed.xml\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
		assert.Contains(t, cfg.Database.DSN, "plaidfeed.db")
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 3600, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 5, cfg.Schedule.MaxWorkers)
		assert.Equal(t, 30*time.Second, cfg.Schedule.FetchTimeout)
		assert.Equal(t, "Plaidfeed/1.0", cfg.Schedule.UserAgent)
		assert.False(t, cfg.Schedule.ExtractSummary)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, "plaidfeed:feed", cfg.Redis.Key)

		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Sources[0].Name) // name defaults to URL
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("PLAIDFEED_TEST_REDIS", "localhost:6379")
		cfg, err := Load(writeConfig(t, "redis:\n  addr: ${PLAIDFEED_TEST_REDIS}\n"))
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tbl := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"short timeout", "server:\n  timeout: 100ms\n", "server timeout must be at least 1 second"},
		{"short interval", "schedule:\n  update_interval: 10ms\n", "update_interval must be at least 1 second"},
		{"missing url", "sources:\n  - name: dn\n", "sources[0].url is required"},
		{"invalid url", "sources:\n  - name: dn\n    url: not a url\n", "sources[0].url is invalid"},
		{"duplicate name", "sources:\n  - name: dn\n    url: https://a.com\n  - name: dn\n    url: https://b.com\n", `duplicate source name "dn"`},
		{"bad strategy", "sources:\n  - url: https://a.com\n    strategy: random\n", `unknown weighing strategy "random"`},
		{"negative page size", "sources:\n  - url: https://a.com\n    page_size: -1\n", "page_size and max_pages must be at least 1"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Getters(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second},
		Sources: []Source{
			{Name: "dn", URL: "https://dn.example.com/rss", Strategy: "popularity"},
			{Name: "dribbble", URL: "https://dribbble.example.com/rss"},
		},
	}

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)

	assert.Equal(t, cfg.Sources, cfg.GetSources())
	assert.Same(t, cfg, cfg.GetFullConfig())
}
