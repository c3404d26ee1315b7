package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Server:   ServerConfig{Listen: ":8080", Timeout: 30 * time.Second},
			Database: DatabaseConfig{DSN: "file:test.db"},
			Sources:  []Source{{Name: "dn", URL: "https://dn.example.com/rss"}},
		}
		return cfg
	}

	tests := []struct {
		name   string
		modify func(cfg *Config)
		errMsg string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, errMsg: "server.listen is required"},
		{name: "missing timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, errMsg: "server.timeout is required"},
		{name: "missing dsn", modify: func(cfg *Config) { cfg.Database.DSN = "" }, errMsg: "database.dsn is required"},
		{name: "missing source name", modify: func(cfg *Config) { cfg.Sources[0].Name = "" }, errMsg: "sources[0].name is required"},
		{name: "missing source url", modify: func(cfg *Config) { cfg.Sources[0].URL = "" }, errMsg: "sources[0].url is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var generated struct {
		Defs map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &generated))

	var embedded struct {
		Defs map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	for _, def := range []string{"Config", "ServerConfig", "DatabaseConfig", "ScheduleConfig", "RedisConfig", "Source"} {
		require.Contains(t, generated.Defs, def)
		require.Contains(t, embedded.Defs, def)
		for prop := range generated.Defs[def].Properties {
			assert.Contains(t, embedded.Defs[def].Properties, prop, "schema.json is stale for %s.%s, run go generate", def, prop)
		}
	}
}
