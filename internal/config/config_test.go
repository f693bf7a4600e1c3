package config

import (
	"flag"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "web/static", cfg.StaticDir)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "./uno.db", cfg.DBDSN)
	assert.Equal(t, 8, cfg.MaxPlayers)
	assert.True(t, cfg.Stacking)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("UNO_HTTP_ADDR", ":9000")
	t.Setenv("UNO_MAX_PLAYERS", "4")
	t.Setenv("UNO_STACKING", "false")
	t.Setenv("UNO_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("UNO_LOG_LEVEL", "DEBUG")

	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-http-addr", ":9100", "-db-driver", "pgx"})
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.HTTPAddr)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 4, cfg.MaxPlayers)
	assert.False(t, cfg.Stacking)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	rules := cfg.Rules()
	assert.Equal(t, 4, rules.MaxPlayers)
	assert.False(t, rules.Stacking)
	assert.Equal(t, 7, rules.HandSize)
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad driver", args: []string{"-db-driver", "mysql"}},
		{name: "too few players", args: []string{"-max-players", "1"}},
		{name: "too many players", args: []string{"-max-players", "11"}},
		{name: "bad level", args: []string{"-log-level", "loud"}},
		{name: "bad env int", env: map[string]string{"UNO_MAX_PLAYERS": "many"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			_, err := ParseConfig(fs, tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseConfigRequiresFlagSet(t *testing.T) {
	_, err := ParseConfig(nil, nil)
	assert.Error(t, err)
}
