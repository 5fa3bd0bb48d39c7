package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://places.pub", cfg.BaseURL)
	assert.Equal(t, "overpass", cfg.Backend)
	assert.Equal(t, 100, cfg.MaxSearchResults)
	assert.Equal(t, 60*time.Second, cfg.OverpassTimeout)
	assert.Equal(t, 1.0, cfg.OverpassRPS)
	assert.Equal(t, "places.db", cfg.WarehousePath)
}

func TestNewFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND", "kv")
	t.Setenv("KV_PATH", "/var/lib/places/store.db")
	t.Setenv("MAX_SEARCH_RESULTS", "25")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "kv", cfg.Backend)
	assert.Equal(t, "/var/lib/places/store.db", cfg.KVPath)
	assert.Equal(t, 25, cfg.MaxSearchResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "warehouse", cfg: Config{Backend: "warehouse", MaxSearchResults: 100}},
		{name: "unknown backend", cfg: Config{Backend: "postgres", MaxSearchResults: 100}, wantErr: true},
		{name: "zero results", cfg: Config{Backend: "kv"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
