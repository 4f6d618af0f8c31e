package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 6806, cfg.Server.Port)
	assert.Equal(t, BackendPebble, cfg.Database.Backend)
	assert.Equal(t, "data/ledger", cfg.Database.Path)
	assert.Equal(t, 4096, cfg.Database.CacheSize)
	assert.True(t, cfg.Journal.Enabled)
	assert.Empty(t, cfg.Genesis.Allocations)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "propd.toml")
	content := `
[server]
port = 9100

[database]
backend = "memory"
cache_size = 64

[journal]
enabled = false

[[genesis.allocations]]
account = "alice"
balance = 1000

[[genesis.allocations]]
account = "bob"
balance = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, 64, cfg.Database.CacheSize)
	assert.False(t, cfg.Journal.Enabled)
	require.Len(t, cfg.Genesis.Allocations, 2)
	assert.Equal(t, "alice", cfg.Genesis.Allocations[0].Account)
	assert.Equal(t, uint64(1000), cfg.Genesis.Allocations[0].Balance)
	assert.Equal(t, path, cfg.ConfigPath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PROPD_SERVER_PORT", "7000")
	t.Setenv("PROPD_DATABASE_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Database.Backend)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.Database.Backend = "leveldb"
		assert.Error(t, cfg.Validate())
	})

	t.Run("pebble without path", func(t *testing.T) {
		cfg := base()
		cfg.Database.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non positive cache", func(t *testing.T) {
		cfg := base()
		cfg.Database.CacheSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("journal needs path", func(t *testing.T) {
		cfg := base()
		cfg.Journal.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate allocation", func(t *testing.T) {
		cfg := base()
		cfg.Genesis.Allocations = []Allocation{
			{Account: "alice", Balance: 10},
			{Account: "alice", Balance: 20},
		}
		assert.Error(t, cfg.Validate())
	})
}
