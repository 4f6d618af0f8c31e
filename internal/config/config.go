// Package config loads and validates the propd node configuration.
package config

// Config represents the complete propd configuration.
type Config struct {
	// Server section
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// Database section
	Database DatabaseConfig `toml:"database" mapstructure:"database"`

	// Journal section
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`

	// Genesis section
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`

	configPath string
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	// BindAddr is the address to bind to; empty means all interfaces.
	BindAddr string `toml:"bind_addr" mapstructure:"bind_addr"`

	// Port is the HTTP listen port serving JSON-RPC and WebSocket.
	Port int `toml:"port" mapstructure:"port"`
}

// DatabaseConfig selects and tunes the ledger's storage backend.
type DatabaseConfig struct {
	// Backend is "pebble" for durable storage or "memory" for an
	// ephemeral standalone node.
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path is the on-disk database directory for the pebble backend.
	Path string `toml:"path" mapstructure:"path"`

	// CacheSize is the number of owner records kept in the read cache.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
}

// JournalConfig controls the SQLite event journal.
type JournalConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite file; ":memory:" keeps the journal ephemeral.
	Path string `toml:"path" mapstructure:"path"`
}

// GenesisConfig seeds the payment gateway at boot.
type GenesisConfig struct {
	Allocations []Allocation `toml:"allocations" mapstructure:"allocations"`
}

// Allocation credits one account with an initial balance.
type Allocation struct {
	Account string `toml:"account" mapstructure:"account"`
	Balance uint64 `toml:"balance" mapstructure:"balance"`
}

// ConfigPath returns the path of the file the config was loaded from, or
// empty when only defaults and environment were used.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// Backends supported by the database section.
const (
	BackendPebble = "pebble"
	BackendMemory = "memory"
)
