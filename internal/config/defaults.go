package config

import "github.com/spf13/viper"

// setDefaults registers the default value for every configuration key so
// viper can unmarshal a complete Config even without a file.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.bind_addr", "")
	v.SetDefault("server.port", 6806)

	// Database defaults
	v.SetDefault("database.backend", BackendPebble)
	v.SetDefault("database.path", "data/ledger")
	v.SetDefault("database.cache_size", 4096)

	// Journal defaults
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "data/journal.db")

	// Genesis defaults: no allocations
	v.SetDefault("genesis.allocations", []Allocation{})
}
