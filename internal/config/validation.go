package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Database.Backend {
	case BackendPebble:
		if c.Database.Path == "" {
			return errors.New("database.path required for pebble backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown database.backend %q", c.Database.Backend)
	}

	if c.Database.CacheSize <= 0 {
		return fmt.Errorf("database.cache_size must be positive, got %d", c.Database.CacheSize)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path required when journal is enabled")
	}

	seen := make(map[string]struct{}, len(c.Genesis.Allocations))
	for _, alloc := range c.Genesis.Allocations {
		if alloc.Account == "" {
			return errors.New("genesis allocation with empty account")
		}
		if _, dup := seen[alloc.Account]; dup {
			return fmt.Errorf("duplicate genesis allocation for %s", alloc.Account)
		}
		seen[alloc.Account] = struct{}{}
	}

	return nil
}
