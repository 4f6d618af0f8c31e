// Package ledgerstore persists owner records and the main-owner index in a
// key-value database, giving the ledger engine durable stores with the
// same semantics as the in-memory ones.
package ledgerstore

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/storage/database"
)

const (
	recordPrefix    = 'r'
	mainOwnerPrefix = 'm'

	// DefaultCacheSize is the record cache size used when none is
	// configured.
	DefaultCacheSize = 4096
)

// Store implements asset.RecordStore and exposes a MainOwnerStore view
// over the same database. Recently read records are kept in an LRU cache.
type Store struct {
	db    database.DB
	cache *lru.Cache[string, asset.OwnerRecord]
}

// Open creates a store over db with a record cache of cacheSize entries.
func Open(db database.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, asset.OwnerRecord](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}
	return &Store{db: db, cache: cache}, nil
}

func recordKey(id asset.Identifier, owner asset.Account) []byte {
	key := make([]byte, 0, 1+len(id)+len(owner))
	key = append(key, recordPrefix)
	key = append(key, id[:]...)
	key = append(key, owner...)
	return key
}

func mainOwnerKey(id asset.Identifier) []byte {
	key := make([]byte, 0, 1+len(id))
	key = append(key, mainOwnerPrefix)
	key = append(key, id[:]...)
	return key
}

// Get implements asset.RecordStore.
func (s *Store) Get(id asset.Identifier, owner asset.Account) (*asset.OwnerRecord, error) {
	key := recordKey(id, owner)
	if rec, ok := s.cache.Get(string(key)); ok {
		return &rec, nil
	}

	raw, err := s.db.Read(context.Background(), key)
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read owner record: %w", err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	s.cache.Add(string(key), rec)
	return &rec, nil
}

// Set implements asset.RecordStore.
func (s *Store) Set(id asset.Identifier, owner asset.Account, rec asset.OwnerRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	key := recordKey(id, owner)
	if err := s.db.Write(context.Background(), key, raw); err != nil {
		return fmt.Errorf("write owner record: %w", err)
	}
	s.cache.Add(string(key), rec)
	return nil
}

// MainOwners returns the MainOwnerStore view over the same database.
func (s *Store) MainOwners() asset.MainOwnerStore {
	return mainOwnerView{s: s}
}

type mainOwnerView struct {
	s *Store
}

func (v mainOwnerView) Get(id asset.Identifier) (asset.Account, bool, error) {
	raw, err := v.s.db.Read(context.Background(), mainOwnerKey(id))
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read main owner: %w", err)
	}
	return asset.Account(raw), true, nil
}

func (v mainOwnerView) Set(id asset.Identifier, owner asset.Account) error {
	if err := v.s.db.Write(context.Background(), mainOwnerKey(id), []byte(owner)); err != nil {
		return fmt.Errorf("write main owner: %w", err)
	}
	return nil
}
