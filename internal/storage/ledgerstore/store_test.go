package ledgerstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/storage/database"
)

func testID(payload string) asset.Identifier {
	return asset.Sha512HalfHasher{}.Hash([]byte(payload))
}

func TestStoreRecordRoundTrip(t *testing.T) {
	db := database.NewMemoryDB()
	store, err := Open(db, 16)
	require.NoError(t, err)

	id := testID("villa")
	rec, err := store.Get(id, "alice")
	require.NoError(t, err)
	require.Nil(t, rec, "unknown pair must read as absent")

	want := asset.OwnerRecord{Shares: 100, Offers: 5, Price: 20}
	require.NoError(t, store.Set(id, "alice", want))

	rec, err = store.Get(id, "alice")
	require.NoError(t, err)
	require.Equal(t, want, *rec)
}

func TestStoreSurvivesReopen(t *testing.T) {
	db := database.NewMemoryDB()
	store, err := Open(db, 16)
	require.NoError(t, err)

	id := testID("villa")
	require.NoError(t, store.Set(id, "alice", asset.OwnerRecord{Shares: 70, Offers: 1, Price: 3}))
	require.NoError(t, store.MainOwners().Set(id, "alice"))

	// A fresh store over the same database sees the persisted state, so
	// nothing was serving from cache alone.
	reopened, err := Open(db, 16)
	require.NoError(t, err)

	rec, err := reopened.Get(id, "alice")
	require.NoError(t, err)
	require.Equal(t, asset.OwnerRecord{Shares: 70, Offers: 1, Price: 3}, *rec)

	owner, ok, err := reopened.MainOwners().Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, asset.Account("alice"), owner)
}

func TestStoreMainOwnerAbsent(t *testing.T) {
	db := database.NewMemoryDB()
	store, err := Open(db, 16)
	require.NoError(t, err)

	_, ok, err := store.MainOwners().Get(testID("nothing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreKeysDoNotCollide(t *testing.T) {
	db := database.NewMemoryDB()
	store, err := Open(db, 16)
	require.NoError(t, err)

	idA, idB := testID("a"), testID("b")
	require.NoError(t, store.Set(idA, "alice", asset.OwnerRecord{Shares: 1}))
	require.NoError(t, store.Set(idB, "alice", asset.OwnerRecord{Shares: 2}))
	require.NoError(t, store.Set(idA, "alicia", asset.OwnerRecord{Shares: 3}))

	rec, err := store.Get(idA, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1), rec.Shares)
	rec, err = store.Get(idB, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(2), rec.Shares)
	rec, err = store.Get(idA, "alicia")
	require.NoError(t, err)
	require.Equal(t, uint64(3), rec.Shares)
}

func TestStoreWorksAsEngineBackend(t *testing.T) {
	db := database.NewMemoryDB()
	store, err := Open(db, 16)
	require.NoError(t, err)

	engine := asset.NewEngine(store, store.MainOwners(), asset.EngineConfig{})
	res := engine.Apply(&asset.CreateAsset{Caller: "alice", Payload: []byte("villa"), SharePrice: 10})
	require.Equal(t, asset.Success, res.Result)

	id := engine.DeriveIdentifier([]byte("villa"))
	rec, err := store.Get(id, "alice")
	require.NoError(t, err)
	require.Equal(t, asset.OwnerRecord{Shares: 100, Offers: 0, Price: 10}, *rec)
}

func TestRecordCodecRoundTrip(t *testing.T) {
	want := asset.OwnerRecord{Shares: 48, Offers: 3, Price: 20}
	raw, err := encodeRecord(want)
	require.NoError(t, err)

	got, err := decodeRecord(raw)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
