package asset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLedgerAbsenceIsDistinctFromZeroShares(t *testing.T) {
	ledger := NewLedger()
	id := Sha512HalfHasher{}.Hash([]byte("warehouse"))

	rec, err := ledger.Get(id, "alice")
	require.NoError(t, err)
	require.Nil(t, rec, "untouched pair must read as absent")

	require.NoError(t, ledger.Set(id, "alice", OwnerRecord{Shares: 0, Offers: 0, Price: 3}))
	rec, err = ledger.Get(id, "alice")
	require.NoError(t, err)
	require.NotNil(t, rec, "a record with zero shares still exists")
	require.Equal(t, OwnerRecord{Shares: 0, Offers: 0, Price: 3}, *rec)
}

func TestLedgerRecordsAreIsolatedPerPair(t *testing.T) {
	ledger := NewLedger()
	idA := Sha512HalfHasher{}.Hash([]byte("a"))
	idB := Sha512HalfHasher{}.Hash([]byte("b"))

	require.NoError(t, ledger.Set(idA, "alice", OwnerRecord{Shares: 100}))

	rec, err := ledger.Get(idB, "alice")
	require.NoError(t, err)
	require.Nil(t, rec)

	rec, err = ledger.Get(idA, "bob")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestLedgerGetReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	id := Sha512HalfHasher{}.Hash([]byte("c"))
	require.NoError(t, ledger.Set(id, "alice", OwnerRecord{Shares: 100}))

	rec, err := ledger.Get(id, "alice")
	require.NoError(t, err)
	rec.Shares = 1

	again, err := ledger.Get(id, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(100), again.Shares, "mutating a read must not touch the store")
}

func TestLedgerMainOwner(t *testing.T) {
	ledger := NewLedger()
	owners := ledger.MainOwners()
	id := Sha512HalfHasher{}.Hash([]byte("d"))

	_, ok, err := owners.Get(id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, owners.Set(id, "alice"))
	owner, ok, err := owners.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Account("alice"), owner)

	require.NoError(t, owners.Set(id, "bob"))
	owner, _, _ = owners.Get(id)
	require.Equal(t, Account("bob"), owner)
}
