package balances

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBookDepositAndBalance(t *testing.T) {
	book := NewBook()

	bal, err := book.FreeBalance("alice")
	require.NoError(t, err)
	require.Zero(t, bal)

	book.Deposit("alice", 100)
	bal, err = book.FreeBalance("alice")
	require.NoError(t, err)
	require.Equal(t, uint64(100), bal)

	book.Deposit("alice", math.MaxUint64)
	bal, err = book.FreeBalance("alice")
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), bal, "deposit must clamp instead of wrapping")
}

func TestBookTransfer(t *testing.T) {
	book := NewBook()
	book.Deposit("alice", 100)

	require.NoError(t, book.Transfer("alice", "bob", 40))

	aliceBal, _ := book.FreeBalance("alice")
	bobBal, _ := book.FreeBalance("bob")
	require.Equal(t, uint64(60), aliceBal)
	require.Equal(t, uint64(40), bobBal)
}

func TestBookTransferInsufficientFunds(t *testing.T) {
	book := NewBook()
	book.Deposit("alice", 10)

	err := book.Transfer("alice", "bob", 11)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Neither side changed.
	aliceBal, _ := book.FreeBalance("alice")
	bobBal, _ := book.FreeBalance("bob")
	require.Equal(t, uint64(10), aliceBal)
	require.Zero(t, bobBal)
}

func TestBookTransferOverflow(t *testing.T) {
	book := NewBook()
	book.Deposit("alice", 10)
	book.Deposit("bob", math.MaxUint64)

	err := book.Transfer("alice", "bob", 1)
	require.ErrorIs(t, err, ErrBalanceOverflow)

	aliceBal, _ := book.FreeBalance("alice")
	require.Equal(t, uint64(10), aliceBal)
}

func TestBookSelfTransfer(t *testing.T) {
	book := NewBook()
	book.Deposit("alice", 10)

	require.NoError(t, book.Transfer("alice", "alice", 5))
	bal, _ := book.FreeBalance("alice")
	require.Equal(t, uint64(10), bal)
}
