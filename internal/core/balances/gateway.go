// Package balances supplies the payment gateway the ledger settles share
// purchases through.
package balances

import "errors"

var (
	// ErrInsufficientFunds is returned when the paying account cannot
	// cover the requested amount.
	ErrInsufficientFunds = errors.New("balances: insufficient funds")

	// ErrBalanceOverflow is returned when a credit would overflow the
	// recipient's balance.
	ErrBalanceOverflow = errors.New("balances: balance overflow")
)

// Gateway queries spendable balances and settles payments between
// accounts. Transfer must be atomic: on error both balances are left
// unchanged.
type Gateway interface {
	FreeBalance(account string) (uint64, error)
	Transfer(from, to string, amount uint64) error
}
