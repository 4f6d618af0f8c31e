package balances

import "sync"

// Book is an in-process Gateway keeping balances in memory. Genesis
// allocations seed it at boot; accounts it has never seen have a zero
// spendable balance.
type Book struct {
	mu       sync.Mutex
	balances map[string]uint64
}

// NewBook creates an empty balance book.
func NewBook() *Book {
	return &Book{balances: make(map[string]uint64)}
}

// Deposit credits amount to the account, clamping at the maximum balance.
func (b *Book) Deposit(account string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.balances[account]
	if next := cur + amount; next >= cur {
		b.balances[account] = next
	} else {
		b.balances[account] = ^uint64(0)
	}
}

// FreeBalance returns the account's spendable balance.
func (b *Book) FreeBalance(account string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account], nil
}

// Transfer moves amount from one account to the other. It fails without
// touching either balance when the sender cannot cover the amount or the
// recipient's balance would overflow.
func (b *Book) Transfer(from, to string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.balances[from]
	if src < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	dst := b.balances[to]
	if dst+amount < dst {
		return ErrBalanceOverflow
	}

	b.balances[from] = src - amount
	b.balances[to] = dst + amount
	return nil
}
