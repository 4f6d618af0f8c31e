// Package testing provides a ledger environment for end to end tests.
// It wires an in-memory ledger, a balance book and an event capture sink
// behind a compact helper API so scenario tests read like transcripts.
package testing

import (
	"testing"

	"github.com/propasset/propd/internal/core/asset"
	"github.com/propasset/propd/internal/core/balances"
	"github.com/propasset/propd/internal/core/events"
)

// Env manages a test ledger environment.
type Env struct {
	t      *testing.T
	Engine *asset.Engine
	Ledger *asset.Ledger
	Book   *balances.Book
	Sink   *CaptureSink
}

// CaptureSink records every published event for later inspection.
type CaptureSink struct {
	Events []events.Event
}

func (s *CaptureSink) Publish(ev events.Event) {
	s.Events = append(s.Events, ev)
}

// Reset discards captured events.
func (s *CaptureSink) Reset() {
	s.Events = nil
}

// NewEnv creates a fresh environment with an empty ledger and book.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	ledger := asset.NewLedger()
	book := balances.NewBook()
	sink := &CaptureSink{}
	engine := asset.NewEngine(ledger.Records(), ledger.MainOwners(), asset.EngineConfig{
		Gateway: book,
		Sink:    sink,
	})

	return &Env{
		t:      t,
		Engine: engine,
		Ledger: ledger,
		Book:   book,
		Sink:   sink,
	}
}

// Fund credits an account on the balance book.
func (e *Env) Fund(account string, amount uint64) {
	e.t.Helper()
	e.Book.Deposit(account, amount)
}

// Create submits a create operation and returns the derived identifier
// together with the outcome.
func (e *Env) Create(caller string, payload string, price uint64) (asset.Identifier, asset.ApplyResult) {
	e.t.Helper()
	id := e.Engine.DeriveIdentifier([]byte(payload))
	res := e.Engine.Apply(&asset.CreateAsset{
		Caller:     asset.Account(caller),
		Payload:    []byte(payload),
		SharePrice: price,
	})
	return id, res
}

// Offer submits an offer operation.
func (e *Env) Offer(caller string, id asset.Identifier, shares, price uint64) asset.ApplyResult {
	e.t.Helper()
	return e.Engine.Apply(&asset.OfferShares{
		Caller:        asset.Account(caller),
		ID:            id,
		SharesToOffer: shares,
		SharePrice:    price,
	})
}

// Transfer submits a free transfer operation.
func (e *Env) Transfer(from, to string, id asset.Identifier, shares uint64) asset.ApplyResult {
	e.t.Helper()
	return e.Engine.Apply(&asset.TransferShares{
		Caller:    asset.Account(from),
		Recipient: asset.Account(to),
		ID:        id,
		Amount:    shares,
	})
}

// Buy submits a buy operation paying amount for shares.
func (e *Env) Buy(buyer, seller string, id asset.Identifier, shares, amount uint64) asset.ApplyResult {
	e.t.Helper()
	return e.Engine.Apply(&asset.BuyShares{
		Caller:      asset.Account(buyer),
		Seller:      asset.Account(seller),
		ID:          id,
		SharesToBuy: shares,
		AmountSent:  amount,
	})
}

// Claim submits a main ownership claim.
func (e *Env) Claim(caller string, id asset.Identifier) asset.ApplyResult {
	e.t.Helper()
	return e.Engine.Apply(&asset.ClaimOwnership{
		Caller: asset.Account(caller),
		ID:     id,
	})
}

// Record fetches an owner record, failing the test on storage errors.
func (e *Env) Record(id asset.Identifier, owner string) *asset.OwnerRecord {
	e.t.Helper()
	rec, err := e.Engine.Record(id, asset.Account(owner))
	if err != nil {
		e.t.Fatalf("reading record for %s: %v", owner, err)
	}
	return rec
}

// MainOwner fetches the main owner, failing the test on storage errors.
func (e *Env) MainOwner(id asset.Identifier) (asset.Account, bool) {
	e.t.Helper()
	owner, ok, err := e.Engine.MainOwner(id)
	if err != nil {
		e.t.Fatalf("reading main owner: %v", err)
	}
	return owner, ok
}

// Balance fetches an account balance, failing the test on errors.
func (e *Env) Balance(account string) uint64 {
	e.t.Helper()
	bal, err := e.Book.FreeBalance(account)
	if err != nil {
		e.t.Fatalf("reading balance for %s: %v", account, err)
	}
	return bal
}
