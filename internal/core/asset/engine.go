package asset

import (
	"sync"

	"github.com/propasset/propd/internal/core/balances"
	"github.com/propasset/propd/internal/core/events"
)

// OpType identifies a ledger operation kind.
type OpType string

const (
	TypeCreateAsset    OpType = "CreateAsset"
	TypeOfferShares    OpType = "OfferShares"
	TypeTransferShares OpType = "TransferShares"
	TypeBuyShares      OpType = "BuyShares"
	TypeClaimOwnership OpType = "ClaimOwnership"
)

// Operation is a single state transition request against the ledger. The
// caller account inside each operation is already authenticated by the
// dispatching layer.
type Operation interface {
	OpType() OpType

	// Apply runs the operation against the staged state in ctx. It must
	// evaluate every precondition before performing any write; writes go
	// to the staged views and reach the ledger only when the engine
	// commits a Success result.
	Apply(ctx *ApplyContext) Result
}

// ApplyContext carries the staged state one operation reads and writes,
// plus the collaborators it may call out to.
type ApplyContext struct {
	// Records is the staged owner-record view.
	Records RecordStore

	// Owners is the staged main-owner view.
	Owners MainOwnerStore

	// Gateway settles payments for BuyShares.
	Gateway balances.Gateway

	// Hasher derives identifiers for CreateAsset.
	Hasher Hasher

	events []events.Event
	err    error
}

// emit queues a notification for publication after commit.
func (ctx *ApplyContext) emit(ev events.Event) {
	ctx.events = append(ctx.events, ev)
}

// fault records a collaborator error and maps it to an Internal result.
func (ctx *ApplyContext) fault(err error) Result {
	ctx.err = err
	return Internal
}

// EngineConfig wires the engine's collaborators.
type EngineConfig struct {
	// Hasher derives asset identifiers. Defaults to Sha512HalfHasher.
	Hasher Hasher

	// Gateway settles share purchases. Required for BuyShares.
	Gateway balances.Gateway

	// Sink receives notifications of committed operations. Defaults to a
	// sink that discards them.
	Sink events.Sink
}

// Engine applies ledger operations strictly one at a time. It is the sole
// writer of the record store and the main-owner index; its mutex imposes
// the total order the state machine assumes.
type Engine struct {
	mu      sync.Mutex
	records RecordStore
	owners  MainOwnerStore
	hasher  Hasher
	gateway balances.Gateway
	sink    events.Sink
}

// NewEngine creates an engine over the given stores.
func NewEngine(records RecordStore, owners MainOwnerStore, cfg EngineConfig) *Engine {
	if cfg.Hasher == nil {
		cfg.Hasher = Sha512HalfHasher{}
	}
	if cfg.Sink == nil {
		cfg.Sink = events.Nop{}
	}
	return &Engine{
		records: records,
		owners:  owners,
		hasher:  cfg.Hasher,
		gateway: cfg.Gateway,
		sink:    cfg.Sink,
	}
}

// Apply validates and applies one operation. Either every store write and
// the payment settle together with the emitted notifications, or nothing
// does and the rejection code reports why.
func (e *Engine) Apply(op Operation) ApplyResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	recs := newStagedRecords(e.records)
	owners := newStagedOwners(e.owners)
	ctx := &ApplyContext{
		Records: recs,
		Owners:  owners,
		Gateway: e.gateway,
		Hasher:  e.hasher,
	}

	result := op.Apply(ctx)
	if !result.IsSuccess() {
		return ApplyResult{Result: result, Err: ctx.err, Message: result.Message()}
	}

	if err := recs.commit(); err != nil {
		return ApplyResult{Result: Internal, Err: err, Message: Internal.Message()}
	}
	if err := owners.commit(); err != nil {
		return ApplyResult{Result: Internal, Err: err, Message: Internal.Message()}
	}

	for _, ev := range ctx.events {
		e.sink.Publish(ev)
	}
	return ApplyResult{
		Result:  Success,
		Applied: true,
		Events:  ctx.events,
		Message: Success.Message(),
	}
}

// DeriveIdentifier returns the identifier the engine's hasher assigns to a
// payload.
func (e *Engine) DeriveIdentifier(payload []byte) Identifier {
	return e.hasher.Hash(payload)
}

// Record reads one owner record; nil means the account never interacted
// with the asset.
func (e *Engine) Record(id Identifier, owner Account) (*OwnerRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.records.Get(id, owner)
}

// MainOwner reads the asset's current main owner; ok is false when the
// asset does not exist.
func (e *Engine) MainOwner(id Identifier) (Account, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owners.Get(id)
}
