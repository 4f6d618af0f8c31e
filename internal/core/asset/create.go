package asset

import "github.com/propasset/propd/internal/core/events"

// CreateAsset creates a new proportional asset from a descriptive payload,
// allocating the full supply to the caller and making it the main owner.
type CreateAsset struct {
	Caller     Account
	Payload    []byte
	SharePrice uint64
}

func (op *CreateAsset) OpType() OpType { return TypeCreateAsset }

func (op *CreateAsset) Apply(ctx *ApplyContext) Result {
	id := ctx.Hasher.Hash(op.Payload)

	// The duplicate check is scoped to (id, caller): a different account
	// may derive the same identifier and become main owner of its own
	// view of it.
	rec, err := ctx.Records.Get(id, op.Caller)
	if err != nil {
		return ctx.fault(err)
	}
	if rec != nil {
		return AssetAlreadyExists
	}

	created := OwnerRecord{Shares: TotalSupply, Offers: 0, Price: op.SharePrice}
	if err := ctx.Records.Set(id, op.Caller, created); err != nil {
		return ctx.fault(err)
	}
	if err := ctx.Owners.Set(id, op.Caller); err != nil {
		return ctx.fault(err)
	}

	ctx.emit(events.AssetInitialized{ID: id.String(), Owner: string(op.Caller)})
	return Success
}
