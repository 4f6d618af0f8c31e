package asset

import "github.com/propasset/propd/internal/core/events"

// ClaimOwnership reassigns main-owner status to a caller holding strictly
// more than half of the asset's shares. The main-owner pointer is a
// point-in-time claim: it only moves when someone claims it, not when
// holdings change.
type ClaimOwnership struct {
	Caller Account
	ID     Identifier
}

func (op *ClaimOwnership) OpType() OpType { return TypeClaimOwnership }

func (op *ClaimOwnership) Apply(ctx *ApplyContext) Result {
	owner, ok, err := ctx.Owners.Get(op.ID)
	if err != nil {
		return ctx.fault(err)
	}
	if !ok {
		return AssetDoesNotExist
	}
	if owner == op.Caller {
		return AlreadyMainOwner
	}

	rec, err := ctx.Records.Get(op.ID, op.Caller)
	if err != nil {
		return ctx.fault(err)
	}
	if rec == nil || rec.Shares <= TotalSupply/2 {
		return NotEnoughShares
	}

	if err := ctx.Owners.Set(op.ID, op.Caller); err != nil {
		return ctx.fault(err)
	}

	ctx.emit(events.MainOwnerSet{Owner: string(op.Caller), ID: op.ID.String()})
	return Success
}
