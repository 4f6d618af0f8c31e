package asset

import "github.com/propasset/propd/internal/core/events"

// OfferShares advertises part of the caller's stake for sale at a
// per-share price. Only the asset's main owner can publish offers, and an
// offer replaces the previous one rather than adding to it.
type OfferShares struct {
	Caller        Account
	ID            Identifier
	SharesToOffer uint64
	SharePrice    uint64
}

func (op *OfferShares) OpType() OpType { return TypeOfferShares }

func (op *OfferShares) Apply(ctx *ApplyContext) Result {
	owner, ok, err := ctx.Owners.Get(op.ID)
	if err != nil {
		return ctx.fault(err)
	}
	if !ok || owner != op.Caller {
		return NotMainOwner
	}

	rec, err := ctx.Records.Get(op.ID, op.Caller)
	if err != nil {
		return ctx.fault(err)
	}
	if rec == nil {
		return InvalidAccount
	}
	if op.SharesToOffer > rec.Shares {
		return InvalidOffers
	}

	rec.Offers = op.SharesToOffer
	rec.Price = op.SharePrice
	if err := ctx.Records.Set(op.ID, op.Caller, *rec); err != nil {
		return ctx.fault(err)
	}

	ctx.emit(events.SharesOffered{ID: op.ID.String(), Price: op.SharePrice})
	return Success
}
