package asset

import "github.com/propasset/propd/internal/core/events"

// TransferShares moves shares from the caller to a recipient with no
// payment attached. The recipient's record is created on first contact.
type TransferShares struct {
	Caller    Account
	ID        Identifier
	Amount    uint64
	Recipient Account
}

func (op *TransferShares) OpType() OpType { return TypeTransferShares }

func (op *TransferShares) Apply(ctx *ApplyContext) Result {
	sender, err := ctx.Records.Get(op.ID, op.Caller)
	if err != nil {
		return ctx.fault(err)
	}
	if sender == nil {
		return InvalidAccount
	}
	if op.Amount > sender.Shares {
		return IncorrectSharesSelection
	}

	recipient, err := ctx.Records.Get(op.ID, op.Recipient)
	if err != nil {
		return ctx.fault(err)
	}
	if recipient == nil {
		created := OwnerRecord{Shares: op.Amount, Offers: 0, Price: 0}
		if err := ctx.Records.Set(op.ID, op.Recipient, created); err != nil {
			return ctx.fault(err)
		}
	} else {
		recipient.Shares = satAdd(recipient.Shares, op.Amount)
		if err := ctx.Records.Set(op.ID, op.Recipient, *recipient); err != nil {
			return ctx.fault(err)
		}
	}

	// The sender's standing offer is deliberately left as-is, even when it
	// now exceeds the remaining shares; BuyShares caps a purchase at both
	// the offers and the shares actually held.
	sender.Shares = satSub(sender.Shares, op.Amount)
	if err := ctx.Records.Set(op.ID, op.Caller, *sender); err != nil {
		return ctx.fault(err)
	}

	ctx.emit(events.SharesTransferred{
		ID:     op.ID.String(),
		From:   string(op.Caller),
		To:     string(op.Recipient),
		Shares: op.Amount,
	})
	return Success
}
