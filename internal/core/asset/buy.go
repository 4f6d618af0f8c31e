package asset

import "github.com/propasset/propd/internal/core/events"

// BuyShares purchases offered shares from the asset's main owner, settling
// AmountSent from the caller's balance through the payment gateway. The
// full amount sent moves to the seller, including any overpayment beyond
// the computed price.
type BuyShares struct {
	Caller      Account
	ID          Identifier
	SharesToBuy uint64
	AmountSent  uint64
	Seller      Account
}

func (op *BuyShares) OpType() OpType { return TypeBuyShares }

func (op *BuyShares) Apply(ctx *ApplyContext) Result {
	if op.Caller == op.Seller {
		return IncorrectSeller
	}
	owner, ok, err := ctx.Owners.Get(op.ID)
	if err != nil {
		return ctx.fault(err)
	}
	if !ok || owner != op.Seller {
		return IncorrectSeller
	}

	seller, err := ctx.Records.Get(op.ID, op.Seller)
	if err != nil {
		return ctx.fault(err)
	}
	if seller == nil {
		return InvalidAccount
	}
	if op.SharesToBuy > seller.Shares {
		return IncorrectAmount
	}

	price := satMul(seller.Price, op.SharesToBuy)
	if op.AmountSent < price {
		return IncorrectAmount
	}
	if op.SharesToBuy > seller.Offers {
		return IncorrectSharesSelection
	}

	buyerShares := op.SharesToBuy
	buyer, err := ctx.Records.Get(op.ID, op.Caller)
	if err != nil {
		return ctx.fault(err)
	}
	if buyer == nil {
		buyer = &OwnerRecord{}
	} else {
		buyerShares = satAdd(buyer.Shares, op.SharesToBuy)
	}
	buyer.Shares = buyerShares

	balance, err := ctx.Gateway.FreeBalance(string(op.Caller))
	if err != nil {
		return ctx.fault(err)
	}
	if balance < op.AmountSent {
		return InsufficientBalance
	}

	// Last check passed; the payment is the external commit point. A
	// gateway failure aborts with the staged bookkeeping still unflushed.
	if err := ctx.Gateway.Transfer(string(op.Caller), string(op.Seller), op.AmountSent); err != nil {
		return ctx.fault(err)
	}

	seller.Shares = satSub(seller.Shares, op.SharesToBuy)
	seller.Offers = satSub(seller.Offers, op.SharesToBuy)
	if err := ctx.Records.Set(op.ID, op.Seller, *seller); err != nil {
		return ctx.fault(err)
	}
	if err := ctx.Records.Set(op.ID, op.Caller, *buyer); err != nil {
		return ctx.fault(err)
	}

	ctx.emit(events.SharesTransferred{
		ID:     op.ID.String(),
		From:   string(op.Seller),
		To:     string(op.Caller),
		Shares: op.SharesToBuy,
	})
	return Success
}
