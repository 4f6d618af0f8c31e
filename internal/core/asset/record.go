package asset

// OwnerRecord tracks one account's stake in one asset. A record exists for
// every (asset, account) pair that ever held or offered shares; absence of
// a record means the account never interacted with the asset and is
// distinct from a record whose Shares is zero.
type OwnerRecord struct {
	// Shares is this account's fraction of the asset, in [0, TotalSupply].
	Shares uint64

	// Offers is the portion of Shares currently advertised for sale.
	Offers uint64

	// Price is the per-share price Offers are sold at.
	Price uint64
}

// Share and offer bookkeeping clamps at the bounds instead of wrapping, so
// arithmetic faults can never corrupt the ledger.

func satAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}

func satSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func satMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if p := a * b; p/a == b {
		return p
	}
	return ^uint64(0)
}
