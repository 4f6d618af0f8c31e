package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propasset/propd/internal/core/asset"
)

// RequireSuccess asserts that an operation was applied.
func RequireSuccess(t *testing.T, res asset.ApplyResult) {
	t.Helper()
	require.Equal(t, asset.Success, res.Result,
		"expected Success, got %s: %s", res.Result, res.Message)
	require.True(t, res.Applied)
}

// RequireResult asserts that an operation failed with the given result and
// left no state change behind.
func RequireResult(t *testing.T, expected asset.Result, res asset.ApplyResult) {
	t.Helper()
	require.Equal(t, expected, res.Result,
		"expected %s, got %s: %s", expected, res.Result, res.Message)
	require.False(t, res.Applied)
}

// RequireRecord asserts the full contents of an owner record.
func RequireRecord(t *testing.T, env *Env, id asset.Identifier, owner string, shares, offers, price uint64) {
	t.Helper()
	rec := env.Record(id, owner)
	require.NotNil(t, rec, "no record for %s", owner)
	require.Equal(t, shares, rec.Shares, "%s shares", owner)
	require.Equal(t, offers, rec.Offers, "%s offers", owner)
	require.Equal(t, price, rec.Price, "%s price", owner)
}

// RequireNoRecord asserts that an account holds no record for the asset.
func RequireNoRecord(t *testing.T, env *Env, id asset.Identifier, owner string) {
	t.Helper()
	require.Nil(t, env.Record(id, owner), "unexpected record for %s", owner)
}

// RequireMainOwner asserts the asset's main owner.
func RequireMainOwner(t *testing.T, env *Env, id asset.Identifier, owner string) {
	t.Helper()
	actual, ok := env.MainOwner(id)
	require.True(t, ok, "asset has no main owner")
	require.Equal(t, asset.Account(owner), actual)
}

// RequireBalance asserts an account's free balance.
func RequireBalance(t *testing.T, env *Env, account string, expected uint64) {
	t.Helper()
	require.Equal(t, expected, env.Balance(account),
		"balance mismatch for %s", account)
}

// RequireSupply asserts that the asset's shares across the given accounts
// sum to the full supply.
func RequireSupply(t *testing.T, env *Env, id asset.Identifier, accounts ...string) {
	t.Helper()
	var total uint64
	for _, acct := range accounts {
		if rec := env.Record(id, acct); rec != nil {
			total += rec.Shares
		}
	}
	require.Equal(t, uint64(asset.TotalSupply), total, "share supply not conserved")
}
