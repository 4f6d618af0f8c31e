// Package asset implements the proportional-ownership ledger: it tracks
// how a single asset's ownership is fractionally divided among accounts
// out of a fixed total supply of 100 shares, and applies the five
// operations that move those shares around.
package asset

import (
	"encoding/hex"
	"fmt"

	"github.com/propasset/propd/internal/crypto"
)

// TotalSupply is the fixed denominator of every asset: holding all 100
// shares means owning 100% of it.
const TotalSupply uint64 = 100

// Account identifies a participant. Operations receive an already
// authenticated caller; the ledger trusts it without re-verification.
type Account string

// Identifier uniquely identifies an asset. It is derived from the asset's
// descriptive payload and never changes once the asset exists.
type Identifier [32]byte

// String returns the lowercase hex form of the identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// ParseIdentifier decodes the hex form produced by String.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("parse identifier: %w", err)
	}
	if len(raw) != len(id) {
		return id, fmt.Errorf("parse identifier: want %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// Hasher derives asset identifiers from descriptive payloads. It must be a
// deterministic, collision-resistant, pure function of its input.
type Hasher interface {
	Hash(payload []byte) Identifier
}

// Sha512HalfHasher is the default Hasher: the first half of a SHA-512
// digest of the payload.
type Sha512HalfHasher struct{}

func (Sha512HalfHasher) Hash(payload []byte) Identifier {
	return Identifier(crypto.Sha512Half(payload))
}
