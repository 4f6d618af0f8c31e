package asset

import (
	"github.com/propasset/propd/internal/core/events"
)

// Result identifies the outcome of applying an operation. Every failure is
// detected before any store write reaches the ledger, so a non-success
// Result always means the stores are untouched.
type Result int

const (
	// Success means the operation was applied in full.
	Success Result = iota

	// AssetDoesNotExist means the asset has no main owner set.
	AssetDoesNotExist

	// AssetAlreadyExists means the caller already created this asset.
	AssetAlreadyExists

	// InvalidOffers means more shares were offered than the caller holds.
	InvalidOffers

	// IncorrectAmount means the payment does not cover the price, or the
	// seller does not hold the requested shares.
	IncorrectAmount

	// ConversionError means a currency amount could not be converted.
	ConversionError

	// IncorrectSharesSelection means the requested shares exceed what the
	// holder has available.
	IncorrectSharesSelection

	// IncorrectSeller means the seller is the caller itself, or is not the
	// asset's main owner.
	IncorrectSeller

	// NotMainOwner means the caller is not the asset's main owner.
	NotMainOwner

	// AlreadyMainOwner means the caller is the asset's main owner already.
	AlreadyMainOwner

	// NotEnoughShares means the caller does not hold a strict majority.
	NotEnoughShares

	// InvalidAccount means no owner record exists for the account.
	InvalidAccount

	// InsufficientBalance means the caller cannot cover the amount sent.
	InsufficientBalance

	// Internal means a store or payment collaborator failed; the error is
	// carried alongside the result.
	Internal
)

var resultNames = map[Result]string{
	Success:                  "Success",
	AssetDoesNotExist:        "AssetDoesNotExist",
	AssetAlreadyExists:       "AssetAlreadyExists",
	InvalidOffers:            "InvalidOffers",
	IncorrectAmount:          "IncorrectAmount",
	ConversionError:          "ConversionError",
	IncorrectSharesSelection: "IncorrectSharesSelection",
	IncorrectSeller:          "IncorrectSeller",
	NotMainOwner:             "NotMainOwner",
	AlreadyMainOwner:         "AlreadyMainOwner",
	NotEnoughShares:          "NotEnoughShares",
	InvalidAccount:           "InvalidAccount",
	InsufficientBalance:      "InsufficientBalance",
	Internal:                 "Internal",
}

var resultMessages = map[Result]string{
	Success:                  "operation applied",
	AssetDoesNotExist:        "the asset does not exist",
	AssetAlreadyExists:       "the asset already exists",
	InvalidOffers:            "the offered shares exceed the shares held",
	IncorrectAmount:          "the amount sent is incorrect",
	ConversionError:          "cannot convert currency amount",
	IncorrectSharesSelection: "the requested shares are incorrect",
	IncorrectSeller:          "the selected seller is incorrect",
	NotMainOwner:             "the account is not the main owner of the asset",
	AlreadyMainOwner:         "the account is already the main owner of the asset",
	NotEnoughShares:          "the shares held are not enough",
	InvalidAccount:           "the account has no record for the asset",
	InsufficientBalance:      "the balance is not enough",
	Internal:                 "internal failure",
}

// String returns the canonical code name, e.g. "AssetAlreadyExists".
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Message returns a human-readable description of the result.
func (r Result) Message() string {
	if msg, ok := resultMessages[r]; ok {
		return msg
	}
	return "unknown result"
}

// IsSuccess reports whether the operation was applied.
func (r Result) IsSuccess() bool {
	return r == Success
}

// ApplyResult is what the engine returns for one operation.
type ApplyResult struct {
	// Result is the outcome code.
	Result Result

	// Applied reports whether the ledger was mutated.
	Applied bool

	// Events lists the notifications published for an applied operation,
	// in emission order.
	Events []events.Event

	// Err carries the underlying fault for Internal results.
	Err error

	// Message is a human-readable description of the result.
	Message string
}
