// Package events defines the notifications the ledger publishes when an
// operation commits, and the sinks that receive them.
package events

// Type identifies the kind of a ledger event.
type Type string

const (
	TypeAssetInitialized  Type = "assetInitialized"
	TypeSharesOffered     Type = "sharesOffered"
	TypeSharesTransferred Type = "sharesTransferred"
	TypeMainOwnerSet      Type = "mainOwnerSet"
)

// Event is a notification of a committed ledger state change. Accounts and
// asset identifiers travel as strings so consumers need no ledger types.
type Event interface {
	EventType() Type
}

// AssetInitialized reports that a new asset was created with its full
// supply allocated to Owner.
type AssetInitialized struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

func (AssetInitialized) EventType() Type { return TypeAssetInitialized }

// SharesOffered reports that the main owner advertised shares for sale at
// the given per-share price.
type SharesOffered struct {
	ID    string `json:"id"`
	Price uint64 `json:"price"`
}

func (SharesOffered) EventType() Type { return TypeSharesOffered }

// SharesTransferred reports that shares moved between two accounts, either
// through a free transfer or a purchase.
type SharesTransferred struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Shares uint64 `json:"shares"`
}

func (SharesTransferred) EventType() Type { return TypeSharesTransferred }

// MainOwnerSet reports that main-owner status of an asset was reassigned.
type MainOwnerSet struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

func (MainOwnerSet) EventType() Type { return TypeMainOwnerSet }

// Sink receives events after an operation commits. Publish must not block
// the caller; the ledger engine publishes synchronously.
type Sink interface {
	Publish(Event)
}

// Nop is a Sink that discards all events.
type Nop struct{}

func (Nop) Publish(Event) {}
