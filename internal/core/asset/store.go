package asset

// RecordStore is the keyed store of per-(asset, account) owner records.
// It performs no validation; business rules live in the engine.
type RecordStore interface {
	// Get returns the record for the pair, or nil when the account never
	// interacted with the asset.
	Get(id Identifier, owner Account) (*OwnerRecord, error)

	// Set writes the record for the pair, overwriting any previous value.
	Set(id Identifier, owner Account, rec OwnerRecord) error
}

// MainOwnerStore maps each asset to the single account currently holding
// main-owner status.
type MainOwnerStore interface {
	// Get returns the asset's main owner; ok is false when the asset has
	// no main owner and therefore does not exist.
	Get(id Identifier) (owner Account, ok bool, err error)

	// Set assigns the asset's main owner.
	Set(id Identifier, owner Account) error
}

type recordKey struct {
	id    Identifier
	owner Account
}

// Ledger keeps both stores in memory. Each Ledger is independent, so tests
// and standalone nodes get isolated state instead of sharing process-wide
// maps.
type Ledger struct {
	records map[recordKey]OwnerRecord
	owners  map[Identifier]Account
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records: make(map[recordKey]OwnerRecord),
		owners:  make(map[Identifier]Account),
	}
}

func (l *Ledger) Get(id Identifier, owner Account) (*OwnerRecord, error) {
	rec, ok := l.records[recordKey{id: id, owner: owner}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (l *Ledger) Set(id Identifier, owner Account, rec OwnerRecord) error {
	l.records[recordKey{id: id, owner: owner}] = rec
	return nil
}

// GetMainOwner implements MainOwnerStore.Get.
func (l *Ledger) GetMainOwner(id Identifier) (Account, bool, error) {
	owner, ok := l.owners[id]
	return owner, ok, nil
}

// SetMainOwner implements MainOwnerStore.Set.
func (l *Ledger) SetMainOwner(id Identifier, owner Account) error {
	l.owners[id] = owner
	return nil
}

// Records returns the ledger's RecordStore view.
func (l *Ledger) Records() RecordStore { return l }

// MainOwners returns the ledger's MainOwnerStore view.
func (l *Ledger) MainOwners() MainOwnerStore { return mainOwnerView{l} }

// mainOwnerView adapts Ledger's main-owner methods to the MainOwnerStore
// interface without colliding with RecordStore's Get/Set.
type mainOwnerView struct {
	l *Ledger
}

func (v mainOwnerView) Get(id Identifier) (Account, bool, error) {
	return v.l.GetMainOwner(id)
}

func (v mainOwnerView) Set(id Identifier, owner Account) error {
	return v.l.SetMainOwner(id, owner)
}
