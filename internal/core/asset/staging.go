package asset

// Staged store views buffer an operation's writes on top of the base
// stores, the same way the transaction engine of a full ledger node tracks
// entries in an apply table: the operation reads through to base state,
// writes land in the pending set, and nothing reaches the base stores
// until commit. A rejected operation is simply never committed.

type stagedRecords struct {
	base    RecordStore
	pending map[recordKey]OwnerRecord
}

func newStagedRecords(base RecordStore) *stagedRecords {
	return &stagedRecords{
		base:    base,
		pending: make(map[recordKey]OwnerRecord),
	}
}

func (s *stagedRecords) Get(id Identifier, owner Account) (*OwnerRecord, error) {
	if rec, ok := s.pending[recordKey{id: id, owner: owner}]; ok {
		return &rec, nil
	}
	return s.base.Get(id, owner)
}

func (s *stagedRecords) Set(id Identifier, owner Account, rec OwnerRecord) error {
	s.pending[recordKey{id: id, owner: owner}] = rec
	return nil
}

func (s *stagedRecords) commit() error {
	for key, rec := range s.pending {
		if err := s.base.Set(key.id, key.owner, rec); err != nil {
			return err
		}
	}
	return nil
}

type stagedOwners struct {
	base    MainOwnerStore
	pending map[Identifier]Account
}

func newStagedOwners(base MainOwnerStore) *stagedOwners {
	return &stagedOwners{
		base:    base,
		pending: make(map[Identifier]Account),
	}
}

func (s *stagedOwners) Get(id Identifier) (Account, bool, error) {
	if owner, ok := s.pending[id]; ok {
		return owner, true, nil
	}
	return s.base.Get(id)
}

func (s *stagedOwners) Set(id Identifier, owner Account) error {
	s.pending[id] = owner
	return nil
}

func (s *stagedOwners) commit() error {
	for id, owner := range s.pending {
		if err := s.base.Set(id, owner); err != nil {
			return err
		}
	}
	return nil
}
