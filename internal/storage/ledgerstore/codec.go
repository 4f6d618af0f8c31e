package ledgerstore

import (
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/propasset/propd/internal/core/asset"
)

// Records are stored CBOR-encoded. CBOR keeps the on-disk format compact
// and self-describing, so fields can be added without rewriting records.
var cborHandle = func() *codec.CborHandle {
	var h codec.CborHandle
	h.Canonical = true
	return &h
}()

func encodeRecord(rec asset.OwnerRecord) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, cborHandle).Encode(rec); err != nil {
		return nil, fmt.Errorf("encode owner record: %w", err)
	}
	return buf, nil
}

func decodeRecord(raw []byte) (asset.OwnerRecord, error) {
	var rec asset.OwnerRecord
	if err := codec.NewDecoderBytes(raw, cborHandle).Decode(&rec); err != nil {
		return asset.OwnerRecord{}, fmt.Errorf("decode owner record: %w", err)
	}
	return rec, nil
}
