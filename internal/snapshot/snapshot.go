// Package snapshot serializes symbol descriptors into versioned,
// checksummed JSON documents and reconstructs them. The symbol record
// inside a snapshot is emitted deterministically: the same descriptor
// always produces byte-identical record content, so snapshots diff
// cleanly across writes.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
)

// FormatVersion is the snapshot format understood by this build. Decode
// rejects every other version; the caller falls back to fresh
// introspection and rewrites the file.
const FormatVersion = 1

const checksumPrefix = "sha256:"

// ErrCorrupt marks a snapshot that cannot be trusted: unparseable JSON, a
// format version mismatch, a failed checksum, or a record that does not
// validate. Callers treat a corrupt snapshot like a missing one.
var ErrCorrupt = errors.New("corrupt snapshot")

// Metadata is the envelope bookkeeping stored alongside the symbol
// record.
type Metadata struct {
	FormatVersion int       `json:"format_version"`
	SnapshotID    string    `json:"snapshot_id"`
	CreatedAt     time.Time `json:"created_at"`
	Checksum      string    `json:"checksum"`
}

// envelope is the full snapshot document. The symbol record is kept as
// raw JSON on the decode path so the checksum can be verified against the
// exact stored bytes before anything is interpreted.
type envelope struct {
	Metadata Metadata        `json:"_metadata"`
	Symbol   json.RawMessage `json:"symbol"`
}

// Encode serializes a symbol into a snapshot document: the deterministic
// record plus an envelope carrying format version, a fresh snapshot ID,
// creation time, and a checksum over the record.
func Encode(sym *descriptor.Symbol) ([]byte, error) {
	if sym == nil {
		return nil, fmt.Errorf("cannot encode nil symbol")
	}
	record, err := json.Marshal(newSymbolRecord(sym))
	if err != nil {
		return nil, fmt.Errorf("encoding symbol %s: %w", sym.Name(), err)
	}
	doc := envelope{
		Metadata: Metadata{
			FormatVersion: FormatVersion,
			SnapshotID:    uuid.New().String(),
			CreatedAt:     time.Now().UTC(),
			Checksum:      checksum(record),
		},
		Symbol: record,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot for %s: %w", sym.Name(), err)
	}
	return data, nil
}

// Decode verifies a snapshot document and rebuilds the symbol it
// describes. Every failure mode comes back wrapped in ErrCorrupt so
// callers can treat them uniformly.
func Decode(data []byte) (*descriptor.Symbol, error) {
	sym, _, err := decode(data)
	return sym, err
}

// Inspect verifies a snapshot document and returns its envelope metadata
// without rebuilding the symbol graph.
func Inspect(data []byte) (Metadata, error) {
	_, meta, err := decode(data)
	return meta, err
}

func decode(data []byte) (*descriptor.Symbol, Metadata, error) {
	var doc envelope
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: parsing envelope: %v", ErrCorrupt, err)
	}
	if doc.Metadata.FormatVersion != FormatVersion {
		return nil, Metadata{}, fmt.Errorf("%w: format version %d, want %d",
			ErrCorrupt, doc.Metadata.FormatVersion, FormatVersion)
	}
	if len(doc.Symbol) == 0 {
		return nil, Metadata{}, fmt.Errorf("%w: missing symbol record", ErrCorrupt)
	}

	// The stored record may be indented; indentation only moves
	// inter-token whitespace, so compacting recovers the exact bytes the
	// checksum was computed over.
	var compact bytes.Buffer
	if err := json.Compact(&compact, doc.Symbol); err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: normalizing symbol record: %v", ErrCorrupt, err)
	}
	if computed := checksum(compact.Bytes()); computed != doc.Metadata.Checksum {
		return nil, Metadata{}, fmt.Errorf("%w: checksum mismatch: stored %q, computed %q",
			ErrCorrupt, doc.Metadata.Checksum, computed)
	}

	var record symbolRecord
	if err := json.Unmarshal(doc.Symbol, &record); err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: parsing symbol record: %v", ErrCorrupt, err)
	}
	sym, err := record.symbol()
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return sym, doc.Metadata, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return checksumPrefix + hex.EncodeToString(sum[:])
}
