package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/velostore/storefront/internal/domain"
)

// SnapshotVersion is the current cart snapshot format version.
const SnapshotVersion = 1

// ErrCorruptSnapshot is returned when a persisted cart snapshot cannot be
// decoded or carries an unknown format version. Callers are expected to
// discard the snapshot and start from an empty cart.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// snapshotEnvelope tags the persisted line items with a format version so a
// future shape change can be detected instead of silently misparsed.
type snapshotEnvelope struct {
	Version int           `json:"version"`
	Items   []domain.Line `json:"items"`
}

// EncodeCart serializes cart lines into the versioned snapshot layout.
func EncodeCart(items []domain.Line) ([]byte, error) {
	if items == nil {
		items = []domain.Line{}
	}
	data, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// DecodeCart deserializes a persisted cart snapshot. It accepts the current
// versioned envelope as well as the legacy layout (a bare array of line
// records), which is migrated forward on the next save. Anything else is
// reported as ErrCorruptSnapshot.
func DecodeCart(data []byte) ([]domain.Line, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version != 0 {
		if env.Version != SnapshotVersion {
			return nil, fmt.Errorf("%w: unknown version %d", ErrCorruptSnapshot, env.Version)
		}
		if env.Items == nil {
			env.Items = []domain.Line{}
		}
		return env.Items, nil
	}

	// Legacy layout: a bare array of product records with quantity.
	var items []domain.Line
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return items, nil
}
