// Package snapshot captures and restores the state of a nested tree: the
// flat item records plus the selected, mixed, opened, and active sets. It is
// used for session state restoration; a Store persists encoded snapshots,
// with in-memory and S3 backends provided.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/loom-ui/loom/pkg/nested"
)

// ErrNotFound is returned by Store.Load when no snapshot exists under the
// requested key.
var ErrNotFound = errors.New("snapshot: not found")

// Snapshot is the serializable state of one tree.
type Snapshot[T any] struct {
	Items    []nested.FlatItem[T] `json:"items"`
	Selected []string             `json:"selected,omitempty"`
	Mixed    []string             `json:"mixed,omitempty"`
	Opened   []string             `json:"opened,omitempty"`
	Active   []string             `json:"active,omitempty"`
}

// Store persists encoded snapshots by key.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Capture reads the tree's full state.
func Capture[T any](n *nested.Nested[T]) *Snapshot[T] {
	return &Snapshot[T]{
		Items:    n.ToFlat(),
		Selected: n.SelectedIDs(),
		Mixed:    n.MixedIDs(),
		Opened:   n.OpenedIDs(),
		Active:   n.ActiveIDs(),
	}
}

// Restore onboards the snapshot's items into n and replays the state sets
// through the raw membership writes, bypassing strategies so the restored
// sets match the captured ones exactly. n should be empty.
func Restore[T any](n *nested.Nested[T], s *Snapshot[T]) {
	n.FromFlat(s.Items)
	n.MarkSelected(true, s.Selected...)
	n.MarkMixed(true, s.Mixed...)
	n.MarkOpened(true, s.Opened...)
	n.Activate(s.Active...)
}

// Save encodes the snapshot as JSON and writes it to the store.
func Save[T any](ctx context.Context, store Store, key string, s *Snapshot[T]) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: encode %q: %w", key, err)
	}
	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("snapshot: save %q: %w", key, err)
	}
	return nil
}

// Load reads and decodes a snapshot from the store.
func Load[T any](ctx context.Context, store Store, key string) (*Snapshot[T], error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	var s Snapshot[T]
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: decode %q: %w", key, err)
	}
	return &s, nil
}
