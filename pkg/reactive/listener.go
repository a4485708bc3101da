package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
// Memos and watchers implement it; so can external observers (for example a
// devtools push stream).
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier for this listener, used for
	// deduplication during subscription and batch flushing.
	ID() uint64
}

// idCounter is the source of unique IDs for all reactive primitives.
var idCounter uint64

// nextID returns the next unique ID. IDs are monotonically increasing and
// never reused.
func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
