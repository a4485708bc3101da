package reactive

// Batch groups multiple signal writes into a single notification phase.
// Listeners dirtied inside fn are collected, deduplicated by ID, and
// notified once when the outermost batch completes.
//
// Batches nest; notifications fire only when the outermost batch returns.
//
//	reactive.Batch(func() {
//	    selected.Set(next)
//	    mixed.Set(nil)
//	})
//	// observers notified once
func Batch(fn func()) {
	st := currentState()
	st.batchDepth++

	defer func() {
		st.batchDepth--
		if st.batchDepth == 0 {
			flushPending(st)
		}
	}()

	fn()
}

// flushPending deduplicates and notifies the listeners queued during a
// batch.
func flushPending(st *trackingState) {
	pending := st.pending
	st.pending = nil
	if len(pending) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(pending))
	for _, l := range pending {
		if seen[l.ID()] {
			continue
		}
		seen[l.ID()] = true
		l.MarkDirty()
	}
}
