package reactive

import (
	"sync"
	"sync/atomic"
)

// Watcher is a reactive observer: it runs its function once under tracking,
// then re-runs it whenever any signal or memo it read changes. Unlike a
// memo it is eager and produces no value.
type Watcher struct {
	id uint64

	fn func()

	sources   []*signalBase
	sourcesMu sync.Mutex

	// running prevents re-entrant runs when the watcher writes one of its
	// own dependencies.
	running atomic.Bool

	stopped atomic.Bool
}

// Watch runs fn immediately under tracking and re-runs it on every change to
// its dependencies. Call Stop to unsubscribe.
func Watch(fn func()) *Watcher {
	w := &Watcher{
		id: nextID(),
		fn: fn,
	}
	w.run()
	return w
}

// MarkDirty re-runs the watcher. Implements Listener.
func (w *Watcher) MarkDirty() {
	if w.stopped.Load() {
		return
	}
	w.run()
}

// ID implements Listener.
func (w *Watcher) ID() uint64 {
	return w.id
}

// addSource implements sourceTracker.
func (w *Watcher) addSource(source *signalBase) {
	w.sourcesMu.Lock()
	defer w.sourcesMu.Unlock()

	for _, s := range w.sources {
		if s == source {
			return
		}
	}
	w.sources = append(w.sources, source)
}

// Stop permanently unsubscribes the watcher from all its sources.
func (w *Watcher) Stop() {
	if w.stopped.Swap(true) {
		return
	}
	w.sourcesMu.Lock()
	sources := w.sources
	w.sources = nil
	w.sourcesMu.Unlock()

	for _, source := range sources {
		source.unsubscribe(w)
	}
}

// run executes the watcher function under tracking, re-collecting sources.
func (w *Watcher) run() {
	if w.running.Swap(true) {
		return
	}
	defer w.running.Store(false)

	w.sourcesMu.Lock()
	for _, source := range w.sources {
		source.unsubscribe(w)
	}
	w.sources = w.sources[:0]
	w.sourcesMu.Unlock()

	WithListener(w, w.fn)
}

var _ sourceTracker = (*Watcher)(nil)
