package reactive

import (
	"runtime"
	"sync"
)

// trackingState holds the reactive bookkeeping for one goroutine: the
// listener currently collecting dependencies and the batch nesting depth.
type trackingState struct {
	listener Listener

	batchDepth int
	pending    []Listener
}

// trackingStates maps goroutine ID to its tracking state.
var trackingStates sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack
// header ("goroutine <id> ..."). Implementation detail; never exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentState() *trackingState {
	gid := goroutineID()
	if st, ok := trackingStates.Load(gid); ok {
		return st.(*trackingState)
	}
	st := &trackingState{}
	trackingStates.Store(gid, st)
	return st
}

// currentListener returns the listener collecting dependencies on this
// goroutine, or nil when no tracking is active.
func currentListener() Listener {
	return currentState().listener
}

// setCurrentListener installs l as the tracking listener and returns the
// previous one so it can be restored.
func setCurrentListener(l Listener) Listener {
	st := currentState()
	old := st.listener
	st.listener = l
	return old
}

// WithListener runs fn with l installed as the tracking listener. Signal and
// memo reads inside fn subscribe l. Used by watchers and by tests.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs fn without dependency tracking: signal reads inside fn do
// not subscribe the current listener. For a single read prefer Peek.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
