package reactive

import (
	"sync"
	"testing"
)

// testListener counts MarkDirty notifications.
type testListener struct {
	id uint64

	mu    sync.Mutex
	dirty int
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirty++
}

func (l *testListener) ID() uint64 { return l.id }

func (l *testListener) dirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.Set(1)
	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.dirtyCount())
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	count := NewSignal(42)
	listener := newTestListener()

	WithListener(listener, func() {
		if got := count.Peek(); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	count.Set(100)
	if listener.dirtyCount() != 0 {
		t.Errorf("Peek should not subscribe, got %d notifications", listener.dirtyCount())
	}
}

func TestSignalNoNotifyOnEqualValue(t *testing.T) {
	count := NewSignal(7)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.Set(7)
	if listener.dirtyCount() != 0 {
		t.Errorf("setting an equal value should not notify, got %d", listener.dirtyCount())
	}
}

func TestSignalMapValue(t *testing.T) {
	set := NewSignal(map[string]struct{}{})

	set.Update(func(m map[string]struct{}) map[string]struct{} {
		next := make(map[string]struct{}, len(m)+1)
		for k := range m {
			next[k] = struct{}{}
		}
		next["a"] = struct{}{}
		return next
	})

	if _, ok := set.Get()["a"]; !ok {
		t.Error("expected key 'a' after update")
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = count.Get()
		})
	})

	count.Set(1)
	if listener.dirtyCount() != 0 {
		t.Errorf("Untracked read should not subscribe, got %d", listener.dirtyCount())
	}
}

func TestSignalDeduplicatesSubscribers(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
		_ = count.Get()
	})

	count.Set(1)
	if listener.dirtyCount() != 1 {
		t.Errorf("double read should subscribe once, got %d notifications", listener.dirtyCount())
	}
}
