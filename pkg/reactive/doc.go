// Package reactive provides the fine-grained reactivity layer that the loom
// state composables are built on.
//
// Signal[T] is a reactive value container:
//
//	count := reactive.NewSignal(0)
//	value := count.Get()  // read (subscribes the current listener)
//	count.Set(5)          // write (notifies subscribers)
//
// Memo[T] is a cached derived computation that recomputes lazily when any of
// its dependencies change:
//
//	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
//
// Watch runs a callback whenever its tracked dependencies change:
//
//	w := reactive.Watch(func() { fmt.Println(count.Get()) })
//	defer w.Stop()
//
// Multiple writes can be grouped so observers are notified once:
//
//	reactive.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
//
// All primitives are safe for concurrent use. Dependency tracking is
// per-goroutine; reads from goroutines without an active listener simply
// don't subscribe.
package reactive
