package nested

import (
	"github.com/loom-ui/loom/pkg/group"
	"github.com/loom-ui/loom/pkg/reactive"
)

// Onboard registers many nodes in one call. Adjacency writes are redirected
// into scratch maps while the batch runs and merged into the live maps in a
// single pass at the end, so bulk registration does not rebuild child lists
// per item. The final state is identical to sequential Register calls in the
// same order.
func (n *Nested[T]) Onboard(regs []Registration[T]) []*group.Ticket[T] {
	if len(regs) == 0 {
		return nil
	}

	tickets := make([]*group.Ticket[T], 0, len(regs))

	n.mu.Lock()
	n.batching = true
	n.scratchParents = make(map[string]string)
	n.scratchChildren = make(map[string][]string)
	n.mu.Unlock()

	reactive.Batch(func() {
		for _, r := range regs {
			tickets = append(tickets, n.register(r))
		}
		n.commitBatch()
	})

	return tickets
}

// commitBatch merges the scratch adjacency maps into the live ones and
// leaves batching mode.
func (n *Nested[T]) commitBatch() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, parent := range n.scratchParents {
		n.parents[id] = parent
	}
	for parent, kids := range n.scratchChildren {
		n.children[parent] = append(n.children[parent], kids...)
	}

	n.batching = false
	n.scratchParents = nil
	n.scratchChildren = nil
}
