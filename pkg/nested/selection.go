package nested

import "github.com/loom-ui/loom/pkg/group"

// treeSelector routes selection through the configured tree mode. It is
// installed as the group's Selector at construction.
type treeSelector[T any] struct {
	n    *Nested[T]
	mode SelectionMode
}

func (s *treeSelector[T]) Select(ids []string) {
	for _, id := range ids {
		if !s.n.HasPeek(id) {
			continue
		}
		switch s.mode {
		case SelectIndependent:
			s.n.MarkSelected(true, id)
		case SelectLeaf:
			s.n.MarkSelected(true, s.n.leafDescendantsPeek(id)...)
		default:
			s.cascadeApply(id, true)
		}
	}
}

func (s *treeSelector[T]) Unselect(ids []string) {
	for _, id := range ids {
		if !s.n.HasPeek(id) {
			continue
		}
		if s.blockedByMandatory(id) {
			continue
		}
		switch s.mode {
		case SelectIndependent:
			s.n.MarkSelected(false, id)
			s.n.MarkMixed(false, id)
		case SelectLeaf:
			s.n.MarkSelected(false, s.n.leafDescendantsPeek(id)...)
		default:
			s.cascadeApply(id, false)
		}
	}
}

func (s *treeSelector[T]) Toggle(ids []string) {
	for _, id := range ids {
		if !s.n.HasPeek(id) {
			continue
		}
		switch s.mode {
		case SelectIndependent:
			if s.n.SelectedPeek(id) {
				s.Unselect([]string{id})
			} else {
				s.Select([]string{id})
			}
		case SelectLeaf:
			if s.allLeavesSelected(id) {
				s.Unselect([]string{id})
			} else {
				s.Select([]string{id})
			}
		default:
			if s.n.SelectedPeek(id) || s.n.MixedPeek(id) {
				s.Unselect([]string{id})
			} else {
				s.Select([]string{id})
			}
		}
	}
}

// cascadeApply sets id and its whole subtree, then recomputes each
// ancestor's selected/mixed state bottom-up from its immediate children.
func (s *treeSelector[T]) cascadeApply(id string, on bool) {
	subtree := append([]string{id}, s.n.descendantsPeek(id)...)
	s.n.MarkSelected(on, subtree...)
	if !on {
		s.n.MarkMixed(false, subtree...)
	}

	ancestors := s.n.pathPeek(id)
	if len(ancestors) > 0 {
		ancestors = ancestors[:len(ancestors)-1]
	}
	// Bottom-up: nearest ancestor first.
	for i := len(ancestors) - 1; i >= 0; i-- {
		s.recomputeNode(ancestors[i])
	}
}

// recomputeNode derives a branch node's state from its immediate children:
// all selected means selected, some selected-or-mixed means mixed, none
// means neither.
func (s *treeSelector[T]) recomputeNode(id string) {
	children := s.n.childrenPeek(id)
	if len(children) == 0 {
		return
	}

	all := true
	some := false
	for _, child := range children {
		sel := s.n.SelectedPeek(child)
		mix := s.n.MixedPeek(child)
		if sel || mix {
			some = true
		}
		if !sel {
			all = false
		}
	}

	switch {
	case all:
		s.n.MarkSelected(true, id)
	case some:
		s.n.MarkMixed(true, id)
	default:
		s.n.MarkSelected(false, id)
		s.n.MarkMixed(false, id)
	}
}

// blockedByMandatory reports whether unselecting id must be refused because
// it would empty the selection entirely: every currently selected ID lies
// within the set this unselect would touch.
func (s *treeSelector[T]) blockedByMandatory(id string) bool {
	if s.n.MandatoryPolicy() == group.MandatoryOff {
		return false
	}
	selected := s.n.SelectedIDsPeek()
	if len(selected) == 0 {
		return false
	}

	var affected []string
	switch s.mode {
	case SelectIndependent:
		affected = []string{id}
	case SelectLeaf:
		affected = s.n.leafDescendantsPeek(id)
	default:
		affected = append([]string{id}, s.n.descendantsPeek(id)...)
	}
	touched := make(map[string]struct{}, len(affected))
	for _, a := range affected {
		touched[a] = struct{}{}
	}
	for _, sel := range selected {
		if _, ok := touched[sel]; !ok {
			return false
		}
	}
	return true
}

// allLeavesSelected reports whether every leaf descendant of id (or id
// itself for a leaf) is currently selected.
func (s *treeSelector[T]) allLeavesSelected(id string) bool {
	leaves := s.n.leafDescendantsPeek(id)
	if len(leaves) == 0 {
		return false
	}
	for _, leaf := range leaves {
		if !s.n.SelectedPeek(leaf) {
			return false
		}
	}
	return true
}
