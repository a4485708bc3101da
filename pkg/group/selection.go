package group

// flatSelector is the default selection strategy: no hierarchy, cardinality
// and mandatory policy enforced per item.
type flatSelector[T any] struct {
	g *Group[T]
}

func (s *flatSelector[T]) Select(ids []string) {
	for _, id := range ids {
		if !s.g.HasPeek(id) {
			continue
		}
		if s.g.cfg.multiple {
			s.g.MarkSelected(true, id)
		} else {
			s.g.ReplaceSelection(id)
		}
	}
}

func (s *flatSelector[T]) Unselect(ids []string) {
	for _, id := range ids {
		if !s.g.HasPeek(id) {
			continue
		}
		// Mandatory: refuse to empty the selection.
		if s.g.cfg.mandatory != MandatoryOff &&
			s.g.SelectedPeek(id) && s.g.selectedCount() == 1 {
			continue
		}
		s.g.MarkSelected(false, id)
		s.g.MarkMixed(false, id)
	}
}

func (s *flatSelector[T]) Toggle(ids []string) {
	for _, id := range ids {
		if s.g.SelectedPeek(id) || s.g.MixedPeek(id) {
			s.Unselect([]string{id})
		} else {
			s.Select([]string{id})
		}
	}
}
