package group

import "github.com/loom-ui/loom/pkg/reactive"

// idSet is the reactive set type used for selected/mixed/active membership.
// Updates are copy-on-write so readers never observe a partially mutated map.
type idSet = map[string]struct{}

func newSetSignal() *reactive.Signal[idSet] {
	return reactive.NewSignal(idSet{})
}

// setAdd returns a copy of s with ids added. Returns s unchanged (same map)
// when every id is already present, so the signal's equality check suppresses
// the notification.
func setAdd(s idSet, ids ...string) idSet {
	missing := 0
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			missing++
		}
	}
	if missing == 0 {
		return s
	}
	next := make(idSet, len(s)+missing)
	for k := range s {
		next[k] = struct{}{}
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return next
}

// setRemove returns a copy of s with ids removed, or s unchanged when none
// are present.
func setRemove(s idSet, ids ...string) idSet {
	present := 0
	for _, id := range ids {
		if _, ok := s[id]; ok {
			present++
		}
	}
	if present == 0 {
		return s
	}
	next := make(idSet, len(s)-present)
	drop := make(idSet, present)
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	for k := range s {
		if _, gone := drop[k]; !gone {
			next[k] = struct{}{}
		}
	}
	return next
}

func setHas(s idSet, id string) bool {
	_, ok := s[id]
	return ok
}
