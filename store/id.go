package store

import "github.com/dosTaiyaki/linklist"

// idSet tracks the IDs in use within a collection.
type idSet struct {
	taken map[int64]bool
	max   int64
}

func newIDSet(links []*linklist.Link) *idSet {
	ids := &idSet{taken: make(map[int64]bool, len(links))}
	for _, l := range links {
		ids.claim(l.ID)
	}
	return ids
}

// claim marks id as used. It reports false if id is not positive or is
// already taken.
func (ids *idSet) claim(id int64) bool {
	if id <= 0 || ids.taken[id] {
		return false
	}
	ids.taken[id] = true
	ids.max = max(ids.max, id)
	return true
}

// next claims now when free and otherwise the value after the largest ID.
func (ids *idSet) next(now int64) int64 {
	if ids.claim(now) {
		return now
	}
	id := ids.max + 1
	ids.claim(id)
	return id
}

// assign claims the usable IDs of links, then gives the rest fresh ones,
// so a record never loses its ID to one listed before it. It reports
// whether any ID changed.
func (ids *idSet) assign(links []*linklist.Link, now int64) bool {
	var fresh []*linklist.Link
	for _, l := range links {
		if !ids.claim(l.ID) {
			fresh = append(fresh, l)
		}
	}
	for _, l := range fresh {
		l.ID = ids.next(now)
	}
	return len(fresh) > 0
}
