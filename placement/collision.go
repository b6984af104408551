package placement

import "grid-canvas/grid"

// FindConflicts reports whether candidate overlaps any sibling other than
// the one identified by excludeID.
func FindConflicts(candidate grid.Rect, siblings []Node, excludeID string) bool {
	for _, s := range siblings {
		if s.ID == excludeID {
			continue
		}
		if candidate.Overlaps(s.Rect()) {
			return true
		}
	}
	return false
}

// Conflicting returns the ids of every sibling candidate overlaps, in
// sibling order.
func Conflicting(candidate grid.Rect, siblings []Node, excludeID string) []string {
	var ids []string
	for _, s := range siblings {
		if s.ID != excludeID && candidate.Overlaps(s.Rect()) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
