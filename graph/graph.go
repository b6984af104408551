package graph

import (
	"fmt"
	"sort"
)

// Node is a lightweight view of a placed node for graph algorithms.
type Node struct {
	ID     string
	Label  string
	Canvas bool
}

// Link connects a canvas to one of the nodes placed on it.
type Link struct {
	ParentID string
	ChildID  string
}

// CycleError reports the nodes that could not be ordered because they sit
// on or below a cycle.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected in graph: %v", e.IDs)
}

// Order sorts nodes parents-first using Kahn's algorithm. Roots are visited
// in id order and children in link order, so the result is deterministic.
// Links that mention unknown ids are ignored.
func Order(nodes []Node, links []Link) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	outs := make(map[string][]string)
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, l := range links {
		if _, ok := inDegree[l.ParentID]; !ok {
			continue
		}
		if _, ok := inDegree[l.ChildID]; !ok {
			continue
		}
		outs[l.ParentID] = append(outs[l.ParentID], l.ChildID)
		inDegree[l.ChildID]++
	}

	queue := []string{}
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		result = append(result, u)

		for _, v := range outs[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(result) != len(inDegree) {
		var stuck []string
		for id, d := range inDegree {
			if d > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return result, &CycleError{IDs: stuck}
	}
	return result, nil
}

// Depths returns the distance of every reachable node from a root, given a
// parents-first order.
func Depths(order []string, links []Link) map[string]int {
	parent := make(map[string]string, len(links))
	for _, l := range links {
		parent[l.ChildID] = l.ParentID
	}
	depth := make(map[string]int, len(order))
	for _, id := range order {
		if p, ok := parent[id]; ok {
			if d, seen := depth[p]; seen {
				depth[id] = d + 1
				continue
			}
		}
		depth[id] = 0
	}
	return depth
}
