// Package hierarchy answers structural queries over the parent/child relation
// induced by Activity.ParentActivityID. Every function is a pure read over the
// snapshot it is handed: nothing is mutated, no state is kept between calls,
// and lookup misses surface as empty results rather than errors. Callers that
// need to distinguish "no such activity" from "no relationship" must check
// existence themselves.
package hierarchy

import "github.com/dealdash/dealdash/internal/crm"

// Node is a shallow copy of an activity annotated with its children. Children
// stays nil for leaves so the field is omitted from JSON entirely, rather than
// serialized as an empty array.
type Node struct {
	crm.Activity
	Children []*Node `json:"children,omitempty"`
}

// index holds the per-call lookup tables: snapshot position by activity id,
// and child positions grouped by parent key in snapshot order.
type index struct {
	byID     map[string]int
	children map[string][]int
}

func newIndex(snapshot []crm.Activity) *index {
	idx := &index{
		byID:     make(map[string]int, len(snapshot)),
		children: make(map[string][]int),
	}
	for i, a := range snapshot {
		if _, dup := idx.byID[a.ID]; !dup {
			idx.byID[a.ID] = i
		}
		key := parentKey(a)
		idx.children[key] = append(idx.children[key], i)
	}
	return idx
}

// parentKey normalizes the optional parent reference: nil and empty string
// both mean "no parent".
func parentKey(a crm.Activity) string {
	if a.ParentActivityID == nil {
		return ""
	}
	return *a.ParentActivityID
}

// BuildTree nests the snapshot under parentID ("" for the whole forest),
// preserving snapshot order among siblings. A snapshot containing a parent
// cycle yields a truncated tree instead of unbounded recursion: each activity
// appears at most once.
func BuildTree(snapshot []crm.Activity, parentID string) []*Node {
	idx := newIndex(snapshot)
	seen := make(map[string]bool)
	if parentID != "" {
		seen[parentID] = true
	}
	return buildSubtree(snapshot, idx, parentID, seen)
}

func buildSubtree(snapshot []crm.Activity, idx *index, parentID string, seen map[string]bool) []*Node {
	var nodes []*Node
	for _, i := range idx.children[parentID] {
		a := snapshot[i]
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		n := &Node{Activity: a}
		n.Children = buildSubtree(snapshot, idx, a.ID, seen)
		nodes = append(nodes, n)
	}
	return nodes
}

// Descendants returns everything transitively below activityID in pre-order:
// each child before its own children, siblings in snapshot order. The result
// is empty when activityID is unknown or has no children.
func Descendants(snapshot []crm.Activity, activityID string) []crm.Activity {
	idx := newIndex(snapshot)
	out := []crm.Activity{}
	seen := map[string]bool{activityID: true}

	var walk func(parentID string)
	walk = func(parentID string) {
		for _, i := range idx.children[parentID] {
			a := snapshot[i]
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			out = append(out, a)
			walk(a.ID)
		}
	}
	walk(activityID)
	return out
}

// Ancestors walks the parent chain of activityID, immediate parent first,
// root last. An unknown activityID yields an empty chain; a parent reference
// that does not resolve in the snapshot halts the walk silently, so orphans
// report zero ancestors.
func Ancestors(snapshot []crm.Activity, activityID string) []crm.Activity {
	idx := newIndex(snapshot)
	pos, ok := idx.byID[activityID]
	if !ok {
		return []crm.Activity{}
	}

	chain := []crm.Activity{}
	seen := map[string]bool{activityID: true}
	pid := parentKey(snapshot[pos])
	for pid != "" {
		j, ok := idx.byID[pid]
		if !ok || seen[pid] {
			break
		}
		seen[pid] = true
		chain = append(chain, snapshot[j])
		pid = parentKey(snapshot[j])
	}
	return chain
}

// Roots returns the activities with no parent reference, in snapshot order.
// An orphan (parent set but unresolvable) is not a root and is excluded, even
// though Ancestors treats its dangling reference as the end of the walk.
func Roots(snapshot []crm.Activity) []crm.Activity {
	roots := []crm.Activity{}
	for _, a := range snapshot {
		if parentKey(a) == "" {
			roots = append(roots, a)
		}
	}
	return roots
}

// Depth is the length of the ancestor chain: 0 for roots, orphans and
// unknown ids alike.
func Depth(snapshot []crm.Activity, activityID string) int {
	return len(Ancestors(snapshot, activityID))
}

// IsAncestorOf reports whether ancestorID appears in the ancestor chain of
// descendantID. Never reflexive: an activity is not its own ancestor.
func IsAncestorOf(snapshot []crm.Activity, ancestorID, descendantID string) bool {
	for _, a := range Ancestors(snapshot, descendantID) {
		if a.ID == ancestorID {
			return true
		}
	}
	return false
}
