package hierarchy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdash/dealdash/internal/crm"
)

func act(id string, parentID string) crm.Activity {
	a := crm.Activity{ID: id, Type: "task", Title: "Activity " + id, Status: "pending"}
	if parentID != "" {
		a.ParentActivityID = &parentID
	}
	return a
}

func ids(as []crm.Activity) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

// flatten walks a tree pre-order and collects ids.
func flatten(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.ID)
		out = append(out, flatten(n.Children)...)
	}
	return out
}

func TestBuildTreeNesting(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", "1"),
		act("3", "1"),
		act("4", "2"),
	}

	tree := BuildTree(snapshot, "")
	require.Len(t, tree, 1)
	require.Equal(t, "1", tree[0].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "2", tree[0].Children[0].ID)
	assert.Equal(t, "3", tree[0].Children[1].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "4", tree[0].Children[0].Children[0].ID)
	assert.Nil(t, tree[0].Children[1].Children)
}

func TestBuildTreeFromSubtree(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", "1"),
		act("3", "2"),
	}

	tree := BuildTree(snapshot, "1")
	require.Len(t, tree, 1)
	assert.Equal(t, "2", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "3", tree[0].Children[0].ID)
}

func TestBuildTreeOmitsEmptyChildren(t *testing.T) {
	snapshot := []crm.Activity{act("1", ""), act("2", "1")}

	data, err := json.Marshal(BuildTree(snapshot, ""))
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	_, hasChildren := raw[0]["children"]
	assert.True(t, hasChildren, "parent with a child must carry children")
	kids := raw[0]["children"].([]any)
	_, leafHasChildren := kids[0].(map[string]any)["children"]
	assert.False(t, leafHasChildren, "leaf must not carry a children field")
}

// Every record reachable from a root appears exactly once in a full tree.
func TestBuildTreeRoundTrip(t *testing.T) {
	snapshot := []crm.Activity{
		act("a", ""),
		act("b", ""),
		act("c", "a"),
		act("d", "c"),
		act("e", "b"),
		act("orphan", "missing"),
	}

	flat := flatten(BuildTree(snapshot, ""))
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, flat)
}

func TestDescendantsPreOrder(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", "1"),
		act("3", "1"),
		act("4", "2"),
		act("5", "4"),
	}

	assert.Equal(t, []string{"2", "4", "5", "3"}, ids(Descendants(snapshot, "1")))
	assert.Empty(t, Descendants(snapshot, "3"))
	assert.Empty(t, Descendants(snapshot, "nope"))
}

// Scenario: three-record chain 1 <- 2 <- 3.
func TestAncestorChain(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", "1"),
		act("3", "2"),
	}

	assert.Equal(t, []string{"2", "1"}, ids(Ancestors(snapshot, "3")))
	assert.Equal(t, 2, Depth(snapshot, "3"))
	assert.True(t, IsAncestorOf(snapshot, "1", "3"))
	assert.False(t, IsAncestorOf(snapshot, "3", "1"))
	assert.False(t, IsAncestorOf(snapshot, "3", "3"))
}

// Scenario: a lone orphan has a parent set, so it is not a root, but its
// dangling reference means zero ancestors and depth zero.
func TestOrphanIsNotARoot(t *testing.T) {
	snapshot := []crm.Activity{act("5", "missing")}

	assert.Empty(t, Roots(snapshot))
	assert.Empty(t, Ancestors(snapshot, "5"))
	assert.Equal(t, 0, Depth(snapshot, "5"))
}

// Scenario: multiple roots keep snapshot order.
func TestMultipleRoots(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", ""),
		act("3", "1"),
	}

	assert.Equal(t, []string{"1", "2"}, ids(Roots(snapshot)))

	tree := BuildTree(snapshot, "")
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "3", tree[0].Children[0].ID)
	assert.Nil(t, tree[1].Children)
}

func TestAncestorsUnknownID(t *testing.T) {
	snapshot := []crm.Activity{act("1", "")}
	assert.Empty(t, Ancestors(snapshot, "ghost"))
	assert.Equal(t, 0, Depth(snapshot, "ghost"))
	assert.False(t, IsAncestorOf(snapshot, "1", "ghost"))
}

func TestDepthMatchesAncestorLength(t *testing.T) {
	snapshot := []crm.Activity{
		act("r", ""),
		act("c1", "r"),
		act("c2", "c1"),
		act("c3", "c2"),
		act("orphan", "gone"),
	}

	for _, a := range snapshot {
		assert.Equal(t, len(Ancestors(snapshot, a.ID)), Depth(snapshot, a.ID), "activity %s", a.ID)
	}
	for _, r := range Roots(snapshot) {
		assert.Equal(t, 0, Depth(snapshot, r.ID))
	}
}

func TestPredicateAgreesWithChain(t *testing.T) {
	snapshot := []crm.Activity{
		act("r", ""),
		act("a", "r"),
		act("b", "a"),
		act("x", ""),
	}

	for _, d := range snapshot {
		chain := map[string]bool{}
		for _, anc := range Ancestors(snapshot, d.ID) {
			chain[anc.ID] = true
		}
		for _, a := range snapshot {
			assert.Equal(t, chain[a.ID], IsAncestorOf(snapshot, a.ID, d.ID),
				"IsAncestorOf(%s, %s)", a.ID, d.ID)
		}
	}
}

// A malformed snapshot with a parent cycle must terminate and emit each
// activity at most once instead of recursing forever.
func TestCyclicInputTerminates(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", "2"),
		act("2", "1"),
		act("3", ""),
	}

	assert.Equal(t, []string{"3"}, flatten(BuildTree(snapshot, "")))
	assert.Equal(t, []string{"2"}, ids(Descendants(snapshot, "1")))
	assert.Equal(t, []string{"2"}, ids(Ancestors(snapshot, "1")))
	assert.False(t, IsAncestorOf(snapshot, "1", "1"))
	assert.Equal(t, 1, Depth(snapshot, "1"))
}

// Calling twice with the same snapshot yields structurally identical output
// and leaves the snapshot untouched.
func TestIdempotence(t *testing.T) {
	snapshot := []crm.Activity{
		act("1", ""),
		act("2", "1"),
		act("3", "2"),
	}
	before := make([]crm.Activity, len(snapshot))
	copy(before, snapshot)

	first, _ := json.Marshal(BuildTree(snapshot, ""))
	second, _ := json.Marshal(BuildTree(snapshot, ""))
	assert.JSONEq(t, string(first), string(second))

	assert.Equal(t, ids(Descendants(snapshot, "1")), ids(Descendants(snapshot, "1")))
	assert.Equal(t, before, snapshot)
}
