package testutil

import (
	"reflect"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// TB is the subset of testing.TB the assertions need. Both *testing.T and
// *rapid.T satisfy it.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertDerivedStatuses verifies every node and group status equals the
// aggregate of its children.
func AssertDerivedStatuses(t TB, h model.Hierarchy) {
	t.Helper()
	for gi, g := range h {
		nodeStatuses := make([]model.Status, 0, len(g.Nodes()))
		for ni, n := range g.Nodes() {
			leaves := make([]model.Status, 0, len(n.Contents()))
			for _, c := range n.Contents() {
				leaves = append(leaves, c.Status)
			}
			if want := model.Aggregate(leaves...); n.Status() != want {
				t.Errorf("group %d node %d: status %v, want %v", gi, ni, n.Status(), want)
			}
			nodeStatuses = append(nodeStatuses, n.Status())
		}
		if want := model.Aggregate(nodeStatuses...); g.Status() != want {
			t.Errorf("group %d (%s): status %v, want %v", gi, g.Name(), g.Status(), want)
		}
	}
}

// AssertHierarchyEqual compares two hierarchies structurally.
func AssertHierarchyEqual(t TB, got, want model.Hierarchy) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(model.NewDocument(got), model.NewDocument(want)) {
		t.Errorf("hierarchies differ:\n got: %+v\nwant: %+v", model.NewDocument(got), model.NewDocument(want))
	}
}
