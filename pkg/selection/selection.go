// Package selection holds the viewer's navigation state: the full and
// alert-filtered hierarchies, the view mode and a (group, node) cursor into
// whichever hierarchy is currently displayed.
package selection

import (
	"fmt"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// State names the shape of a Selection.
type State int

const (
	Empty State = iota
	GroupFocused
	NodeFocused
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case GroupFocused:
		return "GroupFocused"
	case NodeFocused:
		return "NodeFocused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selection is a cursor into the current hierarchy. The zero value is Empty.
// Node is meaningful only in the NodeFocused state.
type Selection struct {
	state State
	group int
	node  int
}

// None is the empty selection.
var None = Selection{}

// GroupAt returns a selection focusing group g.
func GroupAt(g int) Selection { return Selection{state: GroupFocused, group: g} }

// NodeAt returns a selection focusing node n of group g.
func NodeAt(g, n int) Selection { return Selection{state: NodeFocused, group: g, node: n} }

// State reports which kind of entity is focused.
func (s Selection) State() State { return s.state }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return s.state == Empty }

// Group returns the focused group index; ok is false for an empty selection.
func (s Selection) Group() (int, bool) {
	if s.state == Empty {
		return 0, false
	}
	return s.group, true
}

// Node returns the focused node index; ok is false unless a node is focused.
func (s Selection) Node() (int, bool) {
	if s.state != NodeFocused {
		return 0, false
	}
	return s.node, true
}

func (s Selection) String() string {
	switch s.state {
	case GroupFocused:
		return fmt.Sprintf("GroupFocused(%d)", s.group)
	case NodeFocused:
		return fmt.Sprintf("NodeFocused(%d, %d)", s.group, s.node)
	default:
		return "Empty"
	}
}

// NodeSummary is one row of a group's node table.
type NodeSummary struct {
	Kind         model.NodeKind
	Status       model.Status
	ContentCount int
	AlertCount   int
}

// Summarize builds the node summary rows for a group.
func Summarize(g model.Group) []NodeSummary {
	rows := make([]NodeSummary, 0, len(g.Nodes()))
	for _, n := range g.Nodes() {
		rows = append(rows, NodeSummary{
			Kind:         n.Kind(),
			Status:       n.Status(),
			ContentCount: len(n.Contents()),
			AlertCount:   n.AlertCount(),
		})
	}
	return rows
}

// Resolved is what the detail panel should render for the current selection.
type Resolved struct {
	State State

	// Group is set for GroupFocused and NodeFocused.
	Group model.Group
	// Nodes holds the summary rows for GroupFocused.
	Nodes []NodeSummary

	// Node and Contents are set for NodeFocused.
	Node     model.Node
	Contents []model.Content
}

// Empty reports whether there is nothing to display.
func (r Resolved) Empty() bool { return r.State == Empty }
