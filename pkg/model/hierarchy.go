package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNodeKind is returned when a node kind string is not in the closed set.
var ErrUnknownNodeKind = errors.New("unknown node kind")

// NodeKind names a node. The set of kinds is closed.
type NodeKind int

const (
	NodeA NodeKind = iota
	NodeB
	NodeC
	NodeD
	NodeE
	numNodeKinds // Keep this last
)

// AllNodeKinds returns every node kind in declaration order.
func AllNodeKinds() []NodeKind {
	kinds := make([]NodeKind, 0, numNodeKinds)
	for k := NodeA; k < numNodeKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k NodeKind) String() string {
	switch k {
	case NodeA:
		return "NodeA"
	case NodeB:
		return "NodeB"
	case NodeC:
		return "NodeC"
	case NodeD:
		return "NodeD"
	case NodeE:
		return "NodeE"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// IsValid reports whether k belongs to the closed set.
func (k NodeKind) IsValid() bool {
	return k >= NodeA && k < numNodeKinds
}

// ParseNodeKind parses "NodeA".."NodeE" (case-insensitive).
func ParseNodeKind(s string) (NodeKind, error) {
	want := strings.TrimSpace(s)
	for _, k := range AllNodeKinds() {
		if strings.EqualFold(k.String(), want) {
			return k, nil
		}
	}
	return NodeA, fmt.Errorf("%w: %q", ErrUnknownNodeKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNodeKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Content is a leaf row. It is a plain value; a status change means a new Content.
type Content struct {
	Index   string `json:"index" yaml:"index"`
	Caption string `json:"caption" yaml:"caption"`
	Status  Status `json:"status" yaml:"status"`
}

// Node owns an ordered list of contents. Its status is the aggregate of the
// content statuses and is fixed at construction.
type Node struct {
	kind     NodeKind
	contents []Content
	status   Status
}

// NewNode builds a node, copying contents and deriving its status. Content
// statuses outside the defined range are stored as Ng.
func NewNode(kind NodeKind, contents []Content) Node {
	owned := make([]Content, len(contents))
	copy(owned, contents)
	statuses := make([]Status, len(owned))
	for i := range owned {
		owned[i].Status = owned[i].Status.Normalize()
		statuses[i] = owned[i].Status
	}
	return Node{
		kind:     kind,
		contents: owned,
		status:   Aggregate(statuses...),
	}
}

// Kind returns the node kind.
func (n Node) Kind() NodeKind { return n.kind }

// Name returns the display name of the node kind.
func (n Node) Name() string { return n.kind.String() }

// Status returns the derived status.
func (n Node) Status() Status { return n.status }

// Contents returns the content rows. Callers must not modify the slice.
func (n Node) Contents() []Content { return n.contents }

// AlertCount returns how many contents are alerting.
func (n Node) AlertCount() int {
	count := 0
	for _, c := range n.contents {
		if c.Status.IsAlert() {
			count++
		}
	}
	return count
}

// Group is a named collection of nodes. Its status is the aggregate of the
// node statuses and is fixed at construction.
type Group struct {
	name   string
	nodes  []Node
	status Status
}

// NewGroup builds a group, copying nodes and deriving its status.
func NewGroup(name string, nodes []Node) Group {
	owned := make([]Node, len(nodes))
	copy(owned, nodes)
	statuses := make([]Status, len(owned))
	for i := range owned {
		statuses[i] = owned[i].status
	}
	return Group{
		name:   name,
		nodes:  owned,
		status: Aggregate(statuses...),
	}
}

// Name returns the group name.
func (g Group) Name() string { return g.name }

// Status returns the derived status.
func (g Group) Status() Status { return g.status }

// Nodes returns the nodes. Callers must not modify the slice.
func (g Group) Nodes() []Node { return g.nodes }

// NodeAt returns the node at index n.
func (g Group) NodeAt(n int) (Node, bool) {
	if n < 0 || n >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[n], true
}

// Hierarchy is the full ordered snapshot of groups.
type Hierarchy []Group

// GroupAt returns the group at index g.
func (h Hierarchy) GroupAt(g int) (Group, bool) {
	if g < 0 || g >= len(h) {
		return Group{}, false
	}
	return h[g], true
}

// NodeAt returns the node at (g, n).
func (h Hierarchy) NodeAt(g, n int) (Node, bool) {
	group, ok := h.GroupAt(g)
	if !ok {
		return Node{}, false
	}
	return group.NodeAt(n)
}

// Status returns the aggregate over every group.
func (h Hierarchy) Status() Status {
	statuses := make([]Status, len(h))
	for i := range h {
		statuses[i] = h[i].status
	}
	return Aggregate(statuses...)
}

// Counts holds element totals for a hierarchy.
type Counts struct {
	Groups   int            `json:"groups"`
	Nodes    int            `json:"nodes"`
	Contents int            `json:"contents"`
	ByStatus map[Status]int `json:"by_status"`
}

// Counts walks the hierarchy once and tallies groups, nodes and leaf statuses.
func (h Hierarchy) Counts() Counts {
	c := Counts{ByStatus: make(map[Status]int, 3)}
	for _, s := range AllStatuses() {
		c.ByStatus[s] = 0
	}
	c.Groups = len(h)
	for _, g := range h {
		c.Nodes += len(g.nodes)
		for _, n := range g.nodes {
			c.Contents += len(n.contents)
			for _, ct := range n.contents {
				c.ByStatus[ct.Status]++
			}
		}
	}
	return c
}
