package model

// Document is the serialized form of a hierarchy, shared by the file loaders
// and the robot output. Status fields on groups and nodes are written for
// readers' convenience but ignored when building a Hierarchy: parent statuses
// are always re-aggregated from the leaves.
type Document struct {
	Groups []GroupDoc `json:"groups" yaml:"groups"`
}

// GroupDoc is the serialized form of a Group.
type GroupDoc struct {
	Name   string    `json:"name" yaml:"name"`
	Status *Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Nodes  []NodeDoc `json:"nodes" yaml:"nodes"`
}

// NodeDoc is the serialized form of a Node.
type NodeDoc struct {
	Kind     NodeKind  `json:"kind" yaml:"kind"`
	Status   *Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Contents []Content `json:"contents" yaml:"contents"`
}

// NewDocument converts a hierarchy to its serialized form, including the
// derived statuses.
func NewDocument(h Hierarchy) Document {
	doc := Document{Groups: make([]GroupDoc, 0, len(h))}
	for _, g := range h {
		gs := g.Status()
		gd := GroupDoc{Name: g.Name(), Status: &gs, Nodes: make([]NodeDoc, 0, len(g.nodes))}
		for _, n := range g.nodes {
			ns := n.Status()
			contents := make([]Content, len(n.contents))
			copy(contents, n.contents)
			gd.Nodes = append(gd.Nodes, NodeDoc{Kind: n.kind, Status: &ns, Contents: contents})
		}
		doc.Groups = append(doc.Groups, gd)
	}
	return doc
}

// Hierarchy rebuilds the hierarchy through the constructors. Any stored
// group or node status is discarded.
func (d Document) Hierarchy() Hierarchy {
	h := make(Hierarchy, 0, len(d.Groups))
	for _, gd := range d.Groups {
		nodes := make([]Node, 0, len(gd.Nodes))
		for _, nd := range gd.Nodes {
			nodes = append(nodes, NewNode(nd.Kind, nd.Contents))
		}
		h = append(h, NewGroup(gd.Name, nodes))
	}
	return h
}

// StaleStatuses counts stored group/node statuses that disagree with the
// re-aggregated value. Loaders use it for diagnostics only.
func (d Document) StaleStatuses() int {
	stale := 0
	for _, gd := range d.Groups {
		nodeStatuses := make([]Status, 0, len(gd.Nodes))
		for _, nd := range gd.Nodes {
			leaves := make([]Status, len(nd.Contents))
			for i, c := range nd.Contents {
				leaves[i] = c.Status
			}
			derived := Aggregate(leaves...)
			nodeStatuses = append(nodeStatuses, derived)
			if nd.Status != nil && *nd.Status != derived {
				stale++
			}
		}
		if gd.Status != nil && *gd.Status != Aggregate(nodeStatuses...) {
			stale++
		}
	}
	return stale
}
