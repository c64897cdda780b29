// Package testutil provides hierarchy fixtures for tests.
// The hand-built fixtures are fixed; the rapid generators produce arbitrary
// but well-formed hierarchies for property tests.
package testutil

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// Leaf builds a content row with a caption derived from its status.
func Leaf(index string, s model.Status) model.Content {
	return model.Content{Index: index, Caption: captionFor(s), Status: s}
}

func captionFor(s model.Status) string {
	switch s {
	case model.StatusNg:
		return "stopped"
	case model.StatusWarning:
		return "driving in degraded condition"
	default:
		return "running..."
	}
}

// Node builds a node whose contents carry the given statuses, indexed
// "device 00", "device 01", ...
func Node(kind model.NodeKind, statuses ...model.Status) model.Node {
	contents := make([]model.Content, len(statuses))
	for i, s := range statuses {
		contents[i] = Leaf(fmt.Sprintf("device %02d", i), s)
	}
	return model.NewNode(kind, contents)
}

// Group builds a group from nodes.
func Group(name string, nodes ...model.Node) model.Group {
	return model.NewGroup(name, nodes)
}

// Hierarchy collects groups into a hierarchy.
func Hierarchy(groups ...model.Group) model.Hierarchy {
	return model.Hierarchy(groups)
}

// ScenarioA is one group "X" with NodeA [Ok, Ok] and NodeB [Ok, Ng].
func ScenarioA() model.Hierarchy {
	return model.Hierarchy{
		Group("X",
			Node(model.NodeA, model.StatusOk, model.StatusOk),
			Node(model.NodeB, model.StatusOk, model.StatusNg),
		),
	}
}

// AllOk is a hierarchy with no alerting rows at all.
func AllOk() model.Hierarchy {
	return model.Hierarchy{
		Group("Quiet",
			Node(model.NodeA, model.StatusOk, model.StatusOk),
			Node(model.NodeB, model.StatusOk),
		),
	}
}

// Mixed is a three-group hierarchy used by selection and UI tests:
//
//	Node Log 00 (Warning): NodeA [Ok, Warning], NodeB [Ok]
//	Node Log 01 (Ok):      NodeA [Ok], NodeB [Ok], NodeC [Ok]
//	Node Log 02 (Ng):      NodeA [Ok], NodeB [Ng, Ok, Warning]
func Mixed() model.Hierarchy {
	return model.Hierarchy{
		Group("Node Log 00",
			Node(model.NodeA, model.StatusOk, model.StatusWarning),
			Node(model.NodeB, model.StatusOk),
		),
		Group("Node Log 01",
			Node(model.NodeA, model.StatusOk),
			Node(model.NodeB, model.StatusOk),
			Node(model.NodeC, model.StatusOk),
		),
		Group("Node Log 02",
			Node(model.NodeA, model.StatusOk),
			Node(model.NodeB, model.StatusNg, model.StatusOk, model.StatusWarning),
		),
	}
}

// StatusGen draws any status.
func StatusGen() *rapid.Generator[model.Status] {
	return rapid.SampledFrom(model.AllStatuses())
}

// NodeGen draws a node with up to maxContents rows.
func NodeGen(maxContents int) *rapid.Generator[model.Node] {
	return rapid.Custom(func(t *rapid.T) model.Node {
		kind := rapid.SampledFrom(model.AllNodeKinds()).Draw(t, "kind")
		statuses := rapid.SliceOfN(StatusGen(), 0, maxContents).Draw(t, "statuses")
		return Node(kind, statuses...)
	})
}

// HierarchyGen draws a hierarchy with bounded fan-out at every level.
func HierarchyGen() *rapid.Generator[model.Hierarchy] {
	return rapid.Custom(func(t *rapid.T) model.Hierarchy {
		groupCount := rapid.IntRange(0, 6).Draw(t, "groups")
		h := make(model.Hierarchy, 0, groupCount)
		for i := 0; i < groupCount; i++ {
			nodes := rapid.SliceOfN(NodeGen(6), 0, 5).Draw(t, fmt.Sprintf("nodes%d", i))
			h = append(h, Group(fmt.Sprintf("Node Log %02d", i), nodes...))
		}
		return h
	})
}
