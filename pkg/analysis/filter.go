// Package analysis derives views and statistics from a hierarchy snapshot.
package analysis

import (
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// FilterAlerts returns the branches of h that contain at least one alerting
// content row. Non-alerting contents are dropped, nodes left without contents
// are dropped, and groups left without nodes are dropped. Survivors keep
// their relative order and their statuses are re-derived from the kept
// children; since only Ok rows are removed, a survivor's status never changes.
func FilterAlerts(h model.Hierarchy) model.Hierarchy {
	defer metrics.Timer(metrics.AlertFilter)()

	out := make(model.Hierarchy, 0, len(h))
	for _, g := range h {
		nodes := filterNodes(g.Nodes())
		if len(nodes) == 0 {
			continue
		}
		out = append(out, model.NewGroup(g.Name(), nodes))
	}
	return out
}

func filterNodes(nodes []model.Node) []model.Node {
	var kept []model.Node
	for _, n := range nodes {
		var alerts []model.Content
		for _, c := range n.Contents() {
			if c.Status.IsAlert() {
				alerts = append(alerts, c)
			}
		}
		if len(alerts) == 0 {
			continue
		}
		kept = append(kept, model.NewNode(n.Kind(), alerts))
	}
	return kept
}
