package analysis_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/testutil"
)

func TestFilterAlertsScenarioA(t *testing.T) {
	got := analysis.FilterAlerts(testutil.ScenarioA())

	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d", len(got))
	}
	g := got[0]
	if g.Name() != "X" || g.Status() != model.StatusNg {
		t.Errorf("group = %q/%v, want X/Ng", g.Name(), g.Status())
	}
	if len(g.Nodes()) != 1 {
		t.Fatalf("expected 1 node, got %d", len(g.Nodes()))
	}
	n := g.Nodes()[0]
	if n.Kind() != model.NodeB || n.Status() != model.StatusNg {
		t.Errorf("node = %v/%v, want NodeB/Ng", n.Kind(), n.Status())
	}
	if len(n.Contents()) != 1 || n.Contents()[0].Status != model.StatusNg {
		t.Errorf("contents = %+v, want a single Ng row", n.Contents())
	}
	// device 01 was the Ng row in the source node
	if n.Contents()[0].Index != "device 01" {
		t.Errorf("kept index = %q, want %q", n.Contents()[0].Index, "device 01")
	}
}

func TestFilterAlertsScenarioB(t *testing.T) {
	got := analysis.FilterAlerts(testutil.AllOk())
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d groups", len(got))
	}
}

func TestFilterAlertsEmpty(t *testing.T) {
	if got := analysis.FilterAlerts(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d groups", len(got))
	}
}

func TestFilterAlertsPreservesOrder(t *testing.T) {
	got := analysis.FilterAlerts(testutil.Mixed())
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Name() != "Node Log 00" || got[1].Name() != "Node Log 02" {
		t.Errorf("group order = %q, %q", got[0].Name(), got[1].Name())
	}
	rows := got[1].Nodes()[0].Contents()
	if len(rows) != 2 || rows[0].Status != model.StatusNg || rows[1].Status != model.StatusWarning {
		t.Errorf("rows = %+v, want [Ng, Warning] in source order", rows)
	}
}

func hasAlertLeaf(nodes []model.Node) bool {
	for _, n := range nodes {
		if n.AlertCount() > 0 {
			return true
		}
	}
	return false
}

func TestFilterAlertsSurvivorsIffAlerting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := testutil.HierarchyGen().Draw(t, "h")
		filtered := analysis.FilterAlerts(h)

		fi := 0
		for _, g := range h {
			alerting := hasAlertLeaf(g.Nodes())
			survived := fi < len(filtered) && filtered[fi].Name() == g.Name()
			if alerting != survived {
				t.Fatalf("group %q: alerting=%v survived=%v", g.Name(), alerting, survived)
			}
			if !survived {
				continue
			}

			fg := filtered[fi]
			fi++
			if fg.Status() != g.Status() {
				t.Fatalf("group %q status changed: %v -> %v", g.Name(), g.Status(), fg.Status())
			}

			fn := 0
			for _, n := range g.Nodes() {
				if n.AlertCount() == 0 {
					continue
				}
				if fn >= len(fg.Nodes()) {
					t.Fatalf("group %q: alerting node %v missing", g.Name(), n.Kind())
				}
				kept := fg.Nodes()[fn]
				fn++
				if kept.Kind() != n.Kind() || kept.Status() != n.Status() {
					t.Fatalf("node %v/%v became %v/%v", n.Kind(), n.Status(), kept.Kind(), kept.Status())
				}
				if len(kept.Contents()) != n.AlertCount() {
					t.Fatalf("node %v kept %d rows, want %d", n.Kind(), len(kept.Contents()), n.AlertCount())
				}
			}
			if fn != len(fg.Nodes()) {
				t.Fatalf("group %q has %d extra nodes", g.Name(), len(fg.Nodes())-fn)
			}
		}
		if fi != len(filtered) {
			t.Fatalf("filtered has %d unexpected groups", len(filtered)-fi)
		}
		testutil.AssertDerivedStatuses(t, filtered)
	})
}

func TestFilterAlertsKeepsUndefinedStatusRow(t *testing.T) {
	h := model.Hierarchy{
		model.NewGroup("G", []model.Node{
			model.NewNode(model.NodeA, []model.Content{
				{Index: "device 00", Caption: "ok", Status: model.StatusOk},
				{Index: "device 01", Caption: "corrupt", Status: model.Status(7)},
			}),
		}),
	}
	got := analysis.FilterAlerts(h)
	if len(got) != 1 || len(got[0].Nodes()) != 1 {
		t.Fatalf("filtered = %v, want one group with one node", got)
	}
	n := got[0].Nodes()[0]
	if len(n.Contents()) != 1 || n.Contents()[0].Index != "device 01" {
		t.Errorf("surviving contents = %v, want only device 01", n.Contents())
	}
	if n.Status() != model.StatusNg || got[0].Status() != model.StatusNg {
		t.Errorf("statuses = %v/%v, want Ng/Ng", got[0].Status(), n.Status())
	}
}

func TestFilterAlertsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := testutil.HierarchyGen().Draw(t, "h")
		once := analysis.FilterAlerts(h)
		twice := analysis.FilterAlerts(once)
		testutil.AssertHierarchyEqual(t, twice, once)
	})
}

func TestFilterAlertsDoesNotAliasInput(t *testing.T) {
	h := testutil.ScenarioA()
	filtered := analysis.FilterAlerts(h)
	if len(h[0].Nodes()) != 2 || len(h[0].Nodes()[1].Contents()) != 2 {
		t.Error("filtering must leave the source hierarchy intact")
	}
	if len(filtered[0].Nodes()[0].Contents()) != 1 {
		t.Error("filtered node should hold only the alert row")
	}
}
