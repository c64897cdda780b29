package export

import (
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/testutil"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateAlertReport(t *testing.T) {
	out := generateAlertReport(testutil.Mixed(), "Plant Alerts", fixedTime)

	for _, want := range []string{
		"# Plant Alerts",
		"*Generated: Sun, 01 Mar 2026 12:00:00 UTC*",
		"Overall status: 🔴 **Ng**",
		"| Groups | 3 | 1 | 1 | 1 |",
		"| Contents | 10 | 7 | 2 | 1 |",
		"### 🟠 Node Log 00",
		"#### NodeA (Warning)",
		"| device 01 | driving in degraded condition | 🟠 Warning |",
		"### 🔴 Node Log 02",
		"| device 00 | stopped | 🔴 Ng |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Quiet branches are omitted.
	for _, absent := range []string{"Node Log 01", "#### NodeB (Ok)", "running..."} {
		if strings.Contains(out, absent) {
			t.Errorf("report should not contain %q", absent)
		}
	}
}

func TestGenerateAlertReportKeepsOrder(t *testing.T) {
	out := generateAlertReport(testutil.Mixed(), "r", fixedTime)
	first := strings.Index(out, "Node Log 00")
	second := strings.Index(out, "Node Log 02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("groups out of order (%d, %d)", first, second)
	}
}

func TestGenerateAlertReportNoAlerts(t *testing.T) {
	out := GenerateAlertReport(testutil.AllOk(), "Quiet")
	if !strings.Contains(out, "No alerts.") {
		t.Errorf("expected no-alerts line:\n%s", out)
	}
	if strings.Contains(out, "## Alerts") {
		t.Error("alerts section should be omitted")
	}
}

func TestGenerateAlertReportEscapesCells(t *testing.T) {
	h := testutil.Hierarchy(testutil.Group("G",
		model.NewNode(model.NodeA, []model.Content{
			{Index: "a|b", Caption: "line\nbreak", Status: model.StatusNg},
		}),
	))
	out := generateAlertReport(h, "r", fixedTime)
	if !strings.Contains(out, `| a\|b | line break | 🔴 Ng |`) {
		t.Errorf("cell not escaped:\n%s", out)
	}
}
