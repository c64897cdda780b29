// Package export writes hierarchy snapshots to Markdown reports and SQLite
// databases.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// GenerateAlertReport renders a Markdown report of every alerting content row
// in h, grouped by group and node. Quiet groups and nodes are omitted.
func GenerateAlertReport(h model.Hierarchy, title string) string {
	return generateAlertReport(h, title, time.Now())
}

func generateAlertReport(h model.Hierarchy, title string, now time.Time) string {
	defer metrics.Timer(metrics.ReportRender)()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", now.Format(time.RFC1123)))

	sum := analysis.Summarize(h)
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("Overall status: %s **%s**\n\n", statusEmoji(sum.Overall), sum.Overall))
	sb.WriteString("| Level | Total | Ok | Warning | Ng |\n|-------|-------|----|---------|----|\n")
	writeCountsRow(&sb, "Groups", sum.Groups)
	writeCountsRow(&sb, "Nodes", sum.Nodes)
	writeCountsRow(&sb, "Contents", sum.Contents)
	sb.WriteString("\n")

	alerts := analysis.FilterAlerts(h)
	if len(alerts) == 0 {
		sb.WriteString("No alerts.\n")
		return sb.String()
	}

	sb.WriteString("## Alerts\n\n")
	for _, g := range alerts {
		sb.WriteString(fmt.Sprintf("### %s %s\n\n", statusEmoji(g.Status()), escapeMarkdown(g.Name())))
		for _, n := range g.Nodes() {
			sb.WriteString(fmt.Sprintf("#### %s (%s)\n\n", n.Name(), n.Status()))
			sb.WriteString("| Index | Caption | Status |\n|-------|---------|--------|\n")
			for _, c := range n.Contents() {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s %s |\n",
					escapeCell(c.Index), escapeCell(c.Caption), statusEmoji(c.Status), c.Status))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeCountsRow(sb *strings.Builder, label string, c analysis.LevelCounts) {
	sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n", label, c.Total, c.Ok, c.Warning, c.Ng))
}

func statusEmoji(s model.Status) string {
	switch s {
	case model.StatusOk:
		return "🟢"
	case model.StatusWarning:
		return "🟠"
	case model.StatusNg:
		return "🔴"
	default:
		return "⚪"
	}
}

// escapeCell keeps table cells on one line and stops pipes from splitting
// columns.
func escapeCell(s string) string {
	r := strings.NewReplacer("|", "\\|", "\n", " ", "\r", "")
	return strings.TrimSpace(r.Replace(s))
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("#", "\\#", "*", "\\*", "_", "\\_", "`", "\\`")
	return r.Replace(s)
}
