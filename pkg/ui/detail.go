package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/selection"
)

const (
	colKind    = 10
	colStatus  = 8
	colCount   = 9
	colIndex   = 12
	minCaption = 12
)

// renderResolved renders the detail panel for the full view: the node
// summary of a focused group, the content table of a focused node, or a hint.
func renderResolved(r selection.Resolved, theme Theme, width int) string {
	switch r.State {
	case selection.GroupFocused:
		return renderGroupDetail(r, theme)
	case selection.NodeFocused:
		return renderNodeDetail(r, theme, width)
	default:
		return renderHint(theme)
	}
}

func renderHint(theme Theme) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Nothing selected"))
	sb.WriteString("\n\n")
	sb.WriteString(theme.MutedText.Render("Move with j/k and press enter on a group or node."))
	sb.WriteString("\n")
	sb.WriteString(theme.MutedText.Render("Press f to show alerting entries only."))
	return sb.String()
}

func renderGroupDetail(r selection.Resolved, theme Theme) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Group.Name()))
	sb.WriteString("  ")
	sb.WriteString(RenderStatusBadge(r.Group.Status()))
	sb.WriteString("\n\n")

	sb.WriteString(theme.Header.Render(
		cell("Node name", colKind) + " " + cell("Status", colStatus) + " " +
			cell("Contents", colCount) + " " + cell("Alerts", colCount)))
	sb.WriteString("\n")
	for _, row := range r.Nodes {
		sb.WriteString(" ")
		sb.WriteString(cell(row.Kind.String(), colKind))
		sb.WriteString(" ")
		sb.WriteString(theme.StatusText(row.Status))
		sb.WriteString(strings.Repeat(" ", colStatus-len(row.Status.String())))
		sb.WriteString(" ")
		sb.WriteString(cell(strconv.Itoa(row.ContentCount), colCount))
		sb.WriteString(" ")
		sb.WriteString(cell(strconv.Itoa(row.AlertCount), colCount))
		sb.WriteString("\n")
	}
	if len(r.Nodes) == 0 {
		sb.WriteString(theme.MutedText.Render(" no nodes"))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderNodeDetail(r selection.Resolved, theme Theme, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%s / %s", r.Group.Name(), r.Node.Name())))
	sb.WriteString("  ")
	sb.WriteString(RenderStatusBadge(r.Node.Status()))
	sb.WriteString("\n\n")
	writeContentTable(&sb, r.Contents, theme, width)
	return strings.TrimRight(sb.String(), "\n")
}

func writeContentTable(sb *strings.Builder, contents []model.Content, theme Theme, width int) {
	captionWidth := width - colIndex - colStatus - 4
	if captionWidth < minCaption {
		captionWidth = minCaption
	}
	sb.WriteString(theme.Header.Render(
		cell("index", colIndex) + " " + cell("caption", captionWidth) + " " + cell("status", colStatus)))
	sb.WriteString("\n")
	for _, c := range contents {
		sb.WriteString(" ")
		sb.WriteString(cell(c.Index, colIndex))
		sb.WriteString(" ")
		sb.WriteString(cell(c.Caption, captionWidth))
		sb.WriteString(" ")
		sb.WriteString(theme.StatusText(c.Status))
		sb.WriteString("\n")
	}
}

// renderAlertTable renders every group and node of an alert-filtered
// hierarchy with its alerting contents. It also returns the line on which
// each group's section starts so the panel can scroll to a selection.
func renderAlertTable(h model.Hierarchy, theme Theme, width int) (string, []int) {
	if len(h) == 0 {
		return theme.Title.Render("No alerts") + "\n\n" +
			theme.MutedText.Render("Every content row is Ok."), nil
	}

	var sb strings.Builder
	offsets := make([]int, len(h))
	line := 0
	write := func(s string) {
		sb.WriteString(s)
		line += strings.Count(s, "\n")
	}

	for gi, g := range h {
		offsets[gi] = line
		write(theme.Title.Render("Nodes: "+g.Name()) + "  " + RenderStatusBadge(g.Status()) + "\n")
		for _, n := range g.Nodes() {
			write(" " + n.Name() + "\n")
			if len(n.Contents()) == 0 {
				write(theme.MutedText.Render("  no alert contents") + "\n")
				continue
			}
			var table strings.Builder
			writeContentTable(&table, n.Contents(), theme, width)
			write(table.String())
		}
		write(RenderDivider(width) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n"), offsets
}

// selectionText is what the copy key puts on the clipboard: the selected
// entity's path, followed for a node by its content rows as tab-separated
// values.
func selectionText(r selection.Resolved) (string, bool) {
	switch r.State {
	case selection.GroupFocused:
		return fmt.Sprintf("%s\t%s", r.Group.Name(), r.Group.Status()), true
	case selection.NodeFocused:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s/%s\t%s\n", r.Group.Name(), r.Node.Name(), r.Node.Status()))
		for _, c := range r.Contents {
			sb.WriteString(fmt.Sprintf("%s\t%s\t%s\n", c.Index, c.Caption, c.Status))
		}
		return strings.TrimRight(sb.String(), "\n"), true
	default:
		return "", false
	}
}
