package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/export"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

const reportTitle = "Alert Report"

// ReportModel is the full-screen alert report overlay. The markdown report
// is rendered through glamour and scrolled with a viewport.
type ReportModel struct {
	viewport viewport.Model
	markdown string
	theme    Theme
}

// NewReportModel renders the alert report for h at the given size.
func NewReportModel(h model.Hierarchy, theme Theme, width, height int) ReportModel {
	r := ReportModel{
		viewport: viewport.New(width, reportHeight(height)),
		markdown: export.GenerateAlertReport(h, reportTitle),
		theme:    theme,
	}
	r.viewport.SetContent(renderMarkdown(r.markdown, width))
	return r
}

// Markdown returns the unrendered report.
func (r ReportModel) Markdown() string { return r.markdown }

// SetSize re-wraps the report for a new terminal size.
func (r *ReportModel) SetSize(width, height int) {
	r.viewport.Width = width
	r.viewport.Height = reportHeight(height)
	r.viewport.SetContent(renderMarkdown(r.markdown, width))
}

// ScrollDown scrolls n lines.
func (r *ReportModel) ScrollDown(n int) { r.viewport.LineDown(n) }

// ScrollUp scrolls n lines.
func (r *ReportModel) ScrollUp(n int) { r.viewport.LineUp(n) }

// View renders the visible part of the report.
func (r ReportModel) View() string {
	hint := r.theme.MutedText.Render(fmt.Sprintf(" %3.0f%%  j/k scroll  esc close", r.viewport.ScrollPercent()*100))
	return r.viewport.View() + "\n" + hint
}

// reportHeight leaves a line for the scroll hint.
func reportHeight(h int) int {
	if h <= 1 {
		return 1
	}
	return h - 1
}

// renderMarkdown renders md with glamour, falling back to the raw text when
// the renderer cannot be built.
func renderMarkdown(md string, width int) string {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		debug.Log("glamour renderer: %v", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		debug.Log("glamour render: %v", err)
		return md
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n")
}
