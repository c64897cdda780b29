// tree.go - Left panel: collapsible group/node tree over the current hierarchy
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/selection"
)

// treeRow is one visible line of the tree. node is -1 for a group header.
type treeRow struct {
	group int
	node  int
}

func (r treeRow) isGroup() bool { return r.node < 0 }

// TreeModel manages the tree panel: expansion state, the cursor and the
// scroll window. Rows address the hierarchy purely by index.
type TreeModel struct {
	h              model.Hierarchy
	expanded       map[int]bool // group index -> expanded
	rows           []treeRow    // flattened visible rows
	cursor         int          // index into rows
	viewportOffset int          // index of first visible row
	width          int
	height         int
	theme          Theme
}

// NewTreeModel creates an empty tree model
func NewTreeModel(theme Theme) TreeModel {
	return TreeModel{
		theme:    theme,
		expanded: make(map[int]bool),
	}
}

// Build replaces the hierarchy shown by the tree. Expansion state and the
// cursor are reset: every group starts expanded when defaultOpen is set and
// collapsed otherwise.
func (t *TreeModel) Build(h model.Hierarchy, defaultOpen bool) {
	t.h = h
	t.expanded = make(map[int]bool, len(h))
	for i := range h {
		t.expanded[i] = defaultOpen
	}
	t.cursor = 0
	t.viewportOffset = 0
	t.rebuildRows()
}

// SetSize sets the panel's inner dimensions.
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

func (t *TreeModel) rebuildRows() {
	t.rows = t.rows[:0]
	for gi, g := range t.h {
		t.rows = append(t.rows, treeRow{group: gi, node: -1})
		if !t.expanded[gi] {
			continue
		}
		for ni := range g.Nodes() {
			t.rows = append(t.rows, treeRow{group: gi, node: ni})
		}
	}
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// Len returns the number of visible rows.
func (t *TreeModel) Len() int { return len(t.rows) }

// Cursor returns the row under the cursor. node is -1 for a group header;
// ok is false when the tree is empty.
func (t *TreeModel) Cursor() (group, node int, ok bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return 0, 0, false
	}
	r := t.rows[t.cursor]
	return r.group, r.node, true
}

// IsExpanded reports whether group g is expanded.
func (t *TreeModel) IsExpanded(g int) bool { return t.expanded[g] }

// MoveDown moves the cursor down one row.
func (t *TreeModel) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
		t.ensureCursorVisible()
	}
}

// MoveUp moves the cursor up one row.
func (t *TreeModel) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.ensureCursorVisible()
	}
}

// JumpToTop moves the cursor to the first row.
func (t *TreeModel) JumpToTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// JumpToBottom moves the cursor to the last row.
func (t *TreeModel) JumpToBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
	t.ensureCursorVisible()
}

// PageDown moves the cursor forward by a page of rows.
func (t *TreeModel) PageDown() {
	t.cursor += t.visibleCount()
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// PageUp moves the cursor back by a page of rows.
func (t *TreeModel) PageUp() {
	t.cursor -= t.visibleCount()
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// ToggleExpand flips the group under the cursor. Node rows are unaffected.
func (t *TreeModel) ToggleExpand() {
	g, n, ok := t.Cursor()
	if !ok || n >= 0 {
		return
	}
	t.expanded[g] = !t.expanded[g]
	t.rebuildRows()
	t.ensureCursorVisible()
}

// Expand opens the group under the cursor.
func (t *TreeModel) Expand() {
	g, n, ok := t.Cursor()
	if !ok || n >= 0 || t.expanded[g] {
		return
	}
	t.expanded[g] = true
	t.rebuildRows()
}

// Collapse closes the group under the cursor. On a node row it closes the
// parent group and moves the cursor onto its header.
func (t *TreeModel) Collapse() {
	g, _, ok := t.Cursor()
	if !ok || !t.expanded[g] {
		return
	}
	t.expanded[g] = false
	t.rebuildRows()
	for i, r := range t.rows {
		if r.group == g && r.isGroup() {
			t.cursor = i
			break
		}
	}
	t.ensureCursorVisible()
}

func (t *TreeModel) visibleCount() int {
	n := t.height
	if n <= 0 {
		n = 20
	}
	// Reserve a line for the position indicator when scrolling is needed
	if len(t.rows) > n {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (t *TreeModel) ensureCursorVisible() {
	if len(t.rows) == 0 {
		return
	}
	visible := t.visibleCount()
	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+visible {
		t.viewportOffset = t.cursor - visible + 1
	}
	maxOffset := len(t.rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.viewportOffset > maxOffset {
		t.viewportOffset = maxOffset
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

func (t *TreeModel) visibleRange() (start, end int) {
	if len(t.rows) == 0 {
		return 0, 0
	}
	visible := t.visibleCount()
	start = t.viewportOffset
	end = start + visible
	if end > len(t.rows) {
		end = len(t.rows)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// View renders the visible rows. sel marks the row the detail panel is
// showing.
func (t *TreeModel) View(sel selection.Selection) string {
	if len(t.rows) == 0 {
		return t.theme.MutedText.Render("No groups to display.")
	}

	var sb strings.Builder
	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i], isSelected(t.rows[i], sel))
		if i == t.cursor {
			line = t.theme.Cursor.Width(t.lineWidth()).Render(line)
		}
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(t.rows) > t.visibleCount() {
		sb.WriteString("\n")
		sb.WriteString(t.theme.MutedText.Render(
			fmt.Sprintf(" %d-%d of %d", start+1, end, len(t.rows))))
	}
	return sb.String()
}

func isSelected(r treeRow, sel selection.Selection) bool {
	g, ok := sel.Group()
	if !ok || g != r.group {
		return false
	}
	n, nodeFocused := sel.Node()
	if r.isGroup() {
		return !nodeFocused
	}
	return nodeFocused && n == r.node
}

func (t *TreeModel) lineWidth() int {
	if t.width <= 0 {
		return 40
	}
	return t.width
}

func (t *TreeModel) renderRow(r treeRow, selected bool) string {
	width := t.lineWidth()

	marker := "  "
	if selected {
		marker = t.theme.Renderer.NewStyle().Foreground(ThemeFg("#BD93F9")).Render("● ")
	}

	var label string
	var status model.Status
	if r.isGroup() {
		g := t.h[r.group]
		indicator := "▸"
		if t.expanded[r.group] {
			indicator = "▾"
		}
		label = indicator + " " + g.Name()
		status = g.Status()
	} else {
		n := t.h[r.group].Nodes()[r.node]
		branch := "├─"
		if r.node == len(t.h[r.group].Nodes())-1 {
			branch = "└─"
		}
		label = "  " + branch + " " + n.Name()
		status = n.Status()
	}

	statusWidth := len(model.StatusWarning.String())
	labelWidth := width - lipgloss.Width(marker) - statusWidth - 1
	if labelWidth < 1 {
		labelWidth = 1
	}
	name := cell(label, labelWidth)
	if selected {
		name = t.theme.Selected.Render(name)
	}
	return marker + name + " " + t.theme.StatusText(status)
}
