package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/config"
	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/loader"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/selection"
)

const (
	defaultWidth  = 120
	defaultHeight = 40
	defaultSplit  = 0.35
)

// SnapshotMsg carries the result of a background reload.
type SnapshotMsg struct {
	Hierarchy model.Hierarchy
	Err       error
}

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// ReloadCmd asks the producer for a fresh snapshot off the UI goroutine.
func ReloadCmd(p loader.Producer) tea.Cmd {
	return func() tea.Msg {
		defer debug.LogEnterExit("reload")()
		h, err := p.Snapshot()
		return SnapshotMsg{Hierarchy: h, Err: err}
	}
}

// Model is the main Bubble Tea model: the group/node tree on the left and
// the detail panel on the right, driven by a selection controller.
type Model struct {
	ctrl     *selection.Controller
	producer loader.Producer
	source   string
	theme    Theme

	tree         TreeModel
	detail       viewport.Model
	report       ReportModel
	alertOffsets []int // detail line where each filtered group starts

	width      int
	height     int
	splitRatio float64

	showHelp   bool
	showReport bool
	loading    bool

	statusMsg     string
	statusIsError bool
}

// NewModel creates the UI over an already loaded hierarchy. producer is
// used for reloads; source names where the data came from.
func NewModel(h model.Hierarchy, producer loader.Producer, source string, cfg config.UIConfig) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	split := cfg.SplitRatio
	if split <= 0 || split >= 1 {
		split = defaultSplit
	}

	m := Model{
		ctrl: selection.New(h,
			selection.KeepViewModeOnReload(cfg.KeepAlertModeOnReload),
			selection.StartAlertOnly(cfg.StartAlertOnly),
		),
		producer:   producer,
		source:     source,
		theme:      theme,
		tree:       NewTreeModel(theme),
		detail:     viewport.New(defaultWidth/2, defaultHeight-4),
		width:      defaultWidth,
		height:     defaultHeight,
		splitRatio: split,
	}
	m.rebuildTree()
	m.layout()
	return m
}

// Controller exposes the selection controller.
func (m Model) Controller() *selection.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("nv")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case SnapshotMsg:
		m.loading = false
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Reload error: %v", msg.Err), true)
			return m, nil
		}
		m.ctrl.Reload(msg.Hierarchy)
		m.rebuildTree()
		m.refreshDetail()
		if m.showReport {
			m.report = NewReportModel(m.ctrl.FullHierarchy(), m.theme, m.width, m.bodyHeight())
		}
		s := analysis.Summarize(m.ctrl.FullHierarchy())
		m.setStatus(fmt.Sprintf("Reloaded %d groups, %d alerting contents", s.Groups.Total, s.Contents.Alerting()), false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, keys.Help, keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.showReport {
		return m.handleReportKey(msg), nil
	}

	m.statusMsg = ""
	m.statusIsError = false

	switch {
	case key.Matches(msg, keys.Up):
		m.tree.MoveUp()
	case key.Matches(msg, keys.Down):
		m.tree.MoveDown()
	case key.Matches(msg, keys.Top):
		m.tree.JumpToTop()
	case key.Matches(msg, keys.Bottom):
		m.tree.JumpToBottom()
	case key.Matches(msg, keys.PageUp):
		m.tree.PageUp()
	case key.Matches(msg, keys.PageDown):
		m.tree.PageDown()
	case key.Matches(msg, keys.ScrollUp):
		m.detail.LineUp(1)
	case key.Matches(msg, keys.ScrollDn):
		m.detail.LineDown(1)
	case key.Matches(msg, keys.Expand):
		m.tree.Expand()
	case key.Matches(msg, keys.Collapse):
		m.tree.Collapse()
	case key.Matches(msg, keys.Select):
		m.selectCursor()
	case key.Matches(msg, keys.Filter):
		m.ctrl.ToggleFilter()
		m.rebuildTree()
		m.refreshDetail()
		if m.ctrl.AlertOnly() {
			m.setStatus("Showing alerting entries only", false)
		} else {
			m.setStatus("Showing all entries", false)
		}
	case key.Matches(msg, keys.Reload):
		if m.producer == nil {
			m.setStatus("Reload unavailable", true)
			return m, nil
		}
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, ReloadCmd(m.producer)
	case key.Matches(msg, keys.Report):
		m.report = NewReportModel(m.ctrl.FullHierarchy(), m.theme, m.width, m.bodyHeight())
		m.showReport = true
	case key.Matches(msg, keys.Copy):
		m.copySelection()
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Escape):
		m.ctrl.Clear()
		m.refreshDetail()
	}
	return m, nil
}

func (m Model) handleReportKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, keys.Escape, keys.Report):
		m.showReport = false
	case key.Matches(msg, keys.Down):
		m.report.ScrollDown(1)
	case key.Matches(msg, keys.Up):
		m.report.ScrollUp(1)
	case key.Matches(msg, keys.PageDown):
		m.report.ScrollDown(m.bodyHeight() / 2)
	case key.Matches(msg, keys.PageUp):
		m.report.ScrollUp(m.bodyHeight() / 2)
	}
	return m
}

// selectCursor focuses the row under the tree cursor. A group header also
// toggles its expansion.
func (m *Model) selectCursor() {
	g, n, ok := m.tree.Cursor()
	if !ok {
		return
	}
	if n < 0 {
		m.ctrl.SelectGroup(g)
		m.tree.ToggleExpand()
	} else {
		m.ctrl.SelectNode(g, n)
	}
	m.refreshDetail()
}

func (m *Model) copySelection() {
	text, ok := selectionText(m.ctrl.Resolve())
	if !ok {
		m.setStatus("Nothing selected to copy", true)
		return
	}
	if err := clipboardWriteAll(text); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", m.ctrl.CurrentSelection()), false)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

func (m *Model) rebuildTree() {
	m.tree.Build(m.ctrl.CurrentHierarchy(), m.ctrl.AlertOnly())
}

// refreshDetail re-renders the detail panel from the controller. In alert
// mode the panel lists every alert and scrolls to the selected group.
func (m *Model) refreshDetail() {
	if m.ctrl.AlertOnly() {
		content, offsets := renderAlertTable(m.ctrl.CurrentHierarchy(), m.theme, m.detail.Width)
		m.alertOffsets = offsets
		m.detail.SetContent(content)
		if g, ok := m.ctrl.CurrentSelection().Group(); ok && g < len(offsets) {
			m.detail.SetYOffset(offsets[g])
		} else {
			m.detail.GotoTop()
		}
		return
	}
	m.alertOffsets = nil
	m.detail.SetContent(renderResolved(m.ctrl.Resolve(), m.theme, m.detail.Width))
	m.detail.GotoTop()
}

// bodyHeight is the space between the header and footer lines.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) layout() {
	inner := m.bodyHeight() - 2 // panel borders

	treeInner := int(float64(m.width)*m.splitRatio) - 2
	if treeInner < 16 {
		treeInner = 16
	}
	detailInner := m.width - treeInner - 4
	if detailInner < 16 {
		detailInner = 16
	}

	m.tree.SetSize(treeInner, inner)
	m.detail.Width = detailInner
	m.detail.Height = inner
	if m.showReport {
		m.report.SetSize(m.width, m.bodyHeight())
	}
	m.refreshDetail()
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelpOverlay()
	case m.showReport:
		body = m.report.View()
	default:
		body = m.renderSplitView()
	}

	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter()))
}

func (m Model) renderSplitView() string {
	panelHeight := m.bodyHeight()

	treeView := FocusedPanelStyle.
		Width(m.tree.width).
		Height(panelHeight - 2).
		MaxHeight(panelHeight).
		Render(m.tree.View(m.ctrl.CurrentSelection()))

	detailView := PanelStyle.
		Width(m.detail.Width).
		Height(panelHeight - 2).
		MaxHeight(panelHeight).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, treeView, detailView)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(" nv ")
	mode := m.theme.Header.Render("ALL")
	if m.ctrl.AlertOnly() {
		mode = m.theme.Header.Render("ALERTS ONLY")
	}
	overall := RenderStatusBadge(m.ctrl.FullHierarchy().Status())
	source := m.theme.MutedText.Render(" " + m.source)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, mode, " ", overall, source)
}

func (m Model) renderFooter() string {
	if m.loading {
		return m.theme.MutedText.Render(" Reloading…")
	}

	if m.statusMsg != "" {
		var msgStyle lipgloss.Style
		if m.statusIsError {
			msgStyle = lipgloss.NewStyle().
				Background(ColorStatusNgBg).
				Foreground(ColorDanger).
				Bold(true).
				Padding(0, 2)
		} else {
			msgStyle = lipgloss.NewStyle().
				Background(ColorStatusOkBg).
				Foreground(ColorSuccess).
				Bold(true).
				Padding(0, 2)
		}
		prefix := "✓ "
		if m.statusIsError {
			prefix = "✗ "
		}
		return msgStyle.Render(prefix + m.statusMsg)
	}

	s := analysis.Summarize(m.ctrl.FullHierarchy())
	counts := fmt.Sprintf(" %s %d groups · %d nodes · %d contents · %d alerts ",
		GetStatusIcon(s.Overall), s.Groups.Total, s.Nodes.Total, s.Contents.Total, s.Contents.Alerting())

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle := lipgloss.NewStyle().Foreground(ColorText)
	var hints []string
	for _, b := range keys.shortHelp() {
		h := b.Help()
		hints = append(hints, keyStyle.Render(h.Key)+" "+labelStyle.Render(h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(counts + strings.Join(hints, "  "))
}

func (m Model) renderHelpOverlay() string {
	colStyle := lipgloss.NewStyle().Padding(0, 2)
	keyStyle := m.theme.Title
	var cols []string
	for _, group := range keys.fullHelp() {
		var lines []string
		for _, b := range group {
			h := b.Help()
			lines = append(lines, keyStyle.Render(padRight(h.Key, 8))+" "+h.Desc)
		}
		cols = append(cols, colStyle.Render(strings.Join(lines, "\n")))
	}
	title := m.theme.Title.Render("Keyboard shortcuts") + "\n\n"
	box := FocusedPanelStyle.Padding(1, 2).Render(title + lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}
