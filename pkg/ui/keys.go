package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Select   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Filter   key.Binding
	Reload   key.Binding
	Report   key.Binding
	Copy     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "page up")),
	PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "page down")),
	ScrollUp: key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "scroll detail up")),
	ScrollDn: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "scroll detail down")),
	Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Expand:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "expand")),
	Collapse: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "collapse")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "alerts only")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Report:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "alert report")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// shortHelp is the footer hint list.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Select, k.Filter, k.Reload, k.Report, k.Copy, k.Help, k.Quit}
}

// fullHelp is the help overlay, grouped by column.
func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Select, k.Expand, k.Collapse, k.ScrollUp, k.ScrollDn},
		{k.Filter, k.Reload, k.Report, k.Copy},
		{k.Help, k.Escape, k.Quit},
	}
}
