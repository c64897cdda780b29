package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Status
	Ok      lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Ng      lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Header    lipgloss.Style
	MutedText lipgloss.Style
	Title     lipgloss.Style
}

// DefaultTheme returns the Dracula-inspired adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Subtext:   ColorSubtext,

		Ok:      ColorSuccess,
		Warning: ColorWarning,
		Ng:      ColorDanger,

		Border:    ColorBgHighlight,
		Highlight: ColorBgHighlight,
		Muted:     ColorMuted,
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Cursor = r.NewStyle().
		Background(t.Highlight).
		Bold(true)

	t.Selected = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)

	return t
}

// StatusColor maps a status to its display color: Ok green, Warning orange,
// Ng red.
func (t Theme) StatusColor(s model.Status) lipgloss.AdaptiveColor {
	switch s {
	case model.StatusOk:
		return t.Ok
	case model.StatusWarning:
		return t.Warning
	case model.StatusNg:
		return t.Ng
	default:
		return t.Subtext
	}
}

// StatusText renders a status name in its color.
func (t Theme) StatusText(s model.Status) string {
	return t.Renderer.NewStyle().Foreground(t.StatusColor(s)).Render(s.String())
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
