package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	targetWidth := maxWidth - suffixWidth
	return runewidth.Truncate(s, targetWidth, "") + suffix
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// cell truncates then pads s so table columns line up.
func cell(s string, width int) string {
	return padRight(truncateRunesHelper(s, width, "…"), width)
}

// GetStatusIcon returns a colored icon for a status
func GetStatusIcon(s model.Status) string {
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
