package ux

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs used in task listings.
const (
	GlyphPass    = "✓"
	GlyphPending = "○"
)

// Styles groups the lipgloss styles used by text output.
type Styles struct {
	Title   lipgloss.Style
	Current lipgloss.Style
	Success lipgloss.Style
	Pending lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Code    lipgloss.Style
}

// NewStyles returns the default styles, or unstyled ones when noColor is set.
func NewStyles(noColor bool) Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Current: plain, Success: plain, Pending: plain,
			Error: plain, Warning: plain, Muted: plain, Code: plain,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Current: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")), // Green
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Code: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")),
	}
}

// Glyph returns the styled pass/pending marker.
func (s Styles) Glyph(passed bool) string {
	if passed {
		return s.Success.Render(GlyphPass)
	}
	return s.Pending.Render(GlyphPending)
}

// Truncate shortens text to max runes, ending with "..." when cut.
func Truncate(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
