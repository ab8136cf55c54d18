package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App         lipgloss.Style
	Title       lipgloss.Style
	Item        lipgloss.Style
	ItemCurrent lipgloss.Style
	Moved       lipgloss.Style
	Skipped     lipgloss.Style
	Deferred    lipgloss.Style
	Pending     lipgloss.Style
	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	Message     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	HintKey     lipgloss.Style
	HintDesc    lipgloss.Style
	Shortcut    lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	warn := lipgloss.AdaptiveColor{Light: "#8A6D3B", Dark: "#B8965A"}
	bad := lipgloss.AdaptiveColor{Light: "#984442", Dark: "#BC6F6D"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemCurrent: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Moved: lipgloss.NewStyle().
			Foreground(accent),

		Skipped: lipgloss.NewStyle().
			Foreground(subtle),

		Deferred: lipgloss.NewStyle().
			Foreground(warn),

		Pending: lipgloss.NewStyle().
			Foreground(primary),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Message: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(bad),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Shortcut: lipgloss.NewStyle().
			Foreground(accent),
	}
}
