package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "↓/j", "Enter")
	Desc string // Short description (e.g., "skip", "overwrite")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, "  ")
}

// organizeHints returns the hint bar for the main navigation mode.
func (a App) organizeHints() []Hint {
	return []Hint{
		{Key: "←/→", Desc: "navigate"},
		{Key: "↓", Desc: "keep here"},
		{Key: "↑", Desc: "add shortcut"},
		{Key: "Y", Desc: "copy path"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// collisionHints returns the hints for the collision modal.
func (a App) collisionHints() []Hint {
	if a.collision.Renaming {
		return []Hint{
			{Key: "Enter", Desc: "move"},
			{Key: "Esc", Desc: "back"},
		}
	}
	return []Hint{
		{Key: "o", Desc: "overwrite"},
		{Key: "r", Desc: "rename"},
		{Key: "c", Desc: "cancel"},
	}
}

// defineHints returns the hints for the define modal.
func (a App) defineHints() []Hint {
	if a.define.Conflict != nil {
		return []Hint{
			{Key: "y", Desc: "replace"},
			{Key: "n", Desc: "keep"},
		}
	}
	return []Hint{
		{Key: "Enter", Desc: "confirm"},
		{Key: "Tab", Desc: "next field"},
		{Key: "Esc", Desc: "done"},
	}
}
