package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"declutter/internal/model"
	"declutter/internal/pathutil"
)

func (a App) renderView() string {
	switch a.mode {
	case modeDefine:
		return a.styles.App.Render(a.renderDefineModal())
	case modeCollision:
		return a.styles.App.Render(a.renderCollisionModal())
	case modeHelp:
		return a.styles.App.Render(a.renderHelpOverlay())
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(a.renderQueue())
	b.WriteString("\n")
	b.WriteString(a.renderMessageLine())
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.organizeHints())))

	return a.styles.App.Render(b.String())
}

func (a App) renderHeader() string {
	items := a.queue.Items()
	decided := 0
	for _, it := range items {
		if it.Status != model.StatusPending {
			decided++
		}
	}

	title := a.styles.Title.Render("declutter")
	progress := a.styles.Message.Render(
		fmt.Sprintf("file %d of %d · %d decided", a.queue.Cursor()+1, len(items), decided),
	)
	shortcuts := a.renderShortcutBar()

	header := title + "  " + progress
	if shortcuts != "" {
		header += "\n" + shortcuts
	}
	return header
}

// renderShortcutBar shows the registered shortcuts in one line.
func (a App) renderShortcutBar() string {
	entries := a.registry.Entries()
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, len(entries))
	for i, s := range entries {
		parts[i] = a.styles.Shortcut.Render(s.Key) +
			a.styles.Message.Render("→"+pathutil.CollapseHome(s.Destination))
	}
	return strings.Join(parts, "  ")
}

// renderQueue shows a window of items around the cursor.
func (a App) renderQueue() string {
	items := a.queue.Items()
	if len(items) == 0 {
		return a.styles.Message.Render("nothing to organize")
	}

	// Window the list so the cursor stays visible on small terminals.
	visible := a.height - 10
	if visible < 3 {
		visible = 3
	}
	start := 0
	if a.queue.Cursor() >= visible {
		start = a.queue.Cursor() - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderItem(items[i], i == a.queue.Cursor()))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderItem(it model.Item, isCursor bool) string {
	label := pathutil.CollapseHome(it.Path)

	var status string
	switch it.Status {
	case model.StatusMoved:
		status = a.styles.Moved.Render("✓ moved → " + pathutil.CollapseHome(it.Destination))
	case model.StatusSkipped:
		if it.Preorganized {
			status = a.styles.Skipped.Render("· already organized")
		} else {
			status = a.styles.Skipped.Render("· kept here")
		}
	case model.StatusDeferred:
		status = a.styles.Deferred.Render("! deferred: " + it.Reason)
	default:
		status = a.styles.Pending.Render("…")
	}

	line := label + "  " + status
	if isCursor {
		return a.styles.ItemCurrent.Render("▸ " + line)
	}
	return a.styles.Item.Render("  " + line)
}

func (a App) renderMessageLine() string {
	if a.message == "" {
		return ""
	}
	if a.msgIsErr {
		return a.styles.Error.Render(a.message)
	}
	return a.styles.Message.Render(a.message)
}

func (a App) renderDefineModal() string {
	var b strings.Builder

	b.WriteString(a.styles.ModalTitle.Render("Add shortcut"))
	b.WriteString("\n\n")
	b.WriteString("key:         " + a.define.KeyInput.View() + "\n")
	b.WriteString("destination: " + a.define.DestInput.View() + "\n")

	if len(a.define.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range a.define.Suggestions {
			b.WriteString(a.styles.Message.Render("  "+s) + "\n")
		}
	}

	if a.define.Conflict != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(fmt.Sprintf(
			"%q already maps to %s — replace it? (y/n)",
			a.define.Conflict.Key,
			pathutil.CollapseHome(a.define.Conflict.Previous),
		)))
		b.WriteString("\n")
	} else if a.define.Err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.define.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints(a.defineHints()))
	if a.message != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Message.Render(a.message))
	}

	return a.styles.Modal.Render(b.String())
}

func (a App) renderCollisionModal() string {
	var b strings.Builder

	b.WriteString(a.styles.ModalTitle.Render("Destination occupied"))
	b.WriteString("\n\n")
	b.WriteString(pathutil.CollapseHome(a.collision.Target) + " already exists.\n")

	if a.collision.Renaming {
		b.WriteString("\nnew name: " + a.collision.RenameInput.View() + "\n")
	}

	if a.collision.Err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.collision.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints(a.collisionHints()))

	return a.styles.Modal.Render(b.String())
}

func (a App) renderHelpOverlay() string {
	rows := []struct {
		key  string
		desc string
	}{
		{"<shortcut>", "move current file to that destination"},
		{"→ / l", "next file (past the last one ends the session)"},
		{"← / h", "previous file (revisit and change a decision)"},
		{"↓ / j", "keep the file where it is and remember it"},
		{"↑ / k", "pause to add shortcuts"},
		{"Y", "copy current path to the clipboard"},
		{"?", "this help"},
		{"q", "quit (history is saved)"},
	}

	var b strings.Builder
	b.WriteString(a.styles.ModalTitle.Render("Keys"))
	b.WriteString("\n\n")
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.key))
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-*s  %s\n", width, r.key, a.styles.Message.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Message.Render("press any key to close"))

	return a.styles.Modal.Render(b.String())
}
