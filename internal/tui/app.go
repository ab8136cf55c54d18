// Package tui drives the interactive organizing session: one keystroke at a
// time over a queue of files, with sub-modes for defining shortcuts and
// resolving move collisions.
package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"declutter/internal/history"
	"declutter/internal/model"
	"declutter/internal/mover"
	"declutter/internal/pathutil"
)

// mode identifies which sub-state owns key dispatch.
type mode int

const (
	modeOrganize mode = iota
	modeDefine
	modeCollision
	modeHelp
)

// App is the bubbletea model for an organizing session. It owns the queue
// and cursor; the registry and history record outlive it and are handed back
// to the caller when the session ends.
type App struct {
	queue    *model.Queue
	registry *model.Registry
	record   *history.Record
	persist  func(*history.Record) error

	keys   KeyMap
	styles Styles

	mode      mode
	define    DefineState
	collision CollisionState

	// Transient status line under the list.
	message  string
	msgIsErr bool

	// First history save failure, reported once in the summary. Completed
	// moves are never rolled back over it.
	persistErr error

	finished bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Queue    *model.Queue
	Registry *model.Registry
	Record   *history.Record
	// Persist is called after every move or skip so an interrupt loses at
	// most the decision in flight. Nil disables saving.
	Persist func(*history.Record) error
	Keys    *KeyMap // optional, uses default if nil
	Styles  *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	app := App{
		queue:    params.Queue,
		registry: params.Registry,
		record:   params.Record,
		persist:  params.Persist,
		keys:     keys,
		styles:   styles,
		width:    80,
		height:   24,
	}

	// No shortcuts yet means nothing can be moved; open the setup flow.
	if app.registry.Len() == 0 {
		app.define = NewDefineState()
		app.define.KeyInput.Focus()
		app.mode = modeDefine
		app.message = "define at least one shortcut to start organizing"
	}

	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.queue.Cursor()
}

// Items returns the queue items with their current statuses.
func (a App) Items() []model.Item {
	return a.queue.Items()
}

// Record returns the history record accumulated so far.
func (a App) Record() *history.Record {
	return a.record
}

// Registry returns the shortcut registry.
func (a App) Registry() *model.Registry {
	return a.registry
}

// PersistErr returns the first incremental save failure, if any.
func (a App) PersistErr() error {
	return a.persistErr
}

// Finished reports whether the session reached a normal end.
func (a App) Finished() bool {
	return a.finished
}

// Defining reports whether the add-shortcut sub-mode is active.
func (a App) Defining() bool {
	return a.mode == modeDefine
}

// ResolvingCollision reports whether the collision sub-mode is active.
func (a App) ResolvingCollision() bool {
	return a.mode == modeCollision
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Ctrl+C ends the session from any sub-mode; incremental saves
		// already covered everything decided so far.
		if msg.Type == tea.KeyCtrlC {
			a.finished = true
			return a, tea.Quit
		}

		switch a.mode {
		case modeHelp:
			a.mode = modeOrganize
			return a, nil
		case modeDefine:
			return a.updateDefine(msg)
		case modeCollision:
			return a.updateCollision(msg)
		default:
			return a.updateOrganize(msg)
		}
	}

	return a, nil
}

// updateOrganize handles one key event in the main navigation mode.
func (a App) updateOrganize(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.message = ""
	a.msgIsErr = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.finished = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp

	case key.Matches(msg, a.keys.Prev):
		a.queue.Prev()

	case key.Matches(msg, a.keys.Next):
		// Advancing past the last item ends the session.
		if !a.queue.Next() {
			a.finished = true
			return a, tea.Quit
		}

	case key.Matches(msg, a.keys.Skip):
		return a.skipCurrent()

	case key.Matches(msg, a.keys.Define):
		a.define = NewDefineState()
		a.define.KeyInput.Focus()
		a.mode = modeDefine

	case key.Matches(msg, a.keys.Yank):
		if cur := a.queue.Current(); cur != nil {
			if err := clipboard.WriteAll(cur.Path); err != nil {
				a.message = "clipboard unavailable: " + err.Error()
				a.msgIsErr = true
			} else {
				a.message = "path copied"
			}
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			return a.applyShortcut(string(msg.Runes))
		}
	}

	return a, nil
}

// skipCurrent marks the current item skipped, remembers its location, and
// advances. Repeating a skip on the same item is idempotent in the record.
func (a App) skipCurrent() (tea.Model, tea.Cmd) {
	cur := a.queue.Current()
	if cur == nil {
		a.finished = true
		return a, tea.Quit
	}

	a.queue.MarkSkipped()
	if err := a.record.MarkOrganized(cur.Path); err != nil {
		a.message = "could not record path: " + err.Error()
		a.msgIsErr = true
	} else {
		a = a.persistNow()
	}

	if !a.queue.Next() {
		a.finished = true
		return a, tea.Quit
	}
	return a, nil
}

// applyShortcut resolves a printable key through the registry and moves the
// current item. Unknown keys re-prompt and never change item status.
func (a App) applyShortcut(keyStr string) (tea.Model, tea.Cmd) {
	cur := a.queue.Current()
	if cur == nil {
		return a, nil
	}

	dest, ok := a.registry.Lookup(keyStr)
	if !ok {
		a.message = fmt.Sprintf("no shortcut %q — press ↑ to define it", keyStr)
		return a, nil
	}

	newPath, err := mover.Move(cur.Path, dest)
	var collision *mover.CollisionError
	if errors.As(err, &collision) {
		a.collision = NewCollisionState(cur.Path, collision.Target, dest)
		a.mode = modeCollision
		return a, nil
	}
	if err != nil {
		a.queue.MarkDeferred(err.Error())
		a.message = err.Error()
		a.msgIsErr = true
		return a, nil
	}

	return a.completeMove(newPath, dest)
}

// completeMove finishes a successful move: label the item, remember the new
// location, persist, advance.
func (a App) completeMove(newPath, dest string) (tea.Model, tea.Cmd) {
	a.queue.MarkMoved(newPath, dest)
	if err := a.record.MarkOrganized(newPath); err != nil {
		a.message = "could not record path: " + err.Error()
		a.msgIsErr = true
	} else {
		a = a.persistNow()
	}
	a.mode = modeOrganize
	a.message = "moved to " + pathutil.CollapseHome(newPath)

	if !a.queue.Next() {
		a.finished = true
		return a, tea.Quit
	}
	return a, nil
}

// updateDefine handles the add-shortcut sub-mode. The queue cursor and item
// statuses are untouched throughout.
func (a App) updateDefine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A conflicting key waits for explicit confirmation.
	if a.define.Conflict != nil {
		switch msg.String() {
		case "y", "Y":
			conflict := a.define.Conflict
			if err := a.registry.DefineForce(conflict.Key, a.define.PendingDest); err != nil {
				a.define.Err = err
				a.define.Conflict = nil
				return a, nil
			}
			a = a.recordShortcut(conflict.Key)
			a.define.Added++
			a.define.Reset()
			a.define.KeyInput.Focus()
		case "n", "N", "esc":
			// Old mapping retained; let the user adjust the inputs.
			a.define.Conflict = nil
			a.define.PendingDest = ""
		}
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return a.leaveDefine()

	case tea.KeyTab:
		if a.define.Focus == focusKey {
			a.focusDest()
		} else if len(a.define.Suggestions) > 0 {
			a.define.DestInput.SetValue(a.define.Suggestions[0])
			a.define.DestInput.CursorEnd()
			a.define.Suggestions = nil
		}
		return a, nil

	case tea.KeyEnter:
		if a.define.Focus == focusKey {
			// An empty key ends the setup flow.
			if a.define.KeyInput.Value() == "" {
				return a.leaveDefine()
			}
			a.focusDest()
			return a, nil
		}
		return a.submitDefinition()
	}

	// Everything else edits the focused input.
	var cmd tea.Cmd
	if a.define.Focus == focusKey {
		a.define.KeyInput, cmd = a.define.KeyInput.Update(msg)
	} else {
		a.define.DestInput, cmd = a.define.DestInput.Update(msg)
		a.define.Suggestions = a.suggestDestinations(a.define.DestInput.Value())
	}
	a.define.Err = nil
	return a, cmd
}

func (a *App) focusDest() {
	a.define.Focus = focusDestination
	a.define.KeyInput.Blur()
	a.define.DestInput.Focus()
}

// submitDefinition validates and registers the entered pair. Failures block
// only this definition; the user can retry.
func (a App) submitDefinition() (tea.Model, tea.Cmd) {
	keyStr := a.define.KeyInput.Value()
	dest := a.define.DestInput.Value()

	if dest == "" {
		a.define.Err = errors.New("enter a destination directory")
		return a, nil
	}
	if err := model.Validate(dest); err != nil {
		a.define.Err = err
		return a, nil
	}

	err := a.registry.Define(keyStr, dest)
	var conflict *model.ConflictError
	switch {
	case errors.As(err, &conflict):
		a.define.Conflict = conflict
		a.define.PendingDest = dest
	case err != nil:
		a.define.Err = err
	default:
		a = a.recordShortcut(keyStr)
		a.define.Added++
		a.define.Reset()
		a.define.KeyInput.Focus()
	}
	return a, nil
}

// recordShortcut mirrors a registry entry into the history record and
// persists it, so defined shortcuts survive even an interrupted session.
func (a App) recordShortcut(keyStr string) App {
	if dest, ok := a.registry.Lookup(keyStr); ok {
		a.record.SetShortcut(model.Shortcut{Key: keyStr, Destination: dest})
		a = a.persistNow()
	}
	return a
}

func (a App) leaveDefine() (tea.Model, tea.Cmd) {
	added := a.define.Added
	a.mode = modeOrganize
	switch {
	case added > 0:
		a.message = fmt.Sprintf("added %d shortcut(s)", added)
	case a.registry.Len() == 0:
		a.message = "no shortcuts defined — only skip and navigation keys will work"
		a.msgIsErr = true
	default:
		a.message = ""
	}
	return a, nil
}

// suggestDestinations fuzzy-matches the typed prefix against destinations
// already known from the registry and history.
func (a App) suggestDestinations(query string) []string {
	if query == "" {
		return nil
	}

	seen := make(map[string]bool)
	var known []string
	for _, s := range a.registry.Entries() {
		display := pathutil.CollapseHome(s.Destination)
		if !seen[display] {
			seen[display] = true
			known = append(known, display)
		}
	}
	for _, s := range a.record.Shortcuts {
		display := pathutil.CollapseHome(s.Destination)
		if !seen[display] {
			seen[display] = true
			known = append(known, display)
		}
	}

	matches := fuzzy.Find(query, known)
	const maxSuggestions = 5
	out := make([]string, 0, maxSuggestions)
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// updateCollision handles the overwrite / rename / cancel decision for a
// move that found its target occupied.
func (a App) updateCollision(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.collision.Renaming {
		switch msg.Type {
		case tea.KeyEsc:
			a.collision.Renaming = false
			a.collision.Err = nil
			return a, nil
		case tea.KeyEnter:
			name := a.collision.RenameInput.Value()
			if name == "" {
				a.collision.Err = errors.New("enter a file name")
				return a, nil
			}
			return a.moveResolved(filepath.Join(a.collision.DestDir, name), false)
		}
		var cmd tea.Cmd
		a.collision.RenameInput, cmd = a.collision.RenameInput.Update(msg)
		a.collision.Err = nil
		return a, cmd
	}

	switch msg.String() {
	case "o", "y":
		return a.moveResolved(a.collision.Target, true)
	case "r":
		a.collision.Renaming = true
		a.collision.RenameInput.Focus()
	case "n", "c", "esc":
		// Cancelled: the move did not happen, so the item defers for a
		// later pass instead of advancing.
		a.queue.MarkDeferred("destination exists: " + a.collision.Target)
		a.mode = modeOrganize
		a.message = "move cancelled"
	}
	return a, nil
}

// moveResolved retries the move at the user's chosen target.
func (a App) moveResolved(target string, overwrite bool) (tea.Model, tea.Cmd) {
	newPath, err := mover.MoveTo(a.collision.Source, target, overwrite)
	var collision *mover.CollisionError
	if errors.As(err, &collision) {
		// The chosen name is occupied too; stay in the modal.
		a.collision.Target = collision.Target
		a.collision.Err = err
		return a, nil
	}
	if err != nil {
		a.queue.MarkDeferred(err.Error())
		a.mode = modeOrganize
		a.message = err.Error()
		a.msgIsErr = true
		return a, nil
	}
	return a.completeMove(newPath, a.collision.DestDir)
}

// persistNow flushes the record through the persist callback. Failures are
// remembered once and surfaced; they never abort the session.
func (a App) persistNow() App {
	if a.persist == nil {
		return a
	}
	if err := a.persist(a.record); err != nil {
		if a.persistErr == nil {
			a.persistErr = err
		}
		a.message = "history save failed: " + err.Error()
		a.msgIsErr = true
	}
	return a
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
