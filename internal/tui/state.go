package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"declutter/internal/model"
)

// defineFocus tracks which input owns keystrokes in the define modal.
type defineFocus int

const (
	focusKey defineFocus = iota
	focusDestination
)

// DefineState holds state for the add-shortcut sub-mode. Normal key
// dispatch is suspended while it is active.
type DefineState struct {
	KeyInput    textinput.Model
	DestInput   textinput.Model
	Focus       defineFocus
	Suggestions []string // fuzzy matches against known destinations
	Err         error    // last rejected definition, shown inline
	// Conflict is set when the entered key already maps elsewhere; the
	// definition waits for an explicit y/n before overwriting.
	Conflict *model.ConflictError
	// PendingDest carries the destination that raised the conflict.
	PendingDest string
	// Added counts definitions made in this visit, for the done message.
	Added int
}

// NewDefineState creates a DefineState with initialized inputs.
func NewDefineState() DefineState {
	keyInput := textinput.New()
	keyInput.Placeholder = "key"
	keyInput.CharLimit = 1
	keyInput.Width = 4

	destInput := textinput.New()
	destInput.Placeholder = "~/Downloads"
	destInput.CharLimit = 256
	destInput.Width = 40

	return DefineState{
		KeyInput:  keyInput,
		DestInput: destInput,
	}
}

// Reset clears the define state for a new definition, keeping the count.
func (d *DefineState) Reset() {
	d.KeyInput.Reset()
	d.DestInput.Reset()
	d.Focus = focusKey
	d.Suggestions = nil
	d.Err = nil
	d.Conflict = nil
	d.PendingDest = ""
}

// CollisionState holds state for the overwrite-confirmation sub-mode.
type CollisionState struct {
	Source      string // file being moved
	Target      string // occupied destination path
	DestDir     string // destination directory, for renames
	RenameInput textinput.Model
	Renaming    bool // rename input active
	Err         error
}

// NewCollisionState creates a CollisionState for a refused move.
func NewCollisionState(source, target, destDir string) CollisionState {
	input := textinput.New()
	input.Placeholder = "new-name.txt"
	input.CharLimit = 256
	input.Width = 40

	return CollisionState{
		Source:      source,
		Target:      target,
		DestDir:     destDir,
		RenameInput: input,
	}
}
