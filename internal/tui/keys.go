package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds every binding the notes view understands.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	ArrowUp      key.Binding
	ArrowDown    key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Submit       key.Binding
	Cancel       key.Binding
	Next         key.Binding
	Prev         key.Binding
	ToggleCreate key.Binding
	Refresh      key.Binding
	Copy         key.Binding
	Web          key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding

	Confirm key.Binding
	Decline key.Binding
	Dismiss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous note")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next note")),
		ArrowUp:      key.NewBinding(key.WithKeys("up")),
		ArrowDown:    key.NewBinding(key.WithKeys("down")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit note")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete note")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save form")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit / close form")),
		Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		ToggleCreate: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload notes")),
		Copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy note")),
		Web:          key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "open web app")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y")),
		Decline: key.NewBinding(key.WithKeys("n", "N", "esc")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc")),
	}
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.ToggleCreate, k.Edit, k.Delete, k.Submit, k.Cancel,
		k.Next, k.Prev, k.Refresh, k.Copy, k.Web, k.Help, k.Quit,
	}
}

// noteAction is something the user can do to the note list.
type noteAction int

const (
	actionNone noteAction = iota
	actionUp
	actionDown
	actionEdit
	actionCancel
	actionDelete
	actionSubmitEdit
	actionNextField
	actionPrevField
	actionToggleCreate
	actionRefresh
	actionCopy
)

var actionNames = map[noteAction]string{
	actionUp:           "up",
	actionDown:         "down",
	actionEdit:         "edit",
	actionCancel:       "cancel",
	actionDelete:       "delete",
	actionSubmitEdit:   "submit-edit",
	actionNextField:    "next-field",
	actionPrevField:    "prev-field",
	actionToggleCreate: "toggle-create",
	actionRefresh:      "refresh",
	actionCopy:         "copy",
}

func (a noteAction) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "none"
}

// noteActions is the dispatch table for list actions. Handlers must not
// call back into notesModel.Update.
var noteActions = map[noteAction]func(notesModel) (notesModel, tea.Cmd){
	actionUp:           notesModel.moveUp,
	actionDown:         notesModel.moveDown,
	actionEdit:         notesModel.startEdit,
	actionCancel:       notesModel.cancelEdit,
	actionDelete:       notesModel.askDelete,
	actionSubmitEdit:   notesModel.submitEdit,
	actionNextField:    notesModel.nextField,
	actionPrevField:    notesModel.prevField,
	actionToggleCreate: notesModel.toggleCreate,
	actionRefresh:      notesModel.refresh,
	actionCopy:         notesModel.copySelected,
}

// resolve maps a key press on the list to an action. While the selected
// note is being edited only form keys and the arrows are actions; every
// other key belongs to the focused field.
func (k keyMap) resolve(msg tea.KeyMsg, editing bool) noteAction {
	if editing {
		switch {
		case key.Matches(msg, k.Submit):
			return actionSubmitEdit
		case key.Matches(msg, k.Cancel):
			return actionCancel
		case key.Matches(msg, k.Next):
			return actionNextField
		case key.Matches(msg, k.Prev):
			return actionPrevField
		case key.Matches(msg, k.ArrowUp):
			return actionUp
		case key.Matches(msg, k.ArrowDown):
			return actionDown
		}
		return actionNone
	}

	switch {
	case key.Matches(msg, k.Up):
		return actionUp
	case key.Matches(msg, k.Down):
		return actionDown
	case key.Matches(msg, k.Edit):
		return actionEdit
	case key.Matches(msg, k.Delete):
		return actionDelete
	case key.Matches(msg, k.ToggleCreate):
		return actionToggleCreate
	case key.Matches(msg, k.Refresh):
		return actionRefresh
	case key.Matches(msg, k.Copy):
		return actionCopy
	}
	return actionNone
}
