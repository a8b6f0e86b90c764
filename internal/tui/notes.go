package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/pkg/client"
	"github.com/naveenspark/notas/pkg/domain"
)

// noteMode is the per-note state: shown read-only or open for editing.
type noteMode int

const (
	modeDisplay noteMode = iota
	modeEditing
)

// noteItem is one rendered display/edit pair.
type noteItem struct {
	view    noteView
	mode    noteMode
	form    noteForm
	pending bool
}

// newNoteItems builds one pair per view, every pair in display mode with
// its edit fields pre-filled.
func newNoteItems(views []noteView, cat catalog) []noteItem {
	items := make([]noteItem, len(views))
	for i, v := range views {
		f := newNoteForm(v.input(), cat)
		f.Blur()
		items[i] = noteItem{view: v, mode: modeDisplay, form: f}
	}
	return items
}

type notesModel struct {
	api     NotesAPI
	session *domain.Session
	cat     catalog
	log     zerolog.Logger
	keys    keyMap

	items  []noteItem
	cursor int
	status listStatus

	createOpen bool
	create     noteForm
	creating   bool
	formMsg    string
	flash      string

	alert   alertModel
	confirm confirmModel

	width  int
	height int
}

func newNotesModel(api NotesAPI, cat catalog, log zerolog.Logger) notesModel {
	create := newNoteForm(domain.NoteInput{}, cat)
	create.Blur()
	return notesModel{
		api:    api,
		cat:    cat,
		log:    log,
		keys:   defaultKeyMap(),
		status: listLoading,
		create: create,
	}
}

func (m notesModel) withSession(sess *domain.Session) notesModel {
	m.session = sess
	return m
}

func (m notesModel) Init() tea.Cmd {
	return m.listNotes()
}

// listNotes fetches the full list. Without a session nothing is sent.
func (m notesModel) listNotes() tea.Cmd {
	if !m.session.Valid() {
		m.log.Error().Msg("list notes: not logged in")
		return nil
	}
	return listNotesCmd(m.api, m.session)
}

// capturesKeys reports whether keys belong to a form or overlay, so the
// app must not treat them as global shortcuts.
func (m notesModel) capturesKeys() bool {
	return m.alert.active() || m.confirm.active || m.createOpen || m.selectedEditing()
}

func (m notesModel) hasSelection() bool {
	return m.cursor >= 0 && m.cursor < len(m.items)
}

func (m notesModel) selectedEditing() bool {
	return m.hasSelection() && m.items[m.cursor].mode == modeEditing
}

func (m notesModel) indexOf(id int) int {
	for i, it := range m.items {
		if it.view.ID == id {
			return i
		}
	}
	return -1
}

func (m notesModel) Update(msg tea.Msg) (notesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.create.SetWidth(m.width)
		for i := range m.items {
			m.items[i].form.SetWidth(m.width)
		}
		return m, nil

	case notesLoadedMsg:
		return m.applyList(msg), nil

	case noteCreatedMsg:
		m.creating = false
		if msg.err != nil {
			m.formMsg = ""
			m.alert = alertModel{text: failure(m.cat.CreateFailed, m.cat.CreateNetwork, msg.err)}
			m.logFailure("create note", msg.err)
			return m, nil
		}
		m.create.Clear()
		m.create.Blur()
		m.createOpen = false
		m.formMsg = ""
		return m, m.listNotes()

	case noteUpdatedMsg:
		// on success the note stays pending until the re-fetch replaces it
		if msg.err != nil {
			if i := m.indexOf(msg.id); i >= 0 {
				m.items[i].pending = false
			}
			m.alert = alertModel{text: failure(m.cat.UpdateFailed, m.cat.UpdateNetwork, msg.err)}
			m.logFailure("update note", msg.err)
			return m, nil
		}
		return m, m.listNotes()

	case noteDeletedMsg:
		// on success the note stays pending until the re-fetch replaces it
		if msg.err != nil {
			if i := m.indexOf(msg.id); i >= 0 {
				m.items[i].pending = false
			}
			m.alert = alertModel{text: failure(m.cat.DeleteFailed, m.cat.DeleteNetwork, msg.err)}
			m.logFailure("delete note", msg.err)
			return m, nil
		}
		return m, m.listNotes()

	case noteCopiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("copy note")
			m.flash = m.cat.CopyFailed
		} else {
			m.flash = m.cat.Copied
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// applyList replaces every pair with a fresh render of the server's list.
func (m notesModel) applyList(msg notesLoadedMsg) notesModel {
	switch {
	case msg.err == nil:
		m.items = newNoteItems(buildNoteViews(msg.notes), m.cat)
		if m.width > 0 {
			for i := range m.items {
				m.items[i].form.SetWidth(m.width)
			}
		}
		if len(m.items) == 0 {
			m.status = listEmpty
		} else {
			m.status = listReady
		}
	case client.IsStatus(msg.err, 404):
		m.items = nil
		m.status = listEmpty
	default:
		m.log.Error().Err(msg.err).Msg("list notes")
		m.items = nil
		m.status = listFailed
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// logFailure records failures the server did not explain itself.
func (m notesModel) logFailure(op string, err error) {
	if client.IsRejected(err) {
		m.log.Warn().Err(err).Msg(op)
		return
	}
	m.log.Error().Err(err).Msg(op)
}

func (m notesModel) updateKeys(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	if m.alert.active() {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = alertModel{}
		}
		return m, nil
	}

	if m.confirm.active {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.confirm.noteID
			m.confirm = confirmModel{}
			return m.deleteNote(id)
		case key.Matches(msg, m.keys.Decline):
			m.confirm = confirmModel{}
		}
		return m, nil
	}

	m.flash = ""

	if m.createOpen {
		return m.updateCreate(msg)
	}

	editing := m.selectedEditing()
	action := m.keys.resolve(msg, editing)
	if handler, ok := noteActions[action]; ok {
		return handler(m)
	}
	if editing {
		var cmd tea.Cmd
		m.items[m.cursor].form, cmd = m.items[m.cursor].form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m notesModel) updateCreate(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitCreate()
	case key.Matches(msg, m.keys.Cancel):
		return m.toggleCreate()
	case key.Matches(msg, m.keys.Next):
		m.create.Next()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.create.Prev()
		return m, nil
	}
	if !m.creating {
		m.formMsg = ""
	}
	var cmd tea.Cmd
	m.create, cmd = m.create.Update(msg)
	return m, cmd
}

func (m notesModel) submitCreate() (notesModel, tea.Cmd) {
	if m.creating {
		return m, nil
	}
	in := m.create.Values()
	if err := in.Validate(); err != nil {
		m.formMsg = m.cat.TitleRequired
		return m, nil
	}
	m.creating = true
	m.formMsg = m.cat.Saving
	return m, createNoteCmd(m.api, m.session, in)
}

func (m notesModel) deleteNote(id int) (notesModel, tea.Cmd) {
	i := m.indexOf(id)
	if i < 0 || m.items[i].pending {
		return m, nil
	}
	m.items[i].pending = true
	return m, deleteNoteCmd(m.api, m.session, id)
}

// -- dispatch table handlers --

func (m notesModel) moveUp() (notesModel, tea.Cmd) {
	return m.setCursor(m.cursor - 1), nil
}

func (m notesModel) moveDown() (notesModel, tea.Cmd) {
	return m.setCursor(m.cursor + 1), nil
}

// setCursor moves the selection, handing keyboard focus to the form of
// the newly selected note if it is being edited.
func (m notesModel) setCursor(i int) notesModel {
	if i < 0 || i >= len(m.items) || i == m.cursor {
		return m
	}
	if m.hasSelection() {
		m.items[m.cursor].form.Blur()
	}
	m.cursor = i
	if m.items[i].mode == modeEditing {
		m.items[i].form.Focus()
	}
	return m
}

func (m notesModel) startEdit() (notesModel, tea.Cmd) {
	if !m.hasSelection() || m.items[m.cursor].mode == modeEditing {
		return m, nil
	}
	it := &m.items[m.cursor]
	it.mode = modeEditing
	it.form.Reset()
	return m, nil
}

// cancelEdit drops local edits. Nothing is sent.
func (m notesModel) cancelEdit() (notesModel, tea.Cmd) {
	if !m.hasSelection() {
		return m, nil
	}
	it := &m.items[m.cursor]
	if it.mode != modeEditing || it.pending {
		return m, nil
	}
	it.form.Reset()
	it.form.Blur()
	it.mode = modeDisplay
	return m, nil
}

func (m notesModel) askDelete() (notesModel, tea.Cmd) {
	if !m.hasSelection() || m.items[m.cursor].pending {
		return m, nil
	}
	m.confirm = newConfirm(m.cat.ConfirmDelete, m.items[m.cursor].view.ID)
	return m, nil
}

func (m notesModel) submitEdit() (notesModel, tea.Cmd) {
	if !m.hasSelection() {
		return m, nil
	}
	it := &m.items[m.cursor]
	if it.mode != modeEditing || it.pending {
		return m, nil
	}
	in := it.form.Values()
	if err := in.Validate(); err != nil {
		m.alert = alertModel{text: m.cat.TitleRequired}
		return m, nil
	}
	it.pending = true
	return m, updateNoteCmd(m.api, m.session, it.view.ID, in)
}

func (m notesModel) nextField() (notesModel, tea.Cmd) {
	if m.selectedEditing() {
		m.items[m.cursor].form.Next()
	}
	return m, nil
}

func (m notesModel) prevField() (notesModel, tea.Cmd) {
	if m.selectedEditing() {
		m.items[m.cursor].form.Prev()
	}
	return m, nil
}

func (m notesModel) toggleCreate() (notesModel, tea.Cmd) {
	m.createOpen = !m.createOpen
	if m.createOpen {
		m.create.Focus()
		if m.hasSelection() {
			m.items[m.cursor].form.Blur()
		}
	} else {
		m.create.Blur()
		if !m.creating {
			m.formMsg = ""
		}
		if m.selectedEditing() {
			m.items[m.cursor].form.Focus()
		}
	}
	return m, nil
}

func (m notesModel) refresh() (notesModel, tea.Cmd) {
	return m, m.listNotes()
}

func (m notesModel) copySelected() (notesModel, tea.Cmd) {
	if !m.hasSelection() {
		return m, nil
	}
	return m, copyNoteCmd(m.items[m.cursor].view.clipboardText())
}

// -- view --

func (m notesModel) View() string {
	if m.alert.active() {
		return "\n" + m.alert.View(m.cat)
	}

	var b strings.Builder
	if m.confirm.active {
		title := ""
		if i := m.indexOf(m.confirm.noteID); i >= 0 {
			title = m.items[i].view.Title
		}
		b.WriteString("\n" + m.confirm.View(m.cat, title) + "\n")
	}

	if m.createOpen {
		b.WriteString(" " + sectionHeaderStyle.Render(m.cat.NewNote) + "\n")
		b.WriteString(m.create.View(m.cat, " "))
		if m.formMsg != "" {
			style := dimStyle
			if m.formMsg == m.cat.TitleRequired {
				style = errorStyle
			}
			b.WriteString("   " + style.Render(m.formMsg) + "\n")
		}
	} else {
		b.WriteString(" " + helpEntry("n", m.cat.NewNote) + "\n")
	}
	b.WriteString("\n")

	var footer string
	if m.flash != "" {
		footer = "\n   " + okStyle.Render(m.flash) + "\n"
	}

	listHeight := 0
	if m.height > 0 {
		listHeight = max(1, m.height-strings.Count(b.String(), "\n")-strings.Count(footer, "\n"))
	}
	b.WriteString(renderNoteList(m.items, m.cursor, m.status, m.cat, m.width, listHeight))
	b.WriteString(footer)
	return b.String()
}

// helpKeys is the one-line key hint for the current state.
func (m notesModel) helpKeys() string {
	switch {
	case m.alert.active():
		return helpEntry("enter", m.cat.Dismiss)
	case m.confirm.active:
		return helpEntry("y", m.cat.Yes) + "  " + helpEntry("n", m.cat.No)
	case m.createOpen, m.selectedEditing():
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+j", "newline") + "  " + helpEntry("enter", m.cat.Save) + "  " + helpEntry("esc", m.cat.Cancel)
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "new") + "  " + helpEntry("e", m.cat.Edit) + "  " +
		helpEntry("d", m.cat.Delete) + "  " + helpEntry("c", "copy") + "  " + helpEntry("?", m.cat.HelpHint) + "  " + helpEntry("q", "quit")
}
