package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/notas/pkg/domain"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldTags
	numFields
)

// maxTitleLen matches the backend's note_title limit.
const maxTitleLen = 255

const descriptionHeight = 3

// noteForm is the three-field form used both to create a note and to edit
// one inline. It remembers the values it was opened with so Reset can
// discard edits. The description is multi-line; enter still submits, so a
// line break is ctrl+j or alt+enter.
type noteForm struct {
	title       textinput.Model
	description textarea.Model
	tags        textinput.Model
	initial     domain.NoteInput
	focus       formField
}

func newNoteForm(initial domain.NoteInput, cat catalog) noteForm {
	f := noteForm{
		initial:     initial,
		title:       newFieldInput(cat.TitleLabel),
		description: newDescriptionArea(cat.DescriptionLabel),
		tags:        newFieldInput(cat.TagsLabel),
	}
	f.title.CharLimit = maxTitleLen
	f.Reset()
	return f
}

func newFieldInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = inputPlaceholderStyle
	ti.Cursor.SetMode(cursor.CursorStatic) // no blink commands
	return ti
}

func newDescriptionArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Placeholder = placeholder
	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		EndOfBuffer: inputPlaceholderStyle,
		Placeholder: inputPlaceholderStyle,
		Prompt:      lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"))
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetHeight(descriptionHeight)
	ta.SetWidth(50)
	ta.Blur()
	return ta
}

// Values returns the current field contents.
func (f noteForm) Values() domain.NoteInput {
	return domain.NoteInput{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Tags:        f.tags.Value(),
	}
}

// Reset restores the values the form was opened with and moves focus back
// to the title.
func (f *noteForm) Reset() {
	f.title.SetValue(f.initial.Title)
	f.description.SetValue(f.initial.Description)
	f.tags.SetValue(f.initial.Tags)
	f.setFocus(fieldTitle)
}

// Clear empties the form for the next note.
func (f *noteForm) Clear() {
	f.initial = domain.NoteInput{}
	f.Reset()
}

// Focus gives keyboard focus to the active field.
func (f *noteForm) Focus() {
	f.setFocus(f.focus)
}

// Blur removes keyboard focus from every field.
func (f *noteForm) Blur() {
	f.title.Blur()
	f.description.Blur()
	f.tags.Blur()
}

func (f *noteForm) Next() {
	f.setFocus((f.focus + 1) % numFields)
}

func (f *noteForm) Prev() {
	f.setFocus((f.focus - 1 + numFields) % numFields)
}

func (f *noteForm) setFocus(field formField) {
	f.focus = field
	f.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldTags:
		f.tags.Focus()
	}
}

// focused reports whether the given field currently has keyboard focus.
func (f noteForm) focused(field formField) bool {
	switch field {
	case fieldTitle:
		return f.title.Focused()
	case fieldDescription:
		return f.description.Focused()
	case fieldTags:
		return f.tags.Focused()
	}
	return false
}

// SetWidth sizes the fields to the available columns.
func (f *noteForm) SetWidth(w int) {
	w -= 16 // pad + marker + label column
	if w < 20 {
		w = 20
	}
	f.title.Width = w
	f.tags.Width = w
	f.description.SetWidth(w)
}

// Update forwards a message to the focused field.
func (f noteForm) Update(msg tea.Msg) (noteForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return f, cmd
}

// View renders the form, one labeled field per row, indented by pad.
// The description spans several lines under its label.
func (f noteForm) View(cat catalog, pad string) string {
	labels := [numFields]string{cat.TitleLabel, cat.DescriptionLabel, cat.TagsLabel}
	views := [numFields]string{f.title.View(), f.description.View(), f.tags.View()}
	indent := pad + strings.Repeat(" ", 13)

	var b strings.Builder
	for i := formField(0); i < numFields; i++ {
		marker := " "
		label := metaStyle.Render(fmt.Sprintf("%-10s", labels[i]+":"))
		if i == f.focus && f.focused(i) {
			marker = accentStyle.Render(">")
			label = inputPromptStyle.Render(fmt.Sprintf("%-10s", labels[i]+":"))
		}
		lines := strings.Split(strings.TrimRight(views[i], "\n"), "\n")
		fmt.Fprintf(&b, "%s%s %s %s\n", pad, marker, label, lines[0])
		for _, l := range lines[1:] {
			b.WriteString(indent + l + "\n")
		}
	}
	return b.String()
}
