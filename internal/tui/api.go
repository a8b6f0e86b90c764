package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/notas/pkg/domain"
)

// NotesAPI is the backend the controller talks to. *client.Client
// implements it.
type NotesAPI interface {
	Login(ctx context.Context, username string) (*domain.Session, error)
	ListNotes(ctx context.Context, sess *domain.Session) ([]domain.Note, error)
	CreateNote(ctx context.Context, sess *domain.Session, in domain.NoteInput) error
	UpdateNote(ctx context.Context, sess *domain.Session, id int, in domain.NoteInput) error
	DeleteNote(ctx context.Context, sess *domain.Session, id int) error
}

// -- result messages --

type loginDoneMsg struct {
	session *domain.Session
	err     error
}

type notesLoadedMsg struct {
	notes []domain.Note
	err   error
}

type noteCreatedMsg struct{ err error }

type noteUpdatedMsg struct {
	id  int
	err error
}

type noteDeletedMsg struct {
	id  int
	err error
}

type noteCopiedMsg struct{ err error }

// -- commands --

func loginCmd(api NotesAPI, username string) tea.Cmd {
	return func() tea.Msg {
		sess, err := api.Login(context.Background(), username)
		return loginDoneMsg{session: sess, err: err}
	}
}

func listNotesCmd(api NotesAPI, sess *domain.Session) tea.Cmd {
	return func() tea.Msg {
		notes, err := api.ListNotes(context.Background(), sess)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func createNoteCmd(api NotesAPI, sess *domain.Session, in domain.NoteInput) tea.Cmd {
	return func() tea.Msg {
		return noteCreatedMsg{err: api.CreateNote(context.Background(), sess, in)}
	}
}

func updateNoteCmd(api NotesAPI, sess *domain.Session, id int, in domain.NoteInput) tea.Cmd {
	return func() tea.Msg {
		return noteUpdatedMsg{id: id, err: api.UpdateNote(context.Background(), sess, id, in)}
	}
}

func deleteNoteCmd(api NotesAPI, sess *domain.Session, id int) tea.Cmd {
	return func() tea.Msg {
		return noteDeletedMsg{id: id, err: api.DeleteNote(context.Background(), sess, id)}
	}
}

func copyNoteCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return noteCopiedMsg{err: clipboard.WriteAll(text)}
	}
}
