package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/pkg/domain"
)

type apiCall struct {
	op    string
	token string
	id    int
	in    domain.NoteInput
}

// fakeAPI records every call so tests can assert that nothing was sent.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall

	token     string
	loginErr  error
	notes     []domain.Note
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeAPI) record(c apiCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) callOps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.calls))
	for i, c := range f.calls {
		ops[i] = c.op
	}
	return ops
}

func (f *fakeAPI) lastCall() apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return apiCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) Login(_ context.Context, username string) (*domain.Session, error) {
	f.record(apiCall{op: "login"})
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.Session{Username: username, Token: f.token}, nil
}

func (f *fakeAPI) ListNotes(_ context.Context, sess *domain.Session) ([]domain.Note, error) {
	f.record(apiCall{op: "list", token: sess.Token})
	return f.notes, f.listErr
}

func (f *fakeAPI) CreateNote(_ context.Context, sess *domain.Session, in domain.NoteInput) error {
	f.record(apiCall{op: "create", token: sess.Token, in: in})
	return f.createErr
}

func (f *fakeAPI) UpdateNote(_ context.Context, sess *domain.Session, id int, in domain.NoteInput) error {
	f.record(apiCall{op: "update", token: sess.Token, id: id, in: in})
	return f.updateErr
}

func (f *fakeAPI) DeleteNote(_ context.Context, sess *domain.Session, id int) error {
	f.record(apiCall{op: "delete", token: sess.Token, id: id})
	return f.deleteErr
}

var testSession = &domain.Session{Username: "alice", Token: "tok-alice"}

func testNotes() []domain.Note {
	return []domain.Note{
		{ID: 1, Title: "Buy milk", Tags: "errand"},
		{ID: 2, Title: "Call mom", Description: "sunday"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

// runCmd executes cmd and returns the messages it produced, flattening
// batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// newTestNotes returns a logged-in notes model holding the given notes.
func newTestNotes(api *fakeAPI, notes []domain.Note) notesModel {
	m := newNotesModel(api, catalogFor("pt"), zerolog.Nop()).withSession(testSession)
	m.width = 80
	m, _ = m.Update(notesLoadedMsg{notes: notes})
	return m
}

// settle feeds the messages produced by cmd back into m until no more
// commands are returned.
func settle(m notesModel, cmd tea.Cmd) notesModel {
	for cmd != nil {
		msgs := runCmd(cmd)
		cmd = nil
		var cmds []tea.Cmd
		for _, msg := range msgs {
			var c tea.Cmd
			m, c = m.Update(msg)
			if c != nil {
				cmds = append(cmds, c)
			}
		}
		if len(cmds) > 0 {
			cmd = tea.Batch(cmds...)
		}
	}
	return m
}
