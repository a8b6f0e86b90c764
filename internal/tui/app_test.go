package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/pkg/domain"
)

func newTestApp(api *fakeAPI) App {
	a := NewApp(api, Options{Lang: "pt", Logger: zerolog.Nop()})
	a.width = 80
	a.height = 40
	return a
}

// pump feeds the messages produced by cmd back into the app until it
// settles.
func pump(a App, cmd tea.Cmd) App {
	for cmd != nil {
		var cmds []tea.Cmd
		for _, msg := range runCmd(cmd) {
			model, c := a.Update(msg)
			a = model.(App)
			if c != nil {
				cmds = append(cmds, c)
			}
		}
		cmd = nil
		if len(cmds) > 0 {
			cmd = tea.Batch(cmds...)
		}
	}
	return a
}

func send(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func loggedInApp(t *testing.T, api *fakeAPI) App {
	t.Helper()
	a := newTestApp(api)
	a, _ = send(a, keyRunes("alice"))
	a, cmd := send(a, keyEnter)
	return pump(a, cmd)
}

func TestAppLoginSwitchesToNotes(t *testing.T) {
	api := &fakeAPI{token: "tok-alice", notes: testNotes()}
	a := loggedInApp(t, api)

	if a.Session() == nil || a.Session().Token != "tok-alice" {
		t.Fatalf("session token not stored: %+v", a.Session())
	}
	if a.view != viewNotes {
		t.Errorf("view = %d, want notes", a.view)
	}
	out := a.View()
	if !strings.Contains(out, "Bem-vindo(a), alice!") {
		t.Errorf("welcome banner missing:\n%s", out)
	}
	if strings.Contains(out, a.cat.UsernameLabel) {
		t.Errorf("login view should be hidden:\n%s", out)
	}
	if ops := api.callOps(); strings.Join(ops, ",") != "login,list" {
		t.Errorf("calls = %v, want login then list", ops)
	}
	if call := api.lastCall(); call.token != "tok-alice" {
		t.Errorf("list sent token %q", call.token)
	}
	if len(a.notes.items) != 2 {
		t.Errorf("expected 2 notes, got %d", len(a.notes.items))
	}
}

func TestAppLoginFailureStaysOnLogin(t *testing.T) {
	api := &fakeAPI{loginErr: rejected(401, "Invalid user")}
	a := loggedInApp(t, api)
	if a.view != viewLogin || a.Session() != nil {
		t.Fatal("expected to stay on login without a session")
	}
	if !strings.Contains(a.View(), "Invalid user") {
		t.Error("rejection detail not shown inline")
	}
}

func TestAppBlankLoginSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(api)
	a, cmd := send(a, keyEnter)
	if cmd != nil {
		t.Error("expected no command")
	}
	if ops := api.callOps(); len(ops) != 0 {
		t.Errorf("unexpected calls %v", ops)
	}
	if a.view != viewLogin {
		t.Error("should stay on login")
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := loggedInApp(t, &fakeAPI{token: "t", notes: testNotes()})
	_, cmd := send(a, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command on q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	login := newTestApp(&fakeAPI{})
	login, _ = send(login, keyRunes("q"))
	if login.login.input.Value() != "q" {
		t.Error("q on the login view should type")
	}
	_, cmd = send(login, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit from anywhere")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestAppQNotFiredWhenEditing(t *testing.T) {
	a := loggedInApp(t, &fakeAPI{token: "t", notes: testNotes()})
	a, _ = send(a, keyRunes("e"))
	a, cmd := send(a, keyRunes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q must not quit while editing")
		}
	}
	if got := a.notes.items[0].form.Values().Title; got != "Buy milkq" {
		t.Errorf("q should type into the field, title = %q", got)
	}
}

func TestAppHelpToggle(t *testing.T) {
	a := loggedInApp(t, &fakeAPI{token: "t", notes: testNotes()})
	a, _ = send(a, keyRunes("?"))
	if !a.helpOpen {
		t.Fatal("expected help open")
	}
	if !strings.Contains(a.View(), "Commands") {
		t.Error("help view not rendered")
	}
	a, _ = send(a, keyRunes("d"))
	if a.notes.confirm.active {
		t.Error("help should capture keys")
	}
	a, _ = send(a, keyEsc)
	if a.helpOpen {
		t.Error("esc should close help")
	}
}

func TestAppWebWithoutURL(t *testing.T) {
	a := loggedInApp(t, &fakeAPI{token: "t", notes: testNotes()})
	if _, cmd := send(a, keyRunes("w")); cmd != nil {
		t.Error("w without a web URL should do nothing")
	}
}

func TestAppShimmerFrameIncrements(t *testing.T) {
	a := newTestApp(&fakeAPI{})
	a, cmd := send(a, shimmerTickMsg{})
	if a.frame != 1 {
		t.Errorf("frame = %d, want 1", a.frame)
	}
	if cmd == nil {
		t.Error("expected next tick")
	}
}

func TestAppViewFitsTerminal(t *testing.T) {
	notes := make([]domain.Note, 30)
	for i := range notes {
		notes[i] = domain.Note{ID: i + 1, Title: "note", Description: "body", Tags: "a"}
	}
	a := loggedInApp(t, &fakeAPI{token: "t", notes: notes})
	a, _ = send(a, tea.WindowSizeMsg{Width: 80, Height: 20})
	if lines := strings.Count(a.View(), "\n") + 1; lines > 20 {
		t.Errorf("view has %d lines, terminal has 20", lines)
	}
}

func TestAppEnglishCatalog(t *testing.T) {
	a := NewApp(&fakeAPI{token: "t"}, Options{Lang: "en"})
	a, _ = send(a, keyRunes("bob"))
	a, cmd := send(a, keyEnter)
	a = pump(a, cmd)
	if !strings.Contains(a.View(), "Welcome, bob!") {
		t.Errorf("expected English welcome:\n%s", a.View())
	}
}

func TestAppScrollsLongList(t *testing.T) {
	a := loggedInApp(t, &fakeAPI{token: "t", notes: manyNotes(30)})
	a, _ = send(a, tea.WindowSizeMsg{Width: 80, Height: 20})
	for range 29 {
		a, _ = send(a, keyRunes("j"))
	}
	out := a.View()
	if !strings.Contains(out, "note-30") {
		t.Errorf("selected note scrolled out of view:\n%s", out)
	}
	if got := strings.Count(out, "\n") + 1; got > 20 {
		t.Errorf("view is %d lines, want at most 20", got)
	}
}
