package tui

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogin(api *fakeAPI) loginModel {
	return newLoginModel(api, catalogFor("pt"), zerolog.Nop())
}

func TestLoginBlankUsernameSendsNothing(t *testing.T) {
	for _, name := range []string{"", "   "} {
		t.Run("name="+name, func(t *testing.T) {
			api := &fakeAPI{token: "tok"}
			m := newTestLogin(api)
			if name != "" {
				m, _ = m.Update(keyRunes(name))
			}
			m, cmd := m.Update(keyEnter)
			if cmd != nil {
				t.Error("blank username must not issue a command")
			}
			if m.errMsg != "Por favor, digite um nome de usuário." {
				t.Errorf("errMsg = %q", m.errMsg)
			}
			if !strings.Contains(m.View(), m.errMsg) {
				t.Error("inline error not rendered")
			}
			if ops := api.callOps(); len(ops) != 0 {
				t.Errorf("unexpected calls %v", ops)
			}
		})
	}
}

func TestLoginSubmitTrimsAndSends(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	m := newTestLogin(api)
	m, _ = m.Update(keyRunes("  alice "))
	m, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatal("expected login command")
	}
	if !m.pending {
		t.Error("expected pending while logging in")
	}
	if _, dup := m.Update(keyEnter); dup != nil {
		t.Error("duplicate login should be suppressed")
	}

	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	done, ok := msgs[0].(loginDoneMsg)
	if !ok {
		t.Fatalf("expected loginDoneMsg, got %T", msgs[0])
	}
	if done.err != nil || done.session.Username != "alice" || done.session.Token != "tok" {
		t.Errorf("unexpected result %+v", done)
	}
}

func TestLoginErrors(t *testing.T) {
	cat := catalogFor("pt")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rejected with detail", rejected(400, "User not found"), "User not found"},
		{"rejected without detail", rejected(400, ""), cat.LoginUnknownError},
		{"network", networkErr(), cat.LoginNetworkError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestLogin(&fakeAPI{})
			m.pending = true
			m, _ = m.Update(loginDoneMsg{err: tt.err})
			if m.errMsg != tt.want {
				t.Errorf("errMsg = %q, want %q", m.errMsg, tt.want)
			}
			if m.pending {
				t.Error("pending should clear")
			}
		})
	}
}

func TestLoginTypingClearsError(t *testing.T) {
	m := newTestLogin(&fakeAPI{})
	m, _ = m.Update(keyEnter)
	if m.errMsg == "" {
		t.Fatal("expected error")
	}
	m, _ = m.Update(keyRunes("a"))
	if m.errMsg != "" {
		t.Errorf("typing should clear the error, got %q", m.errMsg)
	}
}
