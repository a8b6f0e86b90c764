package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/pkg/client"
	"github.com/naveenspark/notas/pkg/domain"
)

type loginModel struct {
	api     NotesAPI
	cat     catalog
	log     zerolog.Logger
	submit  key.Binding
	input   textinput.Model
	errMsg  string
	pending bool
}

func newLoginModel(api NotesAPI, cat catalog, log zerolog.Logger) loginModel {
	ti := textinput.New()
	ti.Prompt = inputPromptStyle.Render("> ")
	ti.Placeholder = cat.UsernameLabel
	ti.PlaceholderStyle = inputPlaceholderStyle
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return loginModel{
		api:    api,
		cat:    cat,
		log:    log,
		submit: key.NewBinding(key.WithKeys("enter")),
		input:  ti,
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.pending = false
		if msg.err != nil {
			m.errMsg = m.loginError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.submit) {
			return m.login()
		}
		if !m.pending {
			m.errMsg = ""
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// login validates the username locally; a blank name never reaches the
// server.
func (m loginModel) login() (loginModel, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	name := domain.NormalizeUsername(m.input.Value())
	if name == "" {
		m.errMsg = m.cat.UsernameRequired
		return m, nil
	}
	m.pending = true
	m.errMsg = ""
	return m, loginCmd(m.api, name)
}

func (m loginModel) loginError(err error) string {
	if client.IsRejected(err) {
		m.log.Warn().Err(err).Msg("login rejected")
		if d := client.Detail(err); d != "" {
			return d
		}
		return m.cat.LoginUnknownError
	}
	m.log.Error().Err(err).Msg("login")
	return m.cat.LoginNetworkError
}

func (m loginModel) View() string {
	s := "\n " + metaStyle.Render(m.cat.UsernameLabel) + "\n " + m.input.View() + "\n"
	switch {
	case m.pending:
		s += "\n   " + dimStyle.Render(m.cat.LoggingIn) + "\n"
	case m.errMsg != "":
		s += "\n   " + errorStyle.Render(m.errMsg) + "\n"
	}
	return s
}
