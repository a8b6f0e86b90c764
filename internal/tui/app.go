package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/internal/browser"
	"github.com/naveenspark/notas/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewNotes
)

// Options configures the TUI.
type Options struct {
	Lang   string         // "pt" (default) or "en"
	Logger zerolog.Logger // diagnostic log; the zero value discards
	WebURL string         // opened by the web key; empty disables it
}

// App is the root Bubbletea model. It owns the session for the lifetime
// of the program; nothing is written to disk.
type App struct {
	api     NotesAPI
	cat     catalog
	log     zerolog.Logger
	keys    keyMap
	webURL  string
	session *domain.Session
	welcome string

	view     view
	login    loginModel
	notes    notesModel
	helpOpen bool

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(api NotesAPI, opts Options) App {
	cat := catalogFor(opts.Lang)
	log := opts.Logger
	return App{
		api:    api,
		cat:    cat,
		log:    log,
		keys:   defaultKeyMap(),
		webURL: opts.WebURL,
		login:  newLoginModel(api, cat, log),
		notes:  newNotesModel(api, cat, log),
	}
}

// Session returns the current session, or nil before login.
func (a App) Session() *domain.Session {
	return a.session
}

func (a App) Init() tea.Cmd {
	return shimmerTickCmd()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + welcome(1) + help(1) = 4 lines
		a.notes, _ = a.notes.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4})
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case loginDoneMsg:
		a.login, _ = a.login.Update(msg)
		if msg.err != nil || !msg.session.Valid() {
			return a, nil
		}
		a.session = msg.session
		a.welcome = fmt.Sprintf(a.cat.Welcome, msg.session.Username)
		a.view = viewNotes
		a.notes = a.notes.withSession(msg.session)
		a.log.Info().Str("user", msg.session.Username).Msg("logged in")
		return a, a.notes.Init()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}

		if a.helpOpen {
			switch {
			case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Cancel):
				a.helpOpen = false
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			}
			return a, nil
		}

		if a.view == viewNotes && !a.notes.capturesKeys() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Help):
				a.helpOpen = true
				return a, nil
			case key.Matches(msg, a.keys.Web):
				return a, a.openWeb()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.Update(msg)
	}
	return a, cmd
}

func (a App) openWeb() tea.Cmd {
	if a.webURL == "" {
		return nil
	}
	url, log := a.webURL, a.log
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("open browser")
		}
		return nil
	}
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("enter", "login") + "  " + helpEntry("ctrl+c", "quit")
	case viewNotes:
		body = a.notes.View()
		help = " " + a.notes.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.keys)
		help = " " + helpEntry("esc", "close") + "  " + helpEntry("q", "quit")
	}

	welcome := ""
	if a.welcome != "" {
		welcome = " " + welcomeStyle.Render(a.welcome)
	}

	// Chrome budget: header(2) + welcome(1) + help(1) = 4 lines + body
	chrome := 4
	if a.height > chrome {
		body = truncateToHeight(body, a.height-chrome)
	}
	body = strings.TrimRight(body, "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, welcome, body, help)
}
