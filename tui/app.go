package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/authordir/app"
	"github.com/CrestNiraj12/authordir/infra/config"
	"github.com/CrestNiraj12/authordir/infra/logging"
	"github.com/CrestNiraj12/authordir/tui/common"
	"github.com/CrestNiraj12/authordir/tui/directory"
	"github.com/CrestNiraj12/authordir/tui/refresh"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Directory    app.DirectoryService
	Logger       *slog.Logger
	StatePath    string // UI state file; empty disables persistence
	LastAuthorID int    // author to reopen on start; 0 for none
}

// App is the root Bubble Tea model. It owns global keys and persistence and
// delegates everything else to the directory view.
type App struct {
	deps      Deps
	directory directory.Model
	keys      common.KeyMap
	status    string // Transient status message (e.g. a failed save)
}

type uiStateSavedMsg struct {
	UserID int
	Err    error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	orch := refresh.New(deps.Directory, deps.Logger)
	return App{
		deps:      deps,
		directory: directory.New(orch, deps.LastAuthorID, deps.Logger),
		keys:      common.DefaultKeyMap(),
	}
}

// Init delegates to the directory view.
func (a App) Init() tea.Cmd {
	return a.directory.Init()
}

// Update handles global messages and routes the rest to the directory.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.directory.State().Stop()
			return a, tea.Quit
		}

	case directory.AuthorSelectedMsg:
		a.status = ""
		return a, a.saveUIState(msg.UserID)

	case uiStateSavedMsg:
		if msg.Err != nil {
			a.deps.Logger.Warn("saving ui state failed", "user_id", msg.UserID, "error", msg.Err)
			a.status = "Could not remember selection: " + msg.Err.Error()
		}
		return a, nil
	}

	updated, cmd := a.directory.Update(msg)
	a.directory = updated
	return a, cmd
}

func (a App) saveUIState(userID int) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := config.SaveUIState(path, config.UIState{LastAuthorID: userID})
		return uiStateSavedMsg{UserID: userID, Err: err}
	}
}

// View renders the directory plus any transient status.
func (a App) View() string {
	s := a.directory.View()
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(common.ErrorStyle.Render(a.status))
	}
	return s
}
