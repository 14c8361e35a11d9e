package directory

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/tui/common"
	"github.com/CrestNiraj12/authordir/tui/refresh"
	"github.com/CrestNiraj12/authordir/tui/view"
)

const (
	selectorWidth = 28
	headerHeight  = 3
	footerHeight  = 2
)

// --- Messages ---

// UsersLoadedMsg is sent when the author list fetch completes.
type UsersLoadedMsg struct {
	Users []domain.User
}

// PostsBuiltMsg is sent when a refresh cycle's view fragment is ready.
type PostsBuiltMsg struct {
	Cycle    refresh.Cycle
	UserID   int
	Fragment *view.Node
	Err      error
}

// AuthorSelectedMsg is sent whenever the selection changes so the root can
// persist it.
type AuthorSelectedMsg struct {
	UserID int
}

type pane int

const (
	authorsPane pane = iota
	postsPane
)

// --- Model ---

// Model is the author directory: a selector pane on the left and the
// mounted posts on the right.
//
// state and selector are pointers shared by every copy of the model. Only
// Update mutates them, so the Bubble Tea loop is their single writer.
type Model struct {
	orch     *refresh.Orchestrator
	state    *refresh.ViewState
	selector *refresh.Selector
	keys     common.KeyMap
	spinner  spinner.Model
	viewport viewport.Model
	logger   *slog.Logger

	width  int
	height int
	pane   pane
	focus  int // index into state.PostIDs()

	loadingUsers  bool
	loading       bool
	currentUser   int
	preferredUser int
	status        string
	showHints     bool
}

// New creates a directory model. preferredUserID, when non-zero, is
// selected as soon as the author list arrives.
func New(orch *refresh.Orchestrator, preferredUserID int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	m := Model{
		orch:          orch,
		state:         refresh.NewViewState(logger),
		selector:      refresh.NewSelector(),
		keys:          common.DefaultKeyMap(),
		spinner:       s,
		viewport:      viewport.New(80, 20),
		logger:        logger,
		loadingUsers:  true,
		preferredUser: preferredUserID,
		showHints:     true,
	}
	m.syncViewport(true)
	return m
}

// Init starts the author list fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadUsers(),
		m.spinner.Tick,
	)
}

func (m Model) loadUsers() tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return UsersLoadedMsg{Users: orch.LoadUsers(context.Background())}
	}
}

// changeHandler is registered on the selector. It begins a refresh cycle
// synchronously, inside Update, and leaves fetching and building to a Cmd.
func (m Model) changeHandler() refresh.ChangeHandler {
	orch, state := m.orch, m.state
	return func(userID int) tea.Cmd {
		ctx, cycle := orch.Begin(context.Background(), state)
		return tea.Batch(
			buildPosts(ctx, orch, cycle, userID),
			func() tea.Msg { return AuthorSelectedMsg{UserID: userID} },
		)
	}
}

func buildPosts(ctx context.Context, orch *refresh.Orchestrator, cycle refresh.Cycle, userID int) tea.Cmd {
	return func() tea.Msg {
		frag, err := orch.FetchAndBuild(ctx, userID)
		return PostsBuiltMsg{Cycle: cycle, UserID: userID, Fragment: frag, Err: err}
	}
}

// Loading reports whether a refresh cycle is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// CurrentUser returns the author whose posts are mounted, or 0.
func (m Model) CurrentUser() int {
	return m.currentUser
}

// State exposes the mounted view.
func (m Model) State() *refresh.ViewState {
	return m.state
}

// Selector exposes the author selector.
func (m Model) Selector() *refresh.Selector {
	return m.selector
}

// FocusedPost returns the post whose toggle holds focus.
func (m Model) FocusedPost() (int, bool) {
	ids := m.state.PostIDs()
	if m.pane != postsPane || len(ids) == 0 {
		return 0, false
	}
	return ids[min(m.focus, len(ids)-1)], true
}
