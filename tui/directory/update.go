package directory

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/authordir/tui/refresh"
	"github.com/CrestNiraj12/authordir/tui/view"
)

// Update handles messages for the directory view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport(false)
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case UsersLoadedMsg:
		m.loadingUsers = false
		m.orch.Install(m.selector, msg.Users, m.changeHandler())
		if m.selector.Len() == 0 {
			m.status = "No authors available."
			return m, nil
		}
		if m.preferredUser != 0 && m.selector.SetCursorByValue(m.preferredUser) {
			return m.selectCursor()
		}
		return m, nil

	case PostsBuiltMsg:
		return m.handlePostsBuilt(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handlePostsBuilt(msg PostsBuiltMsg) (Model, tea.Cmd) {
	// A newer selection owns the view; this result is stale.
	if msg.Cycle.Generation != m.state.Generation() {
		return m, nil
	}

	frag := msg.Fragment
	if msg.Err != nil {
		if refresh.IsStale(msg.Err) {
			return m, nil
		}
		m.logger.Error("refresh failed", "cycle", msg.Cycle.ID, "user_id", msg.UserID, "error", msg.Err)
		m.status = "Could not load posts: " + msg.Err.Error()
		frag = view.NewFragment()
		frag.Append(view.DefaultView())
	}

	res, err := m.orch.Commit(m.state, msg.Cycle, frag)
	if err != nil {
		if refresh.IsStale(err) {
			return m, nil
		}
		m.status = "Could not show posts: " + err.Error()
		return m, nil
	}

	m.loading = false
	m.currentUser = msg.UserID
	m.focus = 0
	if len(res.Attached) > 0 {
		m.pane = postsPane
	} else {
		m.pane = authorsPane
	}
	m.syncViewport(true)
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints
		m.syncViewport(false)

	case key.Matches(msg, m.keys.SwitchPane):
		if m.pane == authorsPane && len(m.state.PostIDs()) > 0 {
			m.pane = postsPane
		} else {
			m.pane = authorsPane
		}
		m.syncViewport(false)

	case key.Matches(msg, m.keys.Up):
		if m.pane == authorsPane {
			m.selector.MoveCursor(-1)
		} else {
			m.moveFocus(-1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.pane == authorsPane {
			m.selector.MoveCursor(1)
		} else {
			m.moveFocus(1)
		}

	case key.Matches(msg, m.keys.Select):
		if m.pane == authorsPane {
			return m.selectCursor()
		}
		m.toggleFocused()

	case key.Matches(msg, m.keys.Toggle):
		if m.pane == postsPane {
			m.toggleFocused()
		}

	case key.Matches(msg, m.keys.Reload):
		if o, ok := m.selector.Selected(); ok {
			m.selector.SetCursorByValue(o.Value)
			return m.selectCursor()
		}

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) selectCursor() (Model, tea.Cmd) {
	cmd := m.selector.SelectCursor()
	if cmd == nil {
		return m, nil
	}
	m.loading = true
	m.status = ""
	m.focus = 0
	m.syncViewport(true)
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) moveFocus(delta int) {
	ids := m.state.PostIDs()
	if len(ids) == 0 {
		m.focus = 0
		return
	}
	m.focus = min(max(m.focus+delta, 0), len(ids)-1)
	m.syncViewport(false)
}

func (m *Model) toggleFocused() {
	id, ok := m.FocusedPost()
	if !ok {
		return
	}
	if _, err := m.state.Click(id); err != nil {
		m.logger.Warn("toggle click failed", "post_id", id, "error", err)
		m.status = err.Error()
	}
	m.syncViewport(false)
}
