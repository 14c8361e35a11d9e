package directory

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/authordir/tui/common"
	"github.com/CrestNiraj12/authordir/tui/view"
)

// View renders the selector pane, the posts pane and the footer.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("📇 AuthorDir")
	tagline := common.TaglineStyle.Render("<Posts and comments, by author>")
	b.WriteString(title + tagline + "\n\n")

	left := common.SelectorPaneStyle.Width(m.selectorWidth()).Render(m.renderSelector())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.renderPosts()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderSelector() string {
	var b strings.Builder
	b.WriteString(common.PaneTitleStyle.Render("Authors") + "\n")

	if m.loadingUsers {
		b.WriteString(fmt.Sprintf("%s Loading authors...", m.spinner.View()))
		return b.String()
	}
	if m.selector.Len() == 0 {
		b.WriteString(common.PlaceholderStyle.Render("No authors."))
		return b.String()
	}

	width := m.selectorWidth() - 3
	selected, hasSelected := m.selector.Selected()
	lines := make([]string, 0, m.selector.Len())
	for i, o := range m.selector.Options() {
		label := common.Truncate(o.Label, width)
		switch {
		case i == m.selector.Cursor() && m.pane == authorsPane:
			lines = append(lines, common.OptionActiveStyle.Render("› "+label))
		case hasSelected && o.Value == selected.Value:
			lines = append(lines, common.OptionCurrentStyle.Render(label))
		default:
			lines = append(lines, common.OptionStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (m Model) renderPosts() string {
	if m.loading {
		return fmt.Sprintf(" %s Loading posts...", m.spinner.View())
	}
	return m.viewport.View()
}

func (m Model) renderFooter() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, common.ErrorStyle.Render(m.status))
	}
	if m.showHints {
		parts = append(parts, common.HintLine(m.keys.Hints()))
	}
	return common.StatusBarStyle.Render(strings.Join(parts, "  "))
}

func (m Model) selectorWidth() int {
	if m.width <= 0 {
		return selectorWidth
	}
	return min(selectorWidth, max(m.width/3, 12))
}

func (m Model) postsWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-m.selectorWidth()-4, 20)
}

func (m Model) postsHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-headerHeight-footerHeight-2, 3)
}

// syncViewport re-renders the mounted posts into the viewport. Each
// top-level node is rendered on its own so the focused post's line range
// is known and can be scrolled into view.
func (m *Model) syncViewport(resetScroll bool) {
	m.viewport.Width = m.postsWidth()
	m.viewport.Height = m.postsHeight()

	focusID, _ := m.FocusedPost()
	opts := view.RenderOptions{Width: m.viewport.Width, FocusPostID: focusID}

	children := m.state.Container.Children()
	blocks := make([]string, 0, len(children))
	line := 0
	focusLine, focusHeight := -1, 0
	for _, c := range children {
		out := view.Render(c, opts)
		h := lipgloss.Height(out)
		if buttons := c.FindAll(view.KindButton); focusID != 0 && len(buttons) > 0 && buttons[0].PostID == focusID {
			focusLine, focusHeight = line, h
		}
		blocks = append(blocks, out)
		line += h
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))

	if resetScroll {
		m.viewport.GotoTop()
	}
	if focusLine < 0 {
		return
	}
	switch {
	case focusLine < m.viewport.YOffset:
		m.viewport.SetYOffset(focusLine)
	case focusLine+focusHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(min(focusLine, focusLine+focusHeight-m.viewport.Height))
	}
}
