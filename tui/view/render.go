package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/authordir/tui/common"
)

// RenderOptions controls how a mounted tree is drawn.
type RenderOptions struct {
	Width       int // total columns available; 0 means unwrapped
	FocusPostID int // post whose toggle is focused; 0 for none
}

// frameWidth is the border plus padding a post box adds on each line.
const frameWidth = 4

// Render draws root and everything mounted under it. Hidden sections are
// skipped entirely.
func Render(root *Node, opts RenderOptions) string {
	if root == nil {
		return ""
	}
	return strings.TrimRight(render(root, opts, opts.Width), "\n")
}

func render(n *Node, opts RenderOptions, width int) string {
	switch n.Kind {
	case KindMain, KindFragment:
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, render(c, opts, width))
		}
		return strings.Join(parts, "\n")

	case KindArticle:
		if n.parent != nil && n.parent.Kind == KindSection {
			return renderComment(n, opts, width)
		}
		return renderPost(n, opts, width)

	case KindSection:
		if n.HasClass(ClassHide) {
			return ""
		}
		if len(n.children) == 0 {
			return common.PlaceholderStyle.Render("  No comments.")
		}
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, render(c, opts, width))
		}
		return strings.Join(parts, "\n")

	case KindH2:
		return common.PostTitleStyle.Render(wrap(n.Text, width))

	case KindH3:
		return common.CommentAuthorStyle.Render(wrap(n.Text, width))

	case KindButton:
		label := "[ " + n.Text + " ]"
		if n.PostID != 0 && n.PostID == opts.FocusPostID {
			return common.ButtonFocusStyle.Render(label)
		}
		return common.ButtonStyle.Render(label)

	default:
		return paragraphStyle(n).Render(wrap(n.Text, width))
	}
}

func renderPost(n *Node, opts RenderOptions, width int) string {
	inner := width
	if inner > 0 {
		inner = max(inner-frameWidth, 1)
	}
	lines := make([]string, 0, len(n.children))
	focused := false
	for _, c := range n.children {
		if c.Kind == KindButton && c.PostID != 0 && c.PostID == opts.FocusPostID {
			focused = true
		}
		out := render(c, opts, inner)
		if out == "" {
			continue
		}
		lines = append(lines, out)
	}
	body := strings.Join(lines, "\n")
	style := common.UnselectedStyle
	if focused {
		style = common.SelectedStyle
	}
	if inner > 0 {
		style = style.Width(inner + 2)
	}
	return style.Render(body)
}

func renderComment(n *Node, opts RenderOptions, width int) string {
	inner := width
	if inner > 0 {
		inner = max(inner-frameWidth, 1)
	}
	lines := make([]string, 0, len(n.children))
	for _, c := range n.children {
		lines = append(lines, render(c, opts, inner))
	}
	return common.CommentStyle.Render(strings.Join(lines, "\n"))
}

func paragraphStyle(n *Node) lipgloss.Style {
	switch {
	case n.HasClass(ClassDefaultText):
		return common.PlaceholderStyle
	case n.HasClass(ClassAuthorUnavailable):
		return common.ErrorStyle
	case strings.HasPrefix(n.Text, "Post ID:"), strings.HasPrefix(n.Text, "From:"):
		return common.MetadataStyle
	default:
		return common.ContentStyle
	}
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}
