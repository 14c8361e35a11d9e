package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// PaneTitleStyle styles the heading above the author selector.
	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true).
			MarginBottom(1)

	// OptionStyle styles an unselected author in the selector.
	OptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			PaddingLeft(2)

	// OptionActiveStyle styles the author under the selector cursor.
	OptionActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6600")).
				Bold(true).
				PaddingLeft(1)

	// OptionCurrentStyle marks the author whose posts are mounted.
	OptionCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7DC4E4")).
				PaddingLeft(2)

	// SelectorPaneStyle frames the author selector.
	SelectorPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, true, false, false).
				BorderForeground(lipgloss.Color("#45475A")).
				PaddingRight(1)

	// PostTitleStyle styles a post heading.
	PostTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// ContentStyle styles body text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// MetadataStyle styles secondary lines such as post ids.
	MetadataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// CommentAuthorStyle styles a comment's heading.
	CommentAuthorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#A6DA95"))

	// CommentStyle indents a comment under its post.
	CommentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#444444")).
			PaddingLeft(1).
			MarginLeft(2)

	// ButtonStyle styles a toggle control.
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(0, 1)

	// ButtonFocusStyle styles the focused toggle control.
	ButtonFocusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1E1E2E")).
				Background(lipgloss.Color("#FF6600")).
				Bold(true).
				Padding(0, 1)

	// SelectedStyle highlights the post holding focus.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// UnselectedStyle gives other posts a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// PlaceholderStyle styles placeholder text such as the default view.
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)
)
