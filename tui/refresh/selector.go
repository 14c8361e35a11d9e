package refresh

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/authordir/domain"
)

// fallbackUserID is used when an option carries no id.
const fallbackUserID = 1

// Option is one entry of the author selector.
type Option struct {
	Value int
	Label string
}

// ChangeHandler runs when the selection changes.
type ChangeHandler func(userID int) tea.Cmd

// Selector is the author picker: a list of options, a cursor and the
// currently selected option.
type Selector struct {
	options  []Option
	cursor   int
	selected int
	onChange ChangeHandler
}

// NewSelector returns an empty selector with nothing selected.
func NewSelector() *Selector {
	return &Selector{selected: -1}
}

// Populate appends one option per user and returns how many were added.
func (s *Selector) Populate(users []domain.User) int {
	for _, u := range users {
		s.options = append(s.options, Option{Value: u.ID, Label: u.Name})
	}
	return len(users)
}

// OnChange registers h as the selection-change handler, replacing any
// previous one.
func (s *Selector) OnChange(h ChangeHandler) {
	s.onChange = h
}

// Options returns a copy of the options.
func (s *Selector) Options() []Option {
	return append([]Option(nil), s.options...)
}

// Len returns the number of options.
func (s *Selector) Len() int {
	return len(s.options)
}

// Cursor returns the highlighted option index.
func (s *Selector) Cursor() int {
	return s.cursor
}

// MoveCursor shifts the highlight by delta, clamped to the options.
func (s *Selector) MoveCursor(delta int) {
	if len(s.options) == 0 {
		s.cursor = 0
		return
	}
	s.cursor = min(max(s.cursor+delta, 0), len(s.options)-1)
}

// SetCursorByValue highlights the option whose value is userID.
func (s *Selector) SetCursorByValue(userID int) bool {
	for i, o := range s.options {
		if o.Value == userID {
			s.cursor = i
			return true
		}
	}
	return false
}

// Selected returns the selected option.
func (s *Selector) Selected() (Option, bool) {
	if s.selected < 0 || s.selected >= len(s.options) {
		return Option{}, false
	}
	return s.options[s.selected], true
}

// SelectCursor selects the highlighted option.
func (s *Selector) SelectCursor() tea.Cmd {
	return s.Select(s.cursor)
}

// Select selects option i and fires the change handler with its user id.
// Out of range indexes are ignored.
func (s *Selector) Select(i int) tea.Cmd {
	if i < 0 || i >= len(s.options) {
		return nil
	}
	s.selected = i
	s.cursor = i
	userID := s.options[i].Value
	if userID == 0 {
		userID = fallbackUserID
	}
	if s.onChange == nil {
		return nil
	}
	return s.onChange(userID)
}

// LoadUsers fetches every author. A failed fetch yields an empty list; the
// gateway has already logged it.
func (o *Orchestrator) LoadUsers(ctx context.Context) []domain.User {
	return o.dir.FetchUsers(ctx)
}

// Install populates sel with users and registers onChange as its
// selection-change handler.
func (o *Orchestrator) Install(sel *Selector, users []domain.User, onChange ChangeHandler) {
	n := sel.Populate(users)
	sel.OnChange(onChange)
	if n == 0 {
		o.logger.Warn("author selector is empty")
		return
	}
	o.logger.Info("author selector populated", "options", n)
}

// Bootstrap loads every author into sel and registers onChange.
func (o *Orchestrator) Bootstrap(ctx context.Context, sel *Selector, onChange ChangeHandler) []domain.User {
	users := o.LoadUsers(ctx)
	o.Install(sel, users, onChange)
	return users
}
