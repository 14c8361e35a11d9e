// Package disclosure tracks whether each mounted post's comments are shown.
package disclosure

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/tui/view"
)

// State is the disclosure state of one post.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Entry is the disclosure state of one mounted post.
type Entry struct {
	PostID int
	State  State
}

// Visible reports whether the post's comments are shown.
func (e Entry) Visible() bool {
	return e.State == Visible
}

type entry struct {
	state    State
	controls view.Controls
}

// Controller owns the comment-section class and toggle label of every
// mounted post. The two always change together, driven by the stored
// state; neither is read back to derive the other.
type Controller struct {
	entries map[int]*entry
	order   []int
	logger  *slog.Logger
}

// New creates an empty Controller. A nil logger discards.
func New(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{entries: make(map[int]*entry), logger: logger}
}

// Reset drops every entry and creates a Hidden one for each post in idx.
func (c *Controller) Reset(idx *view.Index) {
	c.Clear()
	for _, id := range idx.IDs() {
		controls, _ := idx.Lookup(id)
		e := &entry{state: Hidden, controls: controls}
		c.entries[id] = e
		c.order = append(c.order, id)
		apply(e)
	}
}

// Clear drops every entry. Mounted nodes are not touched.
func (c *Controller) Clear() {
	clear(c.entries)
	c.order = nil
}

// Toggle flips postID between Hidden and Visible and returns the new entry.
// It returns domain.ErrMissingID for a zero id and domain.ErrNotFound when
// postID is not mounted; neither case mutates anything.
func (c *Controller) Toggle(postID int) (Entry, error) {
	if postID == 0 {
		c.logger.Warn("post id not provided for toggle")
		return Entry{}, domain.ErrMissingID
	}
	e, ok := c.entries[postID]
	if !ok {
		c.logger.Warn("no comment section mounted for post", "post_id", postID)
		return Entry{}, fmt.Errorf("toggle post %d: %w", postID, domain.ErrNotFound)
	}

	if e.state == Hidden {
		e.state = Visible
	} else {
		e.state = Hidden
	}
	apply(e)
	c.logger.Debug("toggled comments", "post_id", postID, "state", e.state)
	return Entry{PostID: postID, State: e.state}, nil
}

// Lookup returns the entry for postID.
func (c *Controller) Lookup(postID int) (Entry, bool) {
	e, ok := c.entries[postID]
	if !ok {
		return Entry{}, false
	}
	return Entry{PostID: postID, State: e.state}, true
}

// Entries returns every entry in document order.
func (c *Controller) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Entry{PostID: id, State: c.entries[id].state})
	}
	return out
}

// Len returns the number of tracked posts.
func (c *Controller) Len() int {
	return len(c.order)
}

func apply(e *entry) {
	visible := e.state == Visible
	e.controls.Section.SetClass(view.ClassHide, !visible)
	if visible {
		e.controls.Button.Text = view.LabelHideComments
	} else {
		e.controls.Button.Text = view.LabelShowComments
	}
}
