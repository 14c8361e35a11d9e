package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/tui/disclosure"
	"github.com/CrestNiraj12/authordir/tui/listeners"
	"github.com/CrestNiraj12/authordir/tui/view"
)

// ViewState is everything a refresh cycle mutates: the mounted container,
// the post index built at mount time, per-post disclosure and the installed
// toggle listeners. Only the UI loop touches it.
type ViewState struct {
	Container  *view.Node
	Disclosure *disclosure.Controller
	Listeners  *listeners.Registry

	index      *view.Index
	generation int
	cancel     context.CancelFunc
	logger     *slog.Logger
}

// NewViewState creates a state whose container shows the default view.
func NewViewState(logger *slog.Logger) *ViewState {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &ViewState{
		Container:  view.NewNode(view.KindMain),
		Disclosure: disclosure.New(logger),
		logger:     logger,
	}
	s.Listeners = listeners.New(s.toggle, logger)
	s.Container.Append(view.DefaultView())
	s.index = view.BuildIndex(s.Container)
	return s
}

func (s *ViewState) toggle(postID int) {
	if _, err := s.Disclosure.Toggle(postID); err != nil {
		s.logger.Warn("toggle failed", "post_id", postID, "error", err)
	}
}

// Index returns the controls of the currently mounted posts.
func (s *ViewState) Index() *view.Index {
	return s.index
}

// Generation returns the number of refresh cycles begun so far.
func (s *ViewState) Generation() int {
	return s.generation
}

// PostIDs returns the mounted post ids in document order.
func (s *ViewState) PostIDs() []int {
	return s.index.IDs()
}

// Click activates postID's toggle control, running whatever listeners are
// installed on it, and returns how many ran.
func (s *ViewState) Click(postID int) (int, error) {
	if postID == 0 {
		return 0, domain.ErrMissingID
	}
	controls, ok := s.index.Lookup(postID)
	if !ok {
		return 0, fmt.Errorf("click post %d: %w", postID, domain.ErrNotFound)
	}
	return controls.Button.Click(), nil
}

// Render draws the mounted container.
func (s *ViewState) Render(opts view.RenderOptions) string {
	return view.Render(s.Container, opts)
}

// Stop cancels the in-flight cycle, if any.
func (s *ViewState) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// IsStale reports whether err means a cycle was superseded or canceled.
func IsStale(err error) bool {
	return errors.Is(err, domain.ErrStaleCycle) || errors.Is(err, context.Canceled)
}
