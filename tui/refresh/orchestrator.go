// Package refresh runs refresh cycles: detach listeners, clear the view,
// build the next view from remote data, mount it and attach listeners.
package refresh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/authordir/app"
	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/tui/view"
)

// Cycle identifies one refresh cycle.
type Cycle struct {
	ID         string
	Generation int
	Started    time.Time

	Detached []int // post ids unbound from the outgoing view
	Removed  int   // top-level nodes cleared from the container
}

// Result describes a committed cycle.
type Result struct {
	Cycle    Cycle
	Attached []int // post ids bound in the new view
	Default  bool  // the placeholder view was mounted
	Elapsed  time.Duration
}

// Orchestrator drives refresh cycles against a ViewState.
type Orchestrator struct {
	dir     app.DirectoryService
	builder *view.Builder
	logger  *slog.Logger
}

// New creates an Orchestrator reading from dir. A nil logger discards.
func New(dir app.DirectoryService, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		dir:     dir,
		builder: view.NewBuilder(dir, logger),
		logger:  logger,
	}
}

// Refresh replaces everything mounted in state with a view of posts.
// A nil posts slice is the not-provided case: nothing is touched and
// domain.ErrPostsNotProvided is returned. An empty slice mounts the default
// view.
func (o *Orchestrator) Refresh(ctx context.Context, state *ViewState, posts []domain.Post) (Result, error) {
	if posts == nil {
		o.logger.WarnContext(ctx, "posts not provided for refresh")
		return Result{}, domain.ErrPostsNotProvided
	}
	ctx, cycle := o.Begin(ctx, state)
	frag, err := o.Build(ctx, posts)
	if err != nil {
		return Result{Cycle: cycle}, err
	}
	return o.Commit(state, cycle, frag)
}

// Begin supersedes any in-flight cycle, unbinds every listener and clears
// the container. The returned context is canceled when a later cycle
// begins.
func (o *Orchestrator) Begin(parent context.Context, state *ViewState) (context.Context, Cycle) {
	state.Stop()
	ctx, cancel := context.WithCancel(parent)
	state.cancel = cancel
	state.generation++

	cycle := Cycle{
		ID:         uuid.NewString(),
		Generation: state.generation,
		Started:    time.Now(),
	}
	cycle.Detached = state.Listeners.DetachAll()
	cycle.Removed = len(state.Container.Clear())
	state.Disclosure.Clear()
	state.index = view.BuildIndex(nil)

	o.logger.DebugContext(ctx, "refresh begun",
		"cycle", cycle.ID,
		"generation", cycle.Generation,
		"detached", len(cycle.Detached),
		"removed", cycle.Removed,
	)
	return ctx, cycle
}

// Build produces the next view fragment. It does not touch any ViewState
// and is safe to run off the UI loop.
func (o *Orchestrator) Build(ctx context.Context, posts []domain.Post) (*view.Node, error) {
	if posts == nil {
		return nil, domain.ErrPostsNotProvided
	}
	if len(posts) == 0 {
		frag := view.NewFragment()
		frag.Append(view.DefaultView())
		return frag, nil
	}
	frag, err := o.builder.Posts(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("building posts: %w", err)
	}
	return frag, nil
}

// FetchAndBuild loads userID's posts and builds their view.
func (o *Orchestrator) FetchAndBuild(ctx context.Context, userID int) (*view.Node, error) {
	posts, err := o.dir.FetchUserPosts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("posts for user %d: %w", userID, err)
	}
	return o.Build(ctx, posts)
}

// Commit mounts frag and binds its toggles, unless a newer cycle has begun
// since cycle, in which case frag is dropped and domain.ErrStaleCycle is
// returned.
func (o *Orchestrator) Commit(state *ViewState, cycle Cycle, frag *view.Node) (Result, error) {
	if cycle.Generation != state.generation {
		o.logger.Debug("dropping stale refresh",
			"cycle", cycle.ID,
			"generation", cycle.Generation,
			"current", state.generation,
		)
		return Result{Cycle: cycle}, fmt.Errorf("cycle %d superseded by %d: %w", cycle.Generation, state.generation, domain.ErrStaleCycle)
	}
	if frag == nil {
		return Result{Cycle: cycle}, domain.ErrPostsNotProvided
	}

	state.Container.Append(frag)
	state.index = view.BuildIndex(state.Container)
	state.Disclosure.Reset(state.index)
	attached := state.Listeners.AttachAll(state.index)
	state.Stop()

	res := Result{
		Cycle:    cycle,
		Attached: attached,
		Default:  state.index.Len() == 0,
		Elapsed:  time.Since(cycle.Started),
	}
	o.logger.Info("refresh committed",
		"cycle", cycle.ID,
		"generation", cycle.Generation,
		"posts", len(attached),
		"elapsed", res.Elapsed,
	)
	return res, nil
}
