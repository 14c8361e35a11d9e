package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/infra/placeholder"
	"github.com/CrestNiraj12/authordir/infra/placeholder/placeholdertest"
	"github.com/CrestNiraj12/authordir/tui/view"
)

type recordHandler struct {
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) has(level slog.Level, msg string) bool {
	for _, r := range h.records {
		if r.Level == level && r.Message == msg {
			return true
		}
	}
	return false
}

func newOrchestrator(t *testing.T, f placeholdertest.Fixture) (*Orchestrator, *placeholdertest.API) {
	t.Helper()
	api := placeholdertest.New(t, f)
	gw := placeholder.NewGateway(placeholder.NewClient(api.URL(), time.Second), nil)
	return New(gw, nil), api
}

func twoPostFixture() placeholdertest.Fixture {
	f := placeholdertest.Sample()
	f.Posts = append(f.Posts, domain.Post{ID: 2, UserID: 1, Title: "T2", Body: "B2"})
	f.Comments = []domain.Comment{{ID: 1, PostID: 2, Name: "c", Body: "cb", Email: "c@x.io"}}
	return f
}

func mainTexts(n *view.Node) []string {
	var out []string
	n.Walk(func(c *view.Node) bool {
		if c.Text != "" {
			out = append(out, c.Text)
		}
		return true
	})
	return out
}

func TestRefresh_RendersScenarioPost(t *testing.T) {
	o, _ := newOrchestrator(t, placeholdertest.Sample())
	state := NewViewState(nil)
	ctx := context.Background()

	posts, err := o.dir.FetchUserPosts(ctx, 1)
	if err != nil {
		t.Fatalf("fetch posts: %v", err)
	}
	res, err := o.Refresh(ctx, state, posts)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	want := []string{"T", "B", "Post ID: 1", "Author: Leanne with Acme", "Go", "Show Comments"}
	if diff := cmp.Diff(want, mainTexts(state.Container)); diff != "" {
		t.Fatalf("mounted view mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, res.Attached); diff != "" {
		t.Fatalf("attached mismatch (-want +got):\n%s", diff)
	}
	controls, ok := state.Index().Lookup(1)
	if !ok {
		t.Fatalf("post 1 must be indexed")
	}
	if !controls.Section.HasClass(view.ClassHide) || len(controls.Section.Children()) != 0 {
		t.Fatalf("expected a hidden empty comment section")
	}
	if e, ok := state.Disclosure.Lookup(1); !ok || e.Visible() {
		t.Fatalf("disclosure must start hidden")
	}
}

func TestRefresh_EmptyPostsMountsOnlyDefaultView(t *testing.T) {
	o, _ := newOrchestrator(t, twoPostFixture())
	state := NewViewState(nil)
	ctx := context.Background()

	if _, err := o.Refresh(ctx, state, []domain.Post{{ID: 1, UserID: 1, Title: "T"}}); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	res, err := o.Refresh(ctx, state, []domain.Post{})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !res.Default {
		t.Fatalf("result must report the default view")
	}

	children := state.Container.Children()
	if len(children) != 1 || children[0].Text != view.DefaultText || !children[0].HasClass(view.ClassDefaultText) {
		t.Fatalf("expected exactly the default paragraph, got %v", mainTexts(state.Container))
	}
	if n := len(state.Container.FindAll(view.KindButton)); n != 0 {
		t.Fatalf("no toggle controls expected, got %d", n)
	}
	if state.Listeners.Len() != 0 || state.Disclosure.Len() != 0 {
		t.Fatalf("no bindings or disclosure entries expected")
	}
}

func TestRefresh_NilPostsIsNoOp(t *testing.T) {
	o, api := newOrchestrator(t, twoPostFixture())
	state := NewViewState(nil)
	ctx := context.Background()

	if _, err := o.Refresh(ctx, state, []domain.Post{{ID: 2, UserID: 1, Title: "T2"}}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := mainTexts(state.Container)
	gen := state.Generation()
	hits := api.Total()

	if _, err := o.Refresh(ctx, state, nil); !errors.Is(err, domain.ErrPostsNotProvided) {
		t.Fatalf("expected not-provided sentinel, got %v", err)
	}
	if diff := cmp.Diff(before, mainTexts(state.Container)); diff != "" {
		t.Fatalf("nil refresh must not mutate (-want +got):\n%s", diff)
	}
	if state.Generation() != gen || api.Total() != hits || state.Listeners.Len() != 1 {
		t.Fatalf("nil refresh must not begin a cycle or fetch")
	}
}

func TestRefresh_FreshStateShowsDefaultView(t *testing.T) {
	state := NewViewState(nil)
	children := state.Container.Children()
	if len(children) != 1 || children[0].Text != view.DefaultText {
		t.Fatalf("fresh view must show the placeholder, got %v", mainTexts(state.Container))
	}
	if n := len(state.Container.FindAll(view.KindButton)); n != 0 {
		t.Fatalf("no toggles expected on a fresh view, got %d", n)
	}
}

func TestRefresh_FullyReplacesPriorContent(t *testing.T) {
	o, _ := newOrchestrator(t, twoPostFixture())
	state := NewViewState(nil)
	ctx := context.Background()
	posts := []domain.Post{{ID: 1, UserID: 1, Title: "T"}, {ID: 2, UserID: 1, Title: "T2"}}

	if _, err := o.Refresh(ctx, state, posts); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	var old []*view.Node
	state.Container.Walk(func(n *view.Node) bool {
		if n != state.Container {
			old = append(old, n)
		}
		return true
	})
	oldButtons := state.Container.FindAll(view.KindButton)

	res, err := o.Refresh(ctx, state, posts)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	for _, n := range old {
		if state.Container.Contains(n) {
			t.Fatalf("node %q from the previous refresh is still mounted", n.Text)
		}
	}
	for _, b := range oldButtons {
		if b.ListenerCount() != 0 {
			t.Fatalf("outgoing button for post %d kept %d listeners", b.PostID, b.ListenerCount())
		}
	}
	if diff := cmp.Diff([]int{1, 2}, res.Cycle.Detached); diff != "" {
		t.Fatalf("detached mismatch (-want +got):\n%s", diff)
	}
	if res.Cycle.Removed != 2 {
		t.Fatalf("expected two articles removed, got %d", res.Cycle.Removed)
	}
}

func TestRefresh_RepeatedRefreshesToggleOncePerClick(t *testing.T) {
	o, _ := newOrchestrator(t, twoPostFixture())
	state := NewViewState(nil)
	ctx := context.Background()
	posts := []domain.Post{{ID: 2, UserID: 1, Title: "T2"}}

	for range 3 {
		if _, err := o.Refresh(ctx, state, posts); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}

	ran, err := state.Click(2)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if ran != 1 {
		t.Fatalf("expected one listener to run, got %d", ran)
	}
	controls, _ := state.Index().Lookup(2)
	if controls.Button.Text != view.LabelHideComments || controls.Section.HasClass(view.ClassHide) {
		t.Fatalf("one click must show comments exactly once")
	}
	if len(controls.Section.Children()) != 1 {
		t.Fatalf("expected the fetched comment to be mounted")
	}
}

func TestClick_UnknownAndMissing(t *testing.T) {
	state := NewViewState(nil)
	if _, err := state.Click(5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, err := state.Click(0); !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("expected missing-id, got %v", err)
	}
}

func TestCommit_DropsStaleCycle(t *testing.T) {
	o, _ := newOrchestrator(t, twoPostFixture())
	state := NewViewState(nil)
	ctx := context.Background()

	firstCtx, first := o.Begin(ctx, state)
	_, second := o.Begin(ctx, state)
	if firstCtx.Err() == nil {
		t.Fatalf("beginning a new cycle must cancel the previous one")
	}

	newer, err := o.Build(ctx, []domain.Post{{ID: 2, UserID: 1, Title: "newer"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := o.Commit(state, second, newer); err != nil {
		t.Fatalf("commit current: %v", err)
	}

	older, err := o.Build(ctx, []domain.Post{{ID: 1, UserID: 1, Title: "older"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := o.Commit(state, first, older); !errors.Is(err, domain.ErrStaleCycle) || !IsStale(err) {
		t.Fatalf("expected stale cycle, got %v", err)
	}

	titles := mainTexts(state.Container)
	if len(titles) == 0 || titles[0] != "newer" {
		t.Fatalf("latest selection must win, got %v", titles)
	}
	if state.Listeners.Bound(1) {
		t.Fatalf("stale fragment must not be bound")
	}
}

func TestFetchAndBuild_MissingUser(t *testing.T) {
	o, api := newOrchestrator(t, placeholdertest.Sample())
	if _, err := o.FetchAndBuild(context.Background(), 0); !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("expected missing-id, got %v", err)
	}
	if api.Total() != 0 {
		t.Fatalf("no request expected")
	}
}

func TestBootstrap_PopulatesOneOptionPerUser(t *testing.T) {
	f := placeholdertest.Sample()
	f.Users = append(f.Users, domain.User{ID: 2, Name: "Ervin"})
	o, _ := newOrchestrator(t, f)
	sel := NewSelector()

	var changed []int
	users := o.Bootstrap(context.Background(), sel, func(id int) tea.Cmd {
		changed = append(changed, id)
		return nil
	})
	if len(users) != 2 {
		t.Fatalf("expected two users, got %d", len(users))
	}
	want := []Option{{Value: 1, Label: "Leanne"}, {Value: 2, Label: "Ervin"}}
	if diff := cmp.Diff(want, sel.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	sel.Select(1)
	if diff := cmp.Diff([]int{2}, changed); diff != "" {
		t.Fatalf("change handler mismatch (-want +got):\n%s", diff)
	}
}

func TestBootstrap_UsersFailureLeavesSelectorEmpty(t *testing.T) {
	api := placeholdertest.New(t, placeholdertest.Sample())
	api.Fail("/users", http.StatusInternalServerError)
	logs := &recordHandler{}
	logger := slog.New(logs)
	gw := placeholder.NewGateway(placeholder.NewClient(api.URL(), time.Second), logger)
	o := New(gw, logger)
	sel := NewSelector()

	users := o.Bootstrap(context.Background(), sel, func(int) tea.Cmd { return nil })
	if len(users) != 0 || sel.Len() != 0 {
		t.Fatalf("expected zero options, got %d", sel.Len())
	}
	if !logs.has(slog.LevelError, "fetching users failed") {
		t.Fatalf("users failure must be logged")
	}
}
