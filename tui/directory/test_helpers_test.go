package directory

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/authordir/domain"
	"github.com/CrestNiraj12/authordir/tui/refresh"
)

type stubDirectory struct {
	users    []domain.User
	posts    map[int][]domain.Post
	comments map[int][]domain.Comment
	postsErr error
}

func (s *stubDirectory) FetchUsers(context.Context) []domain.User {
	return append([]domain.User{}, s.users...)
}

func (s *stubDirectory) FetchUserPosts(ctx context.Context, userID int) ([]domain.Post, error) {
	if userID == 0 {
		return nil, domain.ErrMissingID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.postsErr != nil {
		return nil, s.postsErr
	}
	return append([]domain.Post{}, s.posts[userID]...), nil
}

func (s *stubDirectory) FetchUser(_ context.Context, userID int) (domain.User, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return domain.User{}, nil
}

func (s *stubDirectory) FetchPostComments(_ context.Context, postID int) ([]domain.Comment, error) {
	return append([]domain.Comment{}, s.comments[postID]...), nil
}

func sampleDirectory() *stubDirectory {
	return &stubDirectory{
		users: []domain.User{
			{ID: 1, Name: "Leanne", Company: domain.Company{Name: "Acme", CatchPhrase: "Go"}},
			{ID: 2, Name: "Ervin", Company: domain.Company{Name: "Deckow"}},
			{ID: 3, Name: "Clementine"},
		},
		posts: map[int][]domain.Post{
			1: {{ID: 10, UserID: 1, Title: "first", Body: "one"}, {ID: 11, UserID: 1, Title: "second", Body: "two"}},
			2: {{ID: 20, UserID: 2, Title: "ervin's", Body: "three"}},
		},
		comments: map[int][]domain.Comment{
			11: {{ID: 1, PostID: 11, Name: "nice", Email: "a@b.io", Body: "agreed"}},
		},
	}
}

func newModel(dir *stubDirectory, preferred int) Model {
	return New(refresh.New(dir, nil), preferred, nil)
}

// collect runs cmd and every command batched inside it, returning the
// resulting messages minus spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func loaded(t *testing.T, dir *stubDirectory) Model {
	t.Helper()
	m := newModel(dir, 0)
	m, _ = m.Update(UsersLoadedMsg{Users: dir.FetchUsers(context.Background())})
	return m
}

// pick selects userID from the authors pane and feeds the built posts back.
func pick(t *testing.T, m Model, userID int) Model {
	t.Helper()
	m.pane = authorsPane
	if !m.selector.SetCursorByValue(userID) {
		t.Fatalf("user %d is not an option", userID)
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	built, ok := findMsg[PostsBuiltMsg](collect(cmd))
	if !ok {
		t.Fatalf("selecting user %d produced no build", userID)
	}
	m, _ = m.Update(built)
	return m
}
