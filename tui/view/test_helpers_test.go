package view

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/authordir/domain"
)

type stubDirectory struct {
	users    map[int]domain.User
	posts    map[int][]domain.Post
	comments map[int][]domain.Comment
	calls    []string
	onCall   func(call string)
}

func (s *stubDirectory) record(call string) {
	s.calls = append(s.calls, call)
	if s.onCall != nil {
		s.onCall(call)
	}
}

func (s *stubDirectory) FetchUsers(context.Context) []domain.User {
	s.record("users")
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}

func (s *stubDirectory) FetchUserPosts(_ context.Context, userID int) ([]domain.Post, error) {
	if userID == 0 {
		return nil, domain.ErrMissingID
	}
	s.record(fmt.Sprintf("posts:%d", userID))
	return append([]domain.Post{}, s.posts[userID]...), nil
}

func (s *stubDirectory) FetchUser(_ context.Context, userID int) (domain.User, error) {
	if userID == 0 {
		return domain.User{}, domain.ErrMissingID
	}
	s.record(fmt.Sprintf("user:%d", userID))
	return s.users[userID], nil
}

func (s *stubDirectory) FetchPostComments(_ context.Context, postID int) ([]domain.Comment, error) {
	if postID == 0 {
		return nil, domain.ErrMissingID
	}
	s.record(fmt.Sprintf("comments:%d", postID))
	return append([]domain.Comment{}, s.comments[postID]...), nil
}

func leanne() domain.User {
	return domain.User{ID: 1, Name: "Leanne", Company: domain.Company{Name: "Acme", CatchPhrase: "Go"}}
}

func texts(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text)
	}
	return out
}
