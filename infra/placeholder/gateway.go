package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/authordir/domain"
)

// Gateway implements app.DirectoryService against the JSONPlaceholder API.
// Remote failures are logged and replaced by safe defaults; they are never
// returned to the caller.
type Gateway struct {
	client *Client
	logger *slog.Logger
}

// NewGateway creates a DirectoryService backed by client.
// A nil logger discards diagnostics.
func NewGateway(client *Client, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{client: client, logger: logger}
}

// placeholderUser is the subset of the /users entity we care about.
type placeholderUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Company  struct {
		Name        string `json:"name"`
		CatchPhrase string `json:"catchPhrase"`
	} `json:"company"`
}

type placeholderPost struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type placeholderComment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

func (g *Gateway) FetchUsers(ctx context.Context) []domain.User {
	var users []placeholderUser
	if err := g.getJSON(ctx, "/users", nil, &users); err != nil {
		g.logger.ErrorContext(ctx, "fetching users failed", "error", err)
		return []domain.User{}
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, mapUser(u))
	}
	return out
}

func (g *Gateway) FetchUserPosts(ctx context.Context, userID int) ([]domain.Post, error) {
	if userID == 0 {
		g.logger.WarnContext(ctx, "user id not provided for posts lookup")
		return nil, domain.ErrMissingID
	}

	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))

	var posts []placeholderPost
	if err := g.getJSON(ctx, "/posts", q, &posts); err != nil {
		g.logger.ErrorContext(ctx, "fetching posts failed", "user_id", userID, "error", err)
		return []domain.Post{}, nil
	}

	return mapPosts(posts), nil
}

func (g *Gateway) FetchUser(ctx context.Context, userID int) (domain.User, error) {
	if userID == 0 {
		g.logger.WarnContext(ctx, "user id not provided for user lookup")
		return domain.User{}, domain.ErrMissingID
	}

	var u placeholderUser
	if err := g.getJSON(ctx, fmt.Sprintf("/users/%d", userID), nil, &u); err != nil {
		g.logger.ErrorContext(ctx, "fetching user failed", "user_id", userID, "error", err)
		return domain.User{}, nil
	}

	return mapUser(u), nil
}

func (g *Gateway) FetchPostComments(ctx context.Context, postID int) ([]domain.Comment, error) {
	if postID == 0 {
		g.logger.WarnContext(ctx, "post id not provided for comments lookup")
		return nil, domain.ErrMissingID
	}

	q := url.Values{}
	q.Set("postId", strconv.Itoa(postID))

	var comments []placeholderComment
	if err := g.getJSON(ctx, "/comments", q, &comments); err != nil {
		g.logger.ErrorContext(ctx, "fetching comments failed", "post_id", postID, "error", err)
		return []domain.Comment{}, nil
	}

	return mapComments(comments), nil
}

func (g *Gateway) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	data, err := g.client.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	g.logger.DebugContext(ctx, "fetched", "path", path, "query", query.Encode(), "bytes", len(data))
	return nil
}

func mapUser(u placeholderUser) domain.User {
	return domain.User{
		ID:       u.ID,
		Name:     sanitizeForTerminal(u.Name),
		Username: sanitizeForTerminal(u.Username),
		Email:    sanitizeForTerminal(u.Email),
		Company: domain.Company{
			Name:        sanitizeForTerminal(u.Company.Name),
			CatchPhrase: sanitizeForTerminal(u.Company.CatchPhrase),
		},
	}
}

func mapPosts(in []placeholderPost) []domain.Post {
	out := make([]domain.Post, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Post{
			ID:     p.ID,
			UserID: p.UserID,
			Title:  sanitizeForTerminal(p.Title),
			Body:   sanitizeForTerminal(p.Body),
		})
	}
	return out
}

func mapComments(in []placeholderComment) []domain.Comment {
	out := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Comment{
			ID:     c.ID,
			PostID: c.PostID,
			Name:   sanitizeForTerminal(c.Name),
			Email:  sanitizeForTerminal(c.Email),
			Body:   sanitizeForTerminal(c.Body),
		})
	}
	return out
}
