package app

import (
	"context"

	"github.com/CrestNiraj12/authordir/domain"
)

// DirectoryService reads authors, posts and comments from a remote source.
//
// Implementations never surface remote failures: a failed read is logged and
// converted to an empty slice or the zero User with a nil error. The only
// error returned is domain.ErrMissingID, when a required id is zero and no
// request was made.
type DirectoryService interface {
	// FetchUsers returns every author.
	FetchUsers(ctx context.Context) []domain.User

	// FetchUserPosts returns the posts written by userID.
	FetchUserPosts(ctx context.Context, userID int) ([]domain.Post, error)

	// FetchUser returns a single author, or the zero User when the read fails.
	FetchUser(ctx context.Context, userID int) (domain.User, error)

	// FetchPostComments returns the comments on postID.
	FetchPostComments(ctx context.Context, postID int) ([]domain.Comment, error)
}
