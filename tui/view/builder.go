package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CrestNiraj12/authordir/app"
	"github.com/CrestNiraj12/authordir/domain"
)

const (
	LabelShowComments = "Show Comments"
	LabelHideComments = "Hide Comments"

	ClassComments          = "comments"
	ClassHide              = "hide"
	ClassDefaultText       = "default-text"
	ClassAuthorUnavailable = "author-unavailable"

	DefaultText           = "Select an Employee to display their posts."
	AuthorUnavailableText = "Author: unavailable"
)

// ElementWithText creates a leaf node. The class is set only when non-empty.
func ElementWithText(kind Kind, text, class string) *Node {
	n := NewNode(kind)
	n.Text = text
	n.AddClass(class)
	return n
}

// Comments renders one article per comment, in input order.
func Comments(comments []domain.Comment) *Node {
	frag := NewFragment()
	for _, c := range comments {
		article := NewNode(KindArticle)
		article.Append(ElementWithText(KindH3, c.Name, ""))
		article.Append(ElementWithText(KindParagraph, c.Body, ""))
		article.Append(ElementWithText(KindParagraph, "From: "+c.Email, ""))
		frag.Append(article)
	}
	return frag
}

// DefaultView is the placeholder shown when no author is selected.
func DefaultView() *Node {
	return ElementWithText(KindParagraph, DefaultText, ClassDefaultText)
}

// Builder composes posts into view fragments, fetching authors and comments
// as it goes.
type Builder struct {
	dir    app.DirectoryService
	logger *slog.Logger
}

// NewBuilder creates a Builder reading from dir. A nil logger discards.
func NewBuilder(dir app.DirectoryService, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{dir: dir, logger: logger}
}

// CommentSection builds the hidden comment section for postID.
func (b *Builder) CommentSection(ctx context.Context, postID int) (*Node, error) {
	if postID == 0 {
		b.logger.WarnContext(ctx, "post id not provided for comment section")
		return nil, domain.ErrMissingID
	}

	section := NewNode(KindSection)
	section.PostID = postID
	section.AddClass(ClassComments)
	section.AddClass(ClassHide)

	comments, err := b.dir.FetchPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("comments for post %d: %w", postID, err)
	}
	section.Append(Comments(comments))
	return section, nil
}

// Posts builds one article per post in input order. Authors are resolved
// one post at a time: a post's author lookup finishes before the next post
// starts, which bounds outbound requests to one at a time.
func (b *Builder) Posts(ctx context.Context, posts []domain.Post) (*Node, error) {
	if posts == nil {
		b.logger.WarnContext(ctx, "posts not provided for build")
		return nil, domain.ErrPostsNotProvided
	}

	frag := NewFragment()
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article := NewNode(KindArticle)
		article.Append(ElementWithText(KindH2, p.Title, ""))
		article.Append(ElementWithText(KindParagraph, p.Body, ""))
		article.Append(ElementWithText(KindParagraph, fmt.Sprintf("Post ID: %d", p.ID), ""))

		for _, n := range b.authorLines(ctx, p) {
			article.Append(n)
		}

		button := ElementWithText(KindButton, LabelShowComments, "")
		button.PostID = p.ID
		article.Append(button)

		section, err := b.CommentSection(ctx, p.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrMissingID) {
				return nil, err
			}
			// A post without an id cannot be correlated; render it without
			// a comment section.
			button.PostID = 0
		} else {
			article.Append(section)
		}

		frag.Append(article)
	}

	// A cancellation during the last post's fetches still invalidates the build.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frag, nil
}

// authorLines renders the author and catch-phrase paragraphs. When the
// author lookup degraded to the empty record, a single placeholder line is
// rendered instead.
func (b *Builder) authorLines(ctx context.Context, p domain.Post) []*Node {
	author, err := b.dir.FetchUser(ctx, p.UserID)
	if err != nil || author.IsZero() {
		b.logger.WarnContext(ctx, "author unavailable", "post_id", p.ID, "user_id", p.UserID)
		return []*Node{ElementWithText(KindParagraph, AuthorUnavailableText, ClassAuthorUnavailable)}
	}
	return []*Node{
		ElementWithText(KindParagraph, fmt.Sprintf("Author: %s with %s", author.Name, author.Company.Name), ""),
		ElementWithText(KindParagraph, author.Company.CatchPhrase, ""),
	}
}
