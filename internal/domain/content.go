// Package domain defines the core types shared across the advisor service.
package domain

import "time"

// EmbeddingDim is the fixed dimension of all corpus embeddings.
const EmbeddingDim = 384

// SourceKind discriminates the two corpus variants.
type SourceKind string

const (
	// SourcePost is moderated discussion content scraped from forums.
	SourcePost SourceKind = "post"
	// SourceSubmission is user-submitted experience text.
	SourceSubmission SourceKind = "user_experience"
)

// ContentItem is the retrieval-facing view shared by both corpus variants.
// Kind tags the variant, Key identifies the item for citation dedup
// (post link for posts, public ID for submissions), Body is the raw text
// fed into context assembly.
type ContentItem interface {
	Kind() SourceKind
	Key() string
	Body() string
}

// DiscussionPost is a scraped forum post with optional attached comments.
type DiscussionPost struct {
	ID          int64     `db:"id"`
	PostID      string    `db:"post_id"`
	Title       string    `db:"title"`
	Text        string    `db:"text"`
	FullText    string    `db:"full_text"`
	Source      string    `db:"source"`
	Date        string    `db:"date"`
	PostLink    string    `db:"post_link"`
	Score       int       `db:"score"`
	NumComments int       `db:"num_comments"`
	UpvoteRatio float64   `db:"upvote_ratio"`
	CreatedAt   time.Time `db:"created_at"`

	// Populated by the retriever, not stored on the posts row.
	Comments []Comment `db:"-"`
}

// Kind implements ContentItem.
func (p *DiscussionPost) Kind() SourceKind { return SourcePost }

// Key implements ContentItem. Posts are cited by their external link.
func (p *DiscussionPost) Key() string { return p.PostLink }

// Body implements ContentItem.
func (p *DiscussionPost) Body() string { return p.Text }

// Comment is a forum comment attached to its parent post. Comments are
// immutable after ingestion and never retrieved standalone.
type Comment struct {
	ID          int64     `db:"id"`
	CommentID   string    `db:"comment_id"`
	Text        string    `db:"text"`
	Date        string    `db:"date"`
	CommentLink string    `db:"comment_link"`
	PostID      string    `db:"post_id"`
	CreatedAt   time.Time `db:"created_at"`
}
