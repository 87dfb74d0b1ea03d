package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/careerpath/advisor/internal/domain"
)

// CorpusRepository searches the combined knowledge corpus: ingested forum
// posts plus approved user submissions. Rows without an embedding are
// invisible to search.
type CorpusRepository struct {
	db *sqlx.DB
}

// NewCorpusRepository creates a new corpus repository.
func NewCorpusRepository(db *sqlx.DB) *CorpusRepository {
	return &CorpusRepository{db: db}
}

// searchQuery unions both corpora into one shape and ranks by cosine
// distance. The subquery exists so ORDER BY can reference the embedding
// column without exposing it to the caller.
const searchQuery = `
	SELECT id, item_id, title, text, source, date, url, score, num_comments,
	       experience_type, source_type
	FROM (
		(
			SELECT
				id,
				post_id AS item_id,
				title,
				COALESCE(text, '') AS text,
				source,
				date,
				post_link AS url,
				score,
				num_comments,
				NULL::text AS experience_type,
				'post' AS source_type,
				embedding
			FROM posts
			WHERE embedding IS NOT NULL
		)
		UNION ALL
		(
			SELECT
				id,
				public_id AS item_id,
				COALESCE(title, '') AS title,
				text,
				'user_experience' AS source,
				submitted_at::text AS date,
				NULL::text AS url,
				NULL::integer AS score,
				NULL::integer AS num_comments,
				experience_type,
				'user_experience' AS source_type,
				embedding
			FROM user_experiences
			WHERE embedding IS NOT NULL AND status = 'approved'
		)
	) combined
	ORDER BY embedding <=> $1
	LIMIT $2
`

// SearchNearest returns the k corpus items nearest to the query embedding.
func (r *CorpusRepository) SearchNearest(
	ctx context.Context,
	embedding []float32,
	k int,
) ([]*domain.RetrievedItem, error) {
	var items []*domain.RetrievedItem
	err := r.db.SelectContext(ctx, &items, searchQuery, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search corpus: %w", err)
	}
	return items, nil
}

// CommentsForPost returns up to limit comments for a post in storage order.
func (r *CorpusRepository) CommentsForPost(
	ctx context.Context,
	postID string,
	limit int,
) ([]*domain.Comment, error) {
	query := `
		SELECT id, comment_id, text, date, comment_link, post_id, created_at
		FROM comments
		WHERE post_id = $1
		LIMIT $2
	`

	var comments []*domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID, limit); err != nil {
		return nil, fmt.Errorf("failed to load comments for post %s: %w", postID, err)
	}
	return comments, nil
}
