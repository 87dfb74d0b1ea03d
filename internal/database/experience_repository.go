package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/careerpath/advisor/internal/domain"
)

// ErrNotFound is returned when no submission matches the given identifier.
var ErrNotFound = errors.New("submission not found")

// ExperienceRepository handles database operations for user submissions.
type ExperienceRepository struct {
	db *sqlx.DB
}

// NewExperienceRepository creates a new experience repository.
func NewExperienceRepository(db *sqlx.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// Create inserts a new submission in pending state. The caller provides the
// public ID; the database assigns the row ID and submission time.
func (r *ExperienceRepository) Create(ctx context.Context, sub *domain.UserSubmission) error {
	query := `
		INSERT INTO user_experiences (public_id, title, text, experience_type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		sub.PublicID,
		sub.Title,
		sub.Text,
		sub.ExperienceType,
		domain.StatusPending,
	).Scan(&sub.ID, &sub.SubmittedAt)

	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	sub.Status = domain.StatusPending
	return nil
}

// GetByPublicID retrieves a submission by its public identifier.
func (r *ExperienceRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*domain.UserSubmission, error) {
	query := `
		SELECT id, public_id, title, text, experience_type, status, severity,
		       flagged_reason, flagged_at, submitted_at, approved_at
		FROM user_experiences
		WHERE public_id = $1
	`

	var sub domain.UserSubmission
	err := r.db.GetContext(ctx, &sub, query, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &sub, nil
}

// ApplyVerdict records a moderation outcome: the redacted text always
// replaces the original, and a flagged verdict parks the row in pending
// with its severity and reasons. An approved verdict stores the embedding
// and publishes the row in one step.
func (r *ExperienceRepository) ApplyVerdict(
	ctx context.Context,
	id int64,
	verdict domain.Verdict,
	embedding []float32,
) error {
	if verdict.Flagged() {
		query := `
			UPDATE user_experiences
			SET text = $1, status = $2, severity = $3, flagged_reason = $4, flagged_at = $5
			WHERE id = $6
		`
		return r.exec(ctx, id, query,
			verdict.CleanedText,
			domain.StatusPending,
			verdict.Severity,
			verdict.FlaggedReason(),
			verdict.FlaggedAt,
			id,
		)
	}

	query := `
		UPDATE user_experiences
		SET text = $1, status = $2, embedding = $3, approved_at = NOW()
		WHERE id = $4
	`
	return r.exec(ctx, id, query,
		verdict.CleanedText,
		domain.StatusApproved,
		pgvector.NewVector(embedding),
		id,
	)
}

// Approve publishes a pending submission after manual review. The
// embedding is computed at approval time so only published rows carry one.
func (r *ExperienceRepository) Approve(ctx context.Context, id int64, embedding []float32) error {
	query := `
		UPDATE user_experiences
		SET status = $1, embedding = $2, approved_at = NOW()
		WHERE id = $3
	`
	return r.exec(ctx, id, query, domain.StatusApproved, pgvector.NewVector(embedding), id)
}

// Reject marks a submission rejected. The row is kept for audit but never
// becomes searchable.
func (r *ExperienceRepository) Reject(ctx context.Context, id int64) error {
	query := `UPDATE user_experiences SET status = $1 WHERE id = $2`
	return r.exec(ctx, id, query, domain.StatusRejected, id)
}

// ListByStatus returns submissions in the given state, oldest first, for
// the review queue.
func (r *ExperienceRepository) ListByStatus(
	ctx context.Context,
	status string,
	limit int,
) ([]*domain.UserSubmission, error) {
	query := `
		SELECT id, public_id, title, text, experience_type, status, severity,
		       flagged_reason, flagged_at, submitted_at, approved_at
		FROM user_experiences
		WHERE status = $1
		ORDER BY submitted_at ASC
		LIMIT $2
	`

	var subs []*domain.UserSubmission
	if err := r.db.SelectContext(ctx, &subs, query, status, limit); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// exec runs a single-row update and maps zero affected rows to ErrNotFound.
func (r *ExperienceRepository) exec(ctx context.Context, id int64, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update submission %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
