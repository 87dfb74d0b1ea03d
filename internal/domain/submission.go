package domain

import "time"

// Submission lifecycle statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Moderation severities, highest first.
const (
	SeverityCritical = "critical"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// UserSubmission is a user-submitted experience. The embedding is only
// populated once the submission is approved, which is what makes it
// eligible for retrieval.
type UserSubmission struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	Title          string     `db:"title"`
	Text           string     `db:"text"`
	ExperienceType string     `db:"experience_type"`
	Status         string     `db:"status"`
	Severity       *string    `db:"severity"`
	FlaggedReason  *string    `db:"flagged_reason"`
	FlaggedAt      *time.Time `db:"flagged_at"`
	SubmittedAt    time.Time  `db:"submitted_at"`
	ApprovedAt     *time.Time `db:"approved_at"`
}

// Kind implements ContentItem.
func (s *UserSubmission) Kind() SourceKind { return SourceSubmission }

// Key implements ContentItem. Submissions have no URL; they are cited by
// their public ID.
func (s *UserSubmission) Key() string { return s.PublicID }

// Body implements ContentItem.
func (s *UserSubmission) Body() string { return s.Text }
