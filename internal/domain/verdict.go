package domain

import (
	"strings"
	"time"
)

// Verdict is the result of one moderation pass over a submission. It is
// never persisted as its own row; it mutates the submission's fields.
type Verdict struct {
	CleanedText string
	Status      string
	Severity    string // empty when approved
	Reasons     []string
	FlaggedAt   *time.Time
}

// FlaggedReason joins all reasons into the single stored string.
// Empty when there are no reasons (stored as NULL).
func (v *Verdict) FlaggedReason() string {
	return strings.Join(v.Reasons, "; ")
}

// Flagged reports whether the verdict held the submission for review.
func (v *Verdict) Flagged() bool {
	return v.Status == StatusPending
}
