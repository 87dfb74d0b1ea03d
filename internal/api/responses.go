package api

import (
	"time"

	"github.com/careerpath/advisor/internal/domain"
	"github.com/careerpath/advisor/internal/retrieval"
)

// AskRequest is a question for the advisor. The session ID is optional; a
// missing one starts a fresh conversation.
type AskRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
}

// AskResponse carries the generated answer with its citations.
type AskResponse struct {
	Answer    string             `json:"answer"`
	Sources   []retrieval.Source `json:"sources"`
	SessionID string             `json:"session_id"`
}

// ErrorResponse is the uniform error shape. Retryable marks transient
// backend failures worth retrying client-side.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// SubmitExperienceRequest is a user-submitted experience.
type SubmitExperienceRequest struct {
	Title          string `json:"title"`
	Text           string `json:"text" binding:"required"`
	ExperienceType string `json:"experience_type"`
}

// ExperienceResponse is the public view of a submission. The row ID and
// embedding never leave the service.
type ExperienceResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title,omitempty"`
	Text           string     `json:"text"`
	ExperienceType string     `json:"experience_type,omitempty"`
	Status         string     `json:"status"`
	Severity       *string    `json:"severity,omitempty"`
	FlaggedReason  *string    `json:"flagged_reason,omitempty"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
}

// ExperienceListResponse is a page of submissions for the review queue.
type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	Total       int                  `json:"total"`
}

// toExperienceResponse converts a submission to its public view.
func toExperienceResponse(sub *domain.UserSubmission) ExperienceResponse {
	return ExperienceResponse{
		ID:             sub.PublicID,
		Title:          sub.Title,
		Text:           sub.Text,
		ExperienceType: sub.ExperienceType,
		Status:         sub.Status,
		Severity:       sub.Severity,
		FlaggedReason:  sub.FlaggedReason,
		SubmittedAt:    sub.SubmittedAt,
		ApprovedAt:     sub.ApprovedAt,
	}
}
