// Package api exposes the advisor HTTP surface: question answering,
// experience submission, and the moderation review queue.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careerpath/advisor/internal/conversation"
	"github.com/careerpath/advisor/internal/database"
	"github.com/careerpath/advisor/internal/domain"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
	"github.com/careerpath/advisor/internal/retrieval"
	"github.com/careerpath/advisor/internal/telemetry"
)

const defaultListLimit = 50

// Retriever finds context documents for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]retrieval.Document, error)
}

// HistoryStore persists per-session conversation history.
type HistoryStore interface {
	History(ctx context.Context, sessionID string) ([]conversation.Message, error)
	Save(ctx context.Context, sessionID string, history []conversation.Message) error
}

// ExperienceStore is the submission storage surface the handlers need.
type ExperienceStore interface {
	Create(ctx context.Context, sub *domain.UserSubmission) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.UserSubmission, error)
	Approve(ctx context.Context, id int64, embedding []float32) error
	Reject(ctx context.Context, id int64) error
	ListByStatus(ctx context.Context, status string, limit int) ([]*domain.UserSubmission, error)
}

// Enqueuer hands accepted submissions to the moderation pool.
type Enqueuer interface {
	Enqueue(id int64, text string) bool
}

// ReadinessCheck is one named dependency probe for /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler handles HTTP requests for the advisor API
type Handler struct {
	retriever   Retriever
	generator   mlclient.Generator
	embedder    mlclient.Embedder
	history     HistoryStore
	experiences ExperienceStore
	queue       Enqueuer
	telemetry   *telemetry.Provider
	logger      logging.Logger
	maxMessages int
	checks      []ReadinessCheck
	serviceName string
	version     string
}

// NewHandler creates a new API handler
func NewHandler(
	retriever Retriever,
	generator mlclient.Generator,
	embedder mlclient.Embedder,
	history HistoryStore,
	experiences ExperienceStore,
	queue Enqueuer,
	provider *telemetry.Provider,
	logger logging.Logger,
	maxMessages int,
	checks []ReadinessCheck,
	serviceName, version string,
) *Handler {
	return &Handler{
		retriever:   retriever,
		generator:   generator,
		embedder:    embedder,
		history:     history,
		experiences: experiences,
		queue:       queue,
		telemetry:   provider,
		logger:      logger,
		maxMessages: maxMessages,
		checks:      checks,
		serviceName: serviceName,
		version:     version,
	}
}

// Ask handles POST /api/v1/ask
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid ask request", logging.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	start := time.Now()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// History is best-effort: a Redis outage must not block answering.
	stored, err := h.history.History(ctx, sessionID)
	if err != nil {
		h.logger.Warn("failed to load conversation history",
			logging.String("session_id", sessionID),
			logging.Error(err),
		)
		stored = nil
	}
	bounded := conversation.Bound(stored, h.maxMessages)

	retrievalStart := time.Now()
	documents, err := h.retriever.Retrieve(ctx, req.Question)
	if err != nil {
		h.logger.Error("retrieval failed", logging.Error(err))
		h.telemetry.RecordAsk(ctx, "retrieval_error", time.Since(start))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     "knowledge base temporarily unavailable",
			Retryable: true,
		})
		return
	}
	h.telemetry.RecordRetrieval(ctx, len(documents), time.Since(retrievalStart))

	answer, err := h.generator.Generate(ctx, req.Question, contextText(documents), toTurns(bounded))
	if err != nil {
		h.logger.Error("generation failed", logging.Error(err))
		h.telemetry.RecordAsk(ctx, "generation_error", time.Since(start))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     "answer generation temporarily unavailable",
			Retryable: true,
		})
		return
	}

	// The saved history is the bounded window plus the new exchange.
	updated := conversation.WithTurn(bounded, req.Question, answer)
	if err := h.history.Save(ctx, sessionID, updated); err != nil {
		h.logger.Warn("failed to save conversation history",
			logging.String("session_id", sessionID),
			logging.Error(err),
		)
	}

	h.telemetry.RecordAsk(ctx, "ok", time.Since(start))

	c.JSON(http.StatusOK, AskResponse{
		Answer:    answer,
		Sources:   retrieval.Sources(documents),
		SessionID: sessionID,
	})
}

// contextText joins documents into the generator context block.
func contextText(documents []retrieval.Document) string {
	parts := make([]string, 0, len(documents))
	for _, doc := range documents {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n")
}

// toTurns converts history messages to generator turns.
func toTurns(history []conversation.Message) []mlclient.GeneratorTurn {
	turns := make([]mlclient.GeneratorTurn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, mlclient.GeneratorTurn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}

// SubmitExperience handles POST /api/v1/experiences
func (h *Handler) SubmitExperience(c *gin.Context) {
	var req SubmitExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid experience submission", logging.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sub := &domain.UserSubmission{
		PublicID:       uuid.NewString(),
		Title:          req.Title,
		Text:           req.Text,
		ExperienceType: req.ExperienceType,
	}

	if err := h.experiences.Create(c.Request.Context(), sub); err != nil {
		h.logger.Error("failed to store submission", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store submission"})
		return
	}

	h.telemetry.Metrics.SubmissionsReceived.Inc()

	// Moderation runs in the background; a full queue just leaves the row
	// pending for manual review.
	h.queue.Enqueue(sub.ID, sub.Text)

	h.logger.Info("experience submitted",
		logging.String("public_id", sub.PublicID),
		logging.String("experience_type", sub.ExperienceType),
	)

	c.JSON(http.StatusAccepted, toExperienceResponse(sub))
}

// GetExperience handles GET /api/v1/experiences/:id
func (h *Handler) GetExperience(c *gin.Context) {
	publicID := c.Param("id")

	sub, err := h.experiences.GetByPublicID(c.Request.Context(), publicID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "submission not found"})
			return
		}
		h.logger.Error("failed to load submission",
			logging.String("public_id", publicID),
			logging.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, toExperienceResponse(sub))
}

// ListExperiences handles GET /api/v1/experiences
func (h *Handler) ListExperiences(c *gin.Context) {
	status := c.DefaultQuery("status", domain.StatusPending)
	switch status {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status filter"})
		return
	}

	subs, err := h.experiences.ListByStatus(c.Request.Context(), status, defaultListLimit)
	if err != nil {
		h.logger.Error("failed to list submissions", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list submissions"})
		return
	}

	response := make([]ExperienceResponse, len(subs))
	for i, sub := range subs {
		response[i] = toExperienceResponse(sub)
	}

	c.JSON(http.StatusOK, ExperienceListResponse{
		Experiences: response,
		Total:       len(response),
	})
}

// ApproveExperience handles POST /api/v1/experiences/:id/approve
func (h *Handler) ApproveExperience(c *gin.Context) {
	publicID := c.Param("id")
	ctx := c.Request.Context()

	sub, err := h.experiences.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "submission not found"})
			return
		}
		h.logger.Error("failed to load submission for approval", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load submission"})
		return
	}

	// Approval is what makes a submission searchable, so the embedding is
	// computed here. An unreachable embedder blocks approval, not reads.
	embedding, err := h.embedder.Embed(ctx, sub.Text)
	if err != nil {
		h.logger.Error("failed to embed submission for approval",
			logging.String("public_id", publicID),
			logging.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     "embedding service unavailable",
			Retryable: true,
		})
		return
	}

	if err := h.experiences.Approve(ctx, sub.ID, embedding); err != nil {
		h.logger.Error("failed to approve submission", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to approve submission"})
		return
	}

	h.logger.Info("experience approved", logging.String("public_id", publicID))

	sub.Status = domain.StatusApproved
	c.JSON(http.StatusOK, toExperienceResponse(sub))
}

// RejectExperience handles POST /api/v1/experiences/:id/reject
func (h *Handler) RejectExperience(c *gin.Context) {
	publicID := c.Param("id")
	ctx := c.Request.Context()

	sub, err := h.experiences.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "submission not found"})
			return
		}
		h.logger.Error("failed to load submission for rejection", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load submission"})
		return
	}

	if err := h.experiences.Reject(ctx, sub.ID); err != nil {
		h.logger.Error("failed to reject submission", logging.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to reject submission"})
		return
	}

	h.logger.Info("experience rejected", logging.String("public_id", publicID))

	sub.Status = domain.StatusRejected
	c.JSON(http.StatusOK, toExperienceResponse(sub))
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	ready := true

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			checks[check.Name] = err.Error()
			ready = false
			continue
		}
		checks[check.Name] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
