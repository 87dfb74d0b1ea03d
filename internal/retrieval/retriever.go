// Package retrieval implements the hybrid nearest-neighbor search over the
// combined corpus and assembles retrieved rows into generator-ready context
// documents.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/careerpath/advisor/internal/config"
	"github.com/careerpath/advisor/internal/domain"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
	"github.com/careerpath/advisor/internal/textnorm"
)

// CorpusStore is the storage surface the retriever needs.
type CorpusStore interface {
	SearchNearest(ctx context.Context, embedding []float32, k int) ([]*domain.RetrievedItem, error)
	CommentsForPost(ctx context.Context, postID string, limit int) ([]*domain.Comment, error)
}

// Document is one assembled context document with its citation metadata.
type Document struct {
	Content string
	Source  Source
}

// Source is the citation metadata surfaced alongside an answer.
type Source struct {
	URL            *string           `json:"url"`
	PostID         string            `json:"post_id"`
	Source         string            `json:"source"`
	Date           string            `json:"date"`
	Score          *int              `json:"score"`
	NumComments    *int              `json:"num_comments"`
	ExperienceType string            `json:"experience_type,omitempty"`
	Kind           domain.SourceKind `json:"-"`
}

// Retriever embeds a question and searches the corpus for the nearest
// items. Unlike moderation, retrieval has no degraded mode: an unreachable
// embedder or database fails the whole operation.
type Retriever struct {
	embedder         mlclient.Embedder
	store            CorpusStore
	logger           logging.Logger
	tracer           trace.Tracer
	k                int
	maxContentLength int
	maxComments      int
}

// NewRetriever creates a retriever over the given embedder and store.
func NewRetriever(
	logger logging.Logger,
	embedder mlclient.Embedder,
	store CorpusStore,
	cfg config.RetrievalConfig,
) *Retriever {
	return &Retriever{
		embedder:         embedder,
		store:            store,
		logger:           logger,
		tracer:           otel.Tracer("advisor/retrieval"),
		k:                cfg.K,
		maxContentLength: cfg.MaxContentLength,
		maxComments:      cfg.MaxComments,
	}
}

// Retrieve returns up to k context documents nearest to the question.
// Fewer than k is not an error; the corpus may simply be small.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]Document, error) {
	ctx, span := r.tracer.Start(ctx, "retrieval.retrieve")
	defer span.End()

	embedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	hits, err := r.store.SearchNearest(ctx, embedding, r.k)
	if err != nil {
		return nil, fmt.Errorf("failed to search corpus: %w", err)
	}
	span.SetAttributes(attribute.Int("retrieval.hits", len(hits)))

	documents := make([]Document, 0, len(hits))
	for _, hit := range hits {
		content, err := r.assemble(ctx, hit)
		if err != nil {
			return nil, err
		}
		documents = append(documents, Document{
			Content: content,
			Source:  sourceFor(hit),
		})
	}

	r.logger.Debug("retrieval complete",
		logging.Int("requested", r.k),
		logging.Int("returned", len(documents)),
	)

	return documents, nil
}

// assemble renders one hit into context text. Body and comment block each
// get half the content budget so one cannot starve the other, and the
// whole document is capped once more at the end.
func (r *Retriever) assemble(ctx context.Context, hit *domain.RetrievedItem) (string, error) {
	body := textnorm.Truncate(hit.Body(), r.maxContentLength/2)

	if hit.Kind() == domain.SourceSubmission {
		label := ""
		if hit.ExperienceType != nil && *hit.ExperienceType != "" {
			label = fmt.Sprintf(" (%s)", strings.ReplaceAll(*hit.ExperienceType, "_", " "))
		}
		content := fmt.Sprintf("User Experience%s: %s", label, body)
		return textnorm.Truncate(content, r.maxContentLength), nil
	}

	content := fmt.Sprintf("Title: %s\n\nPost: %s", hit.Title, body)

	if hit.ItemID != "" {
		comments, err := r.store.CommentsForPost(ctx, hit.ItemID, r.maxComments)
		if err != nil {
			return "", fmt.Errorf("failed to load comments for %s: %w", hit.ItemID, err)
		}

		if len(comments) > 0 {
			content += "\n\nComments and Responses:"
			var b strings.Builder
			for _, comment := range comments {
				b.WriteString("\n")
				b.WriteString(comment.Text)
			}
			commentText := b.String()
			if len(commentText) > r.maxContentLength/2 {
				commentText = textnorm.Truncate(commentText, r.maxContentLength/2)
			}
			content += commentText
		}
	}

	return textnorm.Truncate(content, r.maxContentLength), nil
}

// sourceFor maps a hit to its citation metadata.
func sourceFor(hit *domain.RetrievedItem) Source {
	source := Source{
		PostID: hit.ItemID,
		Source: hit.Source,
		Date:   hit.Date,
		Kind:   hit.Kind(),
	}

	if hit.Kind() == domain.SourceSubmission {
		if hit.ExperienceType != nil {
			source.ExperienceType = *hit.ExperienceType
		}
		return source
	}

	source.URL = hit.URL
	source.Score = hit.Score
	source.NumComments = hit.NumComments
	return source
}

// Sources collapses document metadata into a deduplicated citation list in
// first-seen order. Posts dedup by URL, submissions by their public ID.
func Sources(documents []Document) []Source {
	seenURLs := make(map[string]bool)
	seenSubmissions := make(map[string]bool)

	sources := make([]Source, 0, len(documents))
	for _, doc := range documents {
		src := doc.Source

		if src.Kind == domain.SourceSubmission {
			if src.PostID == "" || seenSubmissions[src.PostID] {
				continue
			}
			seenSubmissions[src.PostID] = true
			sources = append(sources, src)
			continue
		}

		if src.URL == nil || *src.URL == "" || seenURLs[*src.URL] {
			continue
		}
		seenURLs[*src.URL] = true
		sources = append(sources, src)
	}

	return sources
}
