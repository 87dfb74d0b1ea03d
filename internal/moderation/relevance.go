package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
)

// careerScoreThreshold is the minimum zero-shot career score for on-topic text.
const careerScoreThreshold = 0.45

// hypothesisTemplate phrases the entailment premise for zero-shot scoring.
const hypothesisTemplate = "This text is about {}."

// Candidate labels: the first three count as on-topic, the last two as
// off-topic. The full set is always sent so scores stay comparable.
var (
	onTopicLabels = []string{
		"career or job experience in tech",
		"interview preparation or job search",
		"professional growth or learning",
	}
	offTopicLabels = []string{
		"unrelated personal topic",
		"advertising or promotion",
	}
)

// RelevanceClassifier decides whether text is career-related. The
// zero-shot score and the career keyword gate must BOTH pass: the keyword
// gate guards against the model mis-scoring short or ambiguous text.
type RelevanceClassifier struct {
	zeroShot mlclient.ZeroShotClassifier
	logger   logging.Logger
}

// RelevanceResult is the outcome of one relevance check. ModelFailed marks
// a swallowed zero-shot call failure so the pipeline can count it.
type RelevanceResult struct {
	IsOffTopic  bool
	Reasons     []string
	ModelFailed bool
}

// NewRelevanceClassifier creates a relevance classifier. zeroShot may be
// nil, in which case only the keyword gate applies.
func NewRelevanceClassifier(logger logging.Logger, zeroShot mlclient.ZeroShotClassifier) *RelevanceClassifier {
	return &RelevanceClassifier{
		zeroShot: zeroShot,
		logger:   logger,
	}
}

// Check classifies text as on- or off-topic. A zero-shot failure is
// treated as no signal; the decision then rests on the keyword gate alone.
func (r *RelevanceClassifier) Check(ctx context.Context, text string) RelevanceResult {
	cleaned := stripWrappingQuotes(text)
	lowered := strings.ToLower(cleaned)
	hasCareerWords := careerKeywords.matches(lowered)

	careerScore, scoreKnown, modelFailed := r.careerScore(ctx, cleaned)

	var result RelevanceResult
	result.ModelFailed = modelFailed
	result.IsOffTopic = (scoreKnown && careerScore < careerScoreThreshold) || !hasCareerWords

	// Keyword absence dominates the reported reason even when the score
	// was high; the numeric reason only shows when the keyword gate passed.
	switch {
	case !hasCareerWords:
		result.Reasons = append(result.Reasons, "may be off-topic (no career-related words found)")
	case result.IsOffTopic:
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("may be off-topic (career relevance score %.2f)", careerScore))
	}

	return result
}

// careerScore returns the best on-topic score. known is false when no
// model is configured or the call failed; failed is true only for the
// latter.
func (r *RelevanceClassifier) careerScore(ctx context.Context, text string) (score float64, known, failed bool) {
	if r.zeroShot == nil {
		return 0, false, false
	}

	clipped := text
	if len(clipped) > maxModelChars {
		clipped = clipped[:maxModelChars]
	}

	labels := make([]string, 0, len(onTopicLabels)+len(offTopicLabels))
	labels = append(labels, onTopicLabels...)
	labels = append(labels, offTopicLabels...)

	scores, err := r.zeroShot.ClassifyZeroShot(ctx, clipped, labels, hypothesisTemplate)
	if err != nil {
		r.logger.Warn("zero-shot model unavailable, keyword-only relevance check",
			logging.Error(err))
		return 0, false, true
	}

	var best float64
	for _, label := range onTopicLabels {
		if s := scores[label]; s > best {
			best = s
		}
	}
	return best, true, false
}

// stripWrappingQuotes removes a single layer of matching quotes spanning
// the whole trimmed string, so quoted example or resume text is not judged
// as the author's own off-topic speech.
func stripWrappingQuotes(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		}
	}
	return trimmed
}
