package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
)

// toxicityThreshold is the minimum model confidence required to flag text.
const toxicityThreshold = 0.70

// SafetyClassifier detects hate, threats, self-harm language and illegal
// advice via keyword families, backed by an optional toxicity model.
type SafetyClassifier struct {
	toxicity mlclient.ToxicityClassifier
	logger   logging.Logger
}

// SafetyResult is the outcome of one safety check. ModelFailed marks a
// swallowed toxicity call failure so the pipeline can count it.
type SafetyResult struct {
	IsCritical  bool
	Reasons     []string
	ModelFailed bool
}

// safetyFamily pairs a keyword set with the reason reported on match.
type safetyFamily struct {
	keywords *keywordSet
	reason   string
}

// Families run in fixed order; the first hit within a family short-circuits
// that family but later families still run, so one text can collect
// multiple reasons.
var safetyFamilies = []safetyFamily{
	{hateKeywords, "hate / harassment language (keyword)"},
	{threatKeywords, "threatening language (keyword)"},
	{selfHarmKeywords, "self-harm language (keyword)"},
	{illegalAdviceKeywords, "illegal or unethical advice (keyword)"},
}

// NewSafetyClassifier creates a safety classifier. toxicity may be nil to
// run keyword-only.
func NewSafetyClassifier(logger logging.Logger, toxicity mlclient.ToxicityClassifier) *SafetyClassifier {
	return &SafetyClassifier{
		toxicity: toxicity,
		logger:   logger,
	}
}

// Check runs the keyword families and the toxicity model against text.
// Model failures are swallowed: safety classification degrades to
// keyword-only rather than blocking submissions.
func (s *SafetyClassifier) Check(ctx context.Context, text string) SafetyResult {
	lowered := strings.ToLower(text)

	var result SafetyResult
	for _, family := range safetyFamilies {
		if family.keywords.matches(lowered) {
			result.Reasons = append(result.Reasons, family.reason)
			result.IsCritical = true
		}
	}

	if s.toxicity == nil {
		return result
	}

	clipped := text
	if len(clipped) > maxModelChars {
		clipped = clipped[:maxModelChars]
	}

	model, err := s.toxicity.ClassifyToxicity(ctx, clipped)
	if err != nil {
		s.logger.Warn("toxicity model unavailable, keyword-only safety check",
			logging.Error(err))
		result.ModelFailed = true
		return result
	}

	label := strings.ToLower(model.Label)
	if (strings.Contains(label, "toxic") || strings.Contains(label, "negative")) && model.Score >= toxicityThreshold {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("model flagged text as %s (score %.2f)", label, model.Score))
		result.IsCritical = true
	}

	return result
}
