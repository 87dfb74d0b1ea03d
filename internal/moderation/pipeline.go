package moderation

import (
	"context"
	"time"

	"github.com/careerpath/advisor/internal/domain"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
	"github.com/careerpath/advisor/internal/telemetry"
	"github.com/careerpath/advisor/internal/textnorm"
)

// Pipeline orchestrates redaction and the three classifiers into a single
// publication decision for a submission.
type Pipeline struct {
	safety    *SafetyClassifier
	spam      *SpamDetector
	relevance *RelevanceClassifier
	telemetry *telemetry.Provider
	logger    logging.Logger
	now       func() time.Time
}

// NewPipeline creates a moderation pipeline. The model clients come from
// the injected registry-backed interfaces; either may be nil for
// keyword-only operation. provider may be nil to skip metrics.
func NewPipeline(
	logger logging.Logger,
	toxicity mlclient.ToxicityClassifier,
	zeroShot mlclient.ZeroShotClassifier,
	provider *telemetry.Provider,
) *Pipeline {
	return &Pipeline{
		safety:    NewSafetyClassifier(logger, toxicity),
		spam:      NewSpamDetector(logger),
		relevance: NewRelevanceClassifier(logger, zeroShot),
		telemetry: provider,
		logger:    logger,
		now:       time.Now,
	}
}

// Validate runs the full moderation pass over raw submission text and
// returns a total verdict; it never fails. PII is redacted first and the
// classifiers all see the cleaned text. Reasons keep the fixed order
// [PII, safety, spam, relevance]; severity reflects only the first
// triggered condition in priority order even when several are true.
func (p *Pipeline) Validate(ctx context.Context, rawText string) domain.Verdict {
	start := p.now()

	pii := textnorm.RedactPII(rawText)
	safety := p.safety.Check(ctx, pii.CleanedText)
	spam := p.spam.Check(pii.CleanedText)
	relevance := p.relevance.Check(ctx, pii.CleanedText)

	if p.telemetry != nil {
		if safety.ModelFailed {
			p.telemetry.RecordClassifierFailure(ctx, "toxicity")
		}
		if relevance.ModelFailed {
			p.telemetry.RecordClassifierFailure(ctx, "zero_shot")
		}
	}

	reasons := make([]string, 0,
		len(pii.Reasons)+len(safety.Reasons)+len(spam.Reasons)+len(relevance.Reasons))
	reasons = append(reasons, pii.Reasons...)
	reasons = append(reasons, safety.Reasons...)
	reasons = append(reasons, spam.Reasons...)
	reasons = append(reasons, relevance.Reasons...)

	verdict := domain.Verdict{
		CleanedText: pii.CleanedText,
		Status:      domain.StatusApproved,
		Reasons:     reasons,
	}

	switch {
	case safety.IsCritical:
		verdict.Severity = domain.SeverityCritical
	case spam.IsSpam:
		verdict.Severity = domain.SeverityMedium
	case relevance.IsOffTopic:
		verdict.Severity = domain.SeverityLow
	case pii.HadPII:
		verdict.Severity = domain.SeverityMedium
	}

	if verdict.Severity != "" {
		verdict.Status = domain.StatusPending
		flaggedAt := start
		verdict.FlaggedAt = &flaggedAt
	}

	p.logger.Debug("moderation pass complete",
		logging.String("status", verdict.Status),
		logging.String("severity", verdict.Severity),
		logging.Int("reasons", len(verdict.Reasons)),
		logging.Duration("elapsed", p.now().Sub(start)),
	)

	return verdict
}
