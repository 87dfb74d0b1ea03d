package moderation

import (
	"strings"

	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/textnorm"
)

// spamLinkThreshold is the URL count at which text is treated as promotion.
const spamLinkThreshold = 2

// SpamDetector flags promotional content by link density and promo
// keywords. Purely heuristic, no model involved.
type SpamDetector struct {
	logger logging.Logger
}

// SpamResult is the outcome of one spam check.
type SpamResult struct {
	IsSpam  bool
	Reasons []string
}

// NewSpamDetector creates a spam detector.
func NewSpamDetector(logger logging.Logger) *SpamDetector {
	return &SpamDetector{logger: logger}
}

// Check evaluates the spam heuristics in fixed order: the URL-count rule
// first, then promo keywords, and only then the single-link advisory. A
// single link is not spam but still gets a reason so reviewers see it.
func (d *SpamDetector) Check(text string) SpamResult {
	lowered := strings.ToLower(text)
	urls := textnorm.CountURLs(text)

	var result SpamResult

	if urls >= spamLinkThreshold {
		result.IsSpam = true
		result.Reasons = append(result.Reasons, "many links (possible promotion)")
	}

	if promoKeywords.matches(lowered) {
		result.IsSpam = true
		result.Reasons = append(result.Reasons, "promotional language")
	}

	if !result.IsSpam && urls == 1 {
		result.Reasons = append(result.Reasons, "contains link (needs review)")
	}

	return result
}
