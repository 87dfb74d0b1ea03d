// Package textnorm holds the text cleaning primitives shared by the
// moderation pipeline and the retriever: PII redaction and word-boundary
// truncation.
package textnorm

import (
	"regexp"
	"strings"
)

// TruncationMarker is appended whenever text is cut at a word boundary.
const TruncationMarker = "... [truncated]"

// Redaction placeholders. Ordering of the redaction passes matters: emails
// first, then phone numbers, then URLs, so a later pattern never re-matches
// an earlier placeholder.
const (
	emailPlaceholder = "[EMAIL]"
	phonePlaceholder = "[PHONE]"
	urlPlaceholder   = "[URL]"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\+?\d[\d\-\s]{7,}\d\b`)
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// PIIResult is the outcome of one redaction pass.
type PIIResult struct {
	CleanedText string
	HadPII      bool
	Reasons     []string
}

// RedactPII finds and replaces emails, phone-like digit runs and URLs with
// placeholders. Each detected category contributes exactly one reason.
// Already-clean text is returned unchanged, which also makes the operation
// idempotent: placeholders never match any of the patterns.
func RedactPII(text string) PIIResult {
	result := PIIResult{CleanedText: text}

	if emailPattern.MatchString(result.CleanedText) {
		result.CleanedText = emailPattern.ReplaceAllString(result.CleanedText, emailPlaceholder)
		result.HadPII = true
		result.Reasons = append(result.Reasons, "contains email address (auto-redacted)")
	}

	if phonePattern.MatchString(result.CleanedText) {
		result.CleanedText = phonePattern.ReplaceAllString(result.CleanedText, phonePlaceholder)
		result.HadPII = true
		result.Reasons = append(result.Reasons, "contains phone number (auto-redacted)")
	}

	if urlPattern.MatchString(result.CleanedText) {
		result.CleanedText = urlPattern.ReplaceAllString(result.CleanedText, urlPlaceholder)
		result.HadPII = true
		result.Reasons = append(result.Reasons, "contains URL (auto-redacted)")
	}

	return result
}

// Truncate cuts text at maxLen, backs off to the last word boundary within
// range, and appends the truncation marker. Text already within the limit
// is returned unchanged.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + TruncationMarker
}

// CountURLs returns how many URL-like substrings occur in text. The spam
// rules run on PII-cleaned text, so redaction placeholders count as links.
func CountURLs(text string) int {
	return len(urlPattern.FindAllString(text, -1)) + strings.Count(text, urlPlaceholder)
}
