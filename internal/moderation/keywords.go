// Package moderation implements the multi-stage content moderation
// pipeline: PII redaction, safety, spam and relevance classification, and
// the publication decision that aggregates them.
package moderation

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
)

// maxModelChars caps the text sent to the ML sidecars. Matches the
// truncation the underlying transformer models apply anyway.
const maxModelChars = 512

// keywordSet wraps an Aho-Corasick matcher for one keyword family so all
// gates share the same single-pass substring matching.
type keywordSet struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

func newKeywordSet(keywords []string) *keywordSet {
	return &keywordSet{
		keywords: keywords,
		matcher:  ahocorasick.NewStringMatcher(keywords),
	}
}

// matches reports whether any keyword occurs in the lowercased text.
func (k *keywordSet) matches(lowered string) bool {
	return k.matcher.Contains([]byte(lowered))
}

// Keyword families for the safety classifier, checked in this order.
var (
	hateKeywords = newKeywordSet([]string{
		"idiot",
		"stupid",
		"dumb",
		"loser",
	})

	threatKeywords = newKeywordSet([]string{
		"kill you",
		"hurt you",
		"destroy you",
	})

	selfHarmKeywords = newKeywordSet([]string{
		"end my life",
		"kill myself",
	})

	illegalAdviceKeywords = newKeywordSet([]string{
		"lie on my resume",
		"lie on your resume",
		"fake experience",
		"cheat the test",
		"cheat the interview",
		"bribe",
		"insider info",
		"insider information",
	})
)

// promoKeywords feed the spam detector.
var promoKeywords = newKeywordSet([]string{
	"promo code",
	"discount",
	"affiliate",
	"sign up here",
	"dm me",
})

// careerKeywords gate the relevance decision: text with none of these is
// treated as off-topic regardless of the zero-shot score.
var careerKeywords = newKeywordSet([]string{
	"job", "work", "career", "internship", "interview",
	"resume", "cv", "promotion", "manager", "software engineer",
	"developer", "programmer", "data scientist", "tech company",
	"startup", "team lead", "product manager",
})
