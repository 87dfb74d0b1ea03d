//nolint:testpackage // Testing internal domain types requires same package access
package domain

import "testing"

func TestVerdict_FlaggedReason(t *testing.T) {
	v := &Verdict{Reasons: []string{"contains email address (auto-redacted)", "many links (possible promotion)"}}
	want := "contains email address (auto-redacted); many links (possible promotion)"
	if got := v.FlaggedReason(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	empty := &Verdict{}
	if got := empty.FlaggedReason(); got != "" {
		t.Errorf("expected empty reason string, got %q", got)
	}
}

func TestVerdict_Flagged(t *testing.T) {
	if !(&Verdict{Status: StatusPending}).Flagged() {
		t.Error("pending verdict must report flagged")
	}
	if (&Verdict{Status: StatusApproved}).Flagged() {
		t.Error("approved verdict must not report flagged")
	}
}

func TestRetrievedItem_Kind(t *testing.T) {
	post := &RetrievedItem{SourceType: "post"}
	if post.Kind() != SourcePost {
		t.Errorf("got %q, want %q", post.Kind(), SourcePost)
	}

	sub := &RetrievedItem{SourceType: "user_experience"}
	if sub.Kind() != SourceSubmission {
		t.Errorf("got %q, want %q", sub.Kind(), SourceSubmission)
	}
}
