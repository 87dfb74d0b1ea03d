//nolint:testpackage // Testing internal normalization requires same package access
package textnorm

import (
	"strings"
	"testing"
)

func TestRedactPII_Email(t *testing.T) {
	result := RedactPII("Reach me at jane.doe+test@example.com for details")

	if !result.HadPII {
		t.Fatal("expected HadPII=true for text with email")
	}
	if strings.Contains(result.CleanedText, "jane.doe+test@example.com") {
		t.Errorf("email not redacted: %q", result.CleanedText)
	}
	if !strings.Contains(result.CleanedText, "[EMAIL]") {
		t.Errorf("expected [EMAIL] placeholder, got %q", result.CleanedText)
	}
	if len(result.Reasons) != 1 {
		t.Errorf("expected 1 reason, got %d: %v", len(result.Reasons), result.Reasons)
	}
}

func TestRedactPII_Phone(t *testing.T) {
	result := RedactPII("Call me on +1 415-555-0123 anytime")

	if !result.HadPII {
		t.Fatal("expected HadPII=true for text with phone number")
	}
	if strings.Contains(result.CleanedText, "415-555-0123") {
		t.Errorf("phone not redacted: %q", result.CleanedText)
	}
	if !strings.Contains(result.CleanedText, "[PHONE]") {
		t.Errorf("expected [PHONE] placeholder, got %q", result.CleanedText)
	}
}

func TestRedactPII_URL(t *testing.T) {
	for _, raw := range []string{
		"Check https://example.com/jobs for openings",
		"Check www.example.com/jobs for openings",
	} {
		result := RedactPII(raw)
		if !result.HadPII {
			t.Errorf("expected HadPII=true for %q", raw)
		}
		if strings.Contains(result.CleanedText, "example.com") {
			t.Errorf("URL not redacted: %q", result.CleanedText)
		}
	}
}

func TestRedactPII_AllCategories(t *testing.T) {
	result := RedactPII("Email a@b.co or call 12345678901 or visit https://x.io")

	if len(result.Reasons) != 3 {
		t.Errorf("expected one reason per category, got %v", result.Reasons)
	}
}

func TestRedactPII_CleanTextIsIdentity(t *testing.T) {
	clean := "I had a great interview experience at a tech company."
	result := RedactPII(clean)

	if result.HadPII {
		t.Error("expected HadPII=false for clean text")
	}
	if result.CleanedText != clean {
		t.Errorf("clean text modified: %q", result.CleanedText)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", result.Reasons)
	}
}

func TestRedactPII_Idempotent(t *testing.T) {
	inputs := []string{
		"Contact spam@example.com and https://a.com and https://b.com",
		"Call +44 20 7946 0958 now",
		"nothing to redact here",
	}

	for _, input := range inputs {
		once := RedactPII(input)
		twice := RedactPII(once.CleanedText)
		if twice.CleanedText != once.CleanedText {
			t.Errorf("redaction not idempotent for %q: %q != %q",
				input, twice.CleanedText, once.CleanedText)
		}
	}
}

func TestTruncate_NoOpWithinLimit(t *testing.T) {
	text := "short text"
	if got := Truncate(text, 100); got != text {
		t.Errorf("expected no-op, got %q", got)
	}
	if got := Truncate(text, len(text)); got != text {
		t.Errorf("expected no-op at exact length, got %q", got)
	}
}

func TestTruncate_WordBoundary(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	got := Truncate(text, 20)

	if !strings.HasSuffix(got, TruncationMarker) {
		t.Fatalf("expected truncation marker, got %q", got)
	}

	body := strings.TrimSuffix(got, TruncationMarker)
	// Never cut mid-word: the kept text must be a prefix of the input
	// ending exactly where a word ends.
	if !strings.HasPrefix(text, body) {
		t.Fatalf("truncated body %q is not a prefix of input", body)
	}
	if text[len(body)] != ' ' {
		t.Errorf("cut mid-word: body %q followed by %q", body, string(text[len(body)]))
	}
}

func TestTruncate_NeverExceedsLimitPlusMarker(t *testing.T) {
	text := strings.Repeat("word ", 100)
	for _, maxLen := range []int{10, 25, 50, 499} {
		got := Truncate(text, maxLen)
		if len(got) > maxLen+len(TruncationMarker) {
			t.Errorf("maxLen=%d: result length %d exceeds limit", maxLen, len(got))
		}
	}
}
