//nolint:testpackage // Testing internal moderation requires same package access
package moderation

import (
	"context"
	"strings"
	"testing"

	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
)

func TestSafetyClassifier_KeywordFamilies(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantReason string
	}{
		{"hate", "The interviewer was stupid and rude", "hate / harassment"},
		{"threats", "I will destroy you if you reject me", "threatening language"},
		{"self harm", "This job search makes me want to end my life", "self-harm language"},
		{"illegal advice", "Just lie on your resume, nobody checks", "illegal or unethical advice"},
	}

	clf := NewSafetyClassifier(logging.NewNop(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := clf.Check(context.Background(), tt.text)

			if !result.IsCritical {
				t.Fatalf("expected critical for %q", tt.text)
			}
			if len(result.Reasons) != 1 {
				t.Fatalf("expected 1 reason, got %v", result.Reasons)
			}
			if !strings.Contains(result.Reasons[0], tt.wantReason) {
				t.Errorf("expected reason containing %q, got %q", tt.wantReason, result.Reasons[0])
			}
		})
	}
}

func TestSafetyClassifier_MultipleFamilies(t *testing.T) {
	clf := NewSafetyClassifier(logging.NewNop(), nil)

	result := clf.Check(context.Background(), "You idiot, I will hurt you")

	if !result.IsCritical {
		t.Fatal("expected critical")
	}
	if len(result.Reasons) != 2 {
		t.Errorf("expected one reason per matched family, got %v", result.Reasons)
	}
}

func TestSafetyClassifier_CleanText(t *testing.T) {
	clf := NewSafetyClassifier(logging.NewNop(), nil)

	result := clf.Check(context.Background(), "The process was smooth and professional.")

	if result.IsCritical {
		t.Error("expected non-critical for clean text")
	}
	if len(result.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", result.Reasons)
	}
}

func TestSafetyClassifier_ModelFlagsToxic(t *testing.T) {
	toxicity := &fakeToxicity{result: &mlclient.ToxicityResult{Label: "toxic", Score: 0.93}}
	clf := NewSafetyClassifier(logging.NewNop(), toxicity)

	result := clf.Check(context.Background(), "perfectly polite words with hostile intent")

	if !result.IsCritical {
		t.Fatal("expected model flag to force critical")
	}
	if len(result.Reasons) != 1 {
		t.Fatalf("expected 1 reason, got %v", result.Reasons)
	}
	if !strings.Contains(result.Reasons[0], "toxic") || !strings.Contains(result.Reasons[0], "0.93") {
		t.Errorf("expected reason embedding label and confidence, got %q", result.Reasons[0])
	}
}

func TestSafetyClassifier_ModelBelowThreshold(t *testing.T) {
	toxicity := &fakeToxicity{result: &mlclient.ToxicityResult{Label: "toxic", Score: 0.65}}
	clf := NewSafetyClassifier(logging.NewNop(), toxicity)

	result := clf.Check(context.Background(), "borderline text")

	if result.IsCritical {
		t.Error("expected low-confidence model result to be ignored")
	}
}

func TestSafetyClassifier_NonToxicLabelIgnored(t *testing.T) {
	toxicity := &fakeToxicity{result: &mlclient.ToxicityResult{Label: "neutral", Score: 0.99}}
	clf := NewSafetyClassifier(logging.NewNop(), toxicity)

	result := clf.Check(context.Background(), "ordinary text")

	if result.IsCritical {
		t.Error("expected neutral label to be ignored regardless of score")
	}
}

func TestSafetyClassifier_ModelFailureSwallowed(t *testing.T) {
	toxicity := &fakeToxicity{err: errModelDown}
	clf := NewSafetyClassifier(logging.NewNop(), toxicity)

	result := clf.Check(context.Background(), "The process was smooth and professional.")

	if result.IsCritical {
		t.Error("model failure must degrade to keyword-only, not flag")
	}
	if len(result.Reasons) != 0 {
		t.Errorf("expected no reasons on model failure, got %v", result.Reasons)
	}
}

func TestSafetyClassifier_KeywordsStillFireWhenModelDown(t *testing.T) {
	toxicity := &fakeToxicity{err: errModelDown}
	clf := NewSafetyClassifier(logging.NewNop(), toxicity)

	result := clf.Check(context.Background(), "what a dumb process")

	if !result.IsCritical {
		t.Error("keyword check must survive model failure")
	}
}
