package mlclient

import (
	"context"
	"fmt"
)

// ZeroShotClassifier scores text against an open candidate label set via
// natural-language entailment. Scores sum to 1 across the labels.
type ZeroShotClassifier interface {
	ClassifyZeroShot(ctx context.Context, text string, labels []string, hypothesisTemplate string) (map[string]float64, error)
}

// ZeroShotClient is an HTTP client for the zero-shot classification sidecar.
type ZeroShotClient struct {
	baseURL string
}

type zeroShotRequest struct {
	Text               string   `json:"text"`
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template"`
}

// zeroShotResponse mirrors the transformers pipeline output: labels sorted
// by score, scores aligned by index.
type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// NewZeroShotClient creates a new zero-shot client.
func NewZeroShotClient(baseURL string) *ZeroShotClient {
	return &ZeroShotClient{baseURL: baseURL}
}

// ClassifyZeroShot sends text and candidate labels to the sidecar and
// returns a label-to-score mapping.
func (c *ZeroShotClient) ClassifyZeroShot(
	ctx context.Context,
	text string,
	labels []string,
	hypothesisTemplate string,
) (map[string]float64, error) {
	req := &zeroShotRequest{
		Text:               text,
		CandidateLabels:    labels,
		HypothesisTemplate: hypothesisTemplate,
	}
	var result zeroShotResponse
	if err := doPost(ctx, c.baseURL, "/classify", req, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("%w: labels/scores length mismatch", ErrUnavailable)
	}

	scores := make(map[string]float64, len(result.Labels))
	for i, label := range result.Labels {
		scores[label] = result.Scores[i]
	}
	return scores, nil
}

// Health checks if the zero-shot sidecar is healthy.
func (c *ZeroShotClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.baseURL)
}
