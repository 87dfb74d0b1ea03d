package mlclient

import (
	"context"
	"fmt"
)

// ToxicityClassifier scores text on a binary/ternary toxicity scale.
type ToxicityClassifier interface {
	ClassifyToxicity(ctx context.Context, text string) (*ToxicityResult, error)
}

// ToxicityResult is the label and confidence returned by the toxicity sidecar.
type ToxicityResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ToxicityClient is an HTTP client for the toxicity classification sidecar.
type ToxicityClient struct {
	baseURL string
}

type toxicityRequest struct {
	Text string `json:"text"`
}

// NewToxicityClient creates a new toxicity client.
func NewToxicityClient(baseURL string) *ToxicityClient {
	return &ToxicityClient{baseURL: baseURL}
}

// ClassifyToxicity sends text to the sidecar for classification.
func (c *ToxicityClient) ClassifyToxicity(ctx context.Context, text string) (*ToxicityResult, error) {
	var result ToxicityResult
	if err := doPost(ctx, c.baseURL, "/classify", &toxicityRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &result, nil
}

// Health checks if the toxicity sidecar is healthy.
func (c *ToxicityClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.baseURL)
}
