package mlclient

import (
	"context"
	"fmt"
)

// Embedder turns text into a unit-normalized fixed-dimension vector.
// Deterministic for the same model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbedClient is an HTTP client for the sentence-embedding sidecar.
type EmbedClient struct {
	baseURL string
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding    []float32 `json:"embedding"`
	ModelVersion string    `json:"model_version"`
}

// NewEmbedClient creates a new embedder client.
func NewEmbedClient(baseURL string) *EmbedClient {
	return &EmbedClient{baseURL: baseURL}
}

// Embed sends text to the sidecar and returns the embedding vector.
// Failures here are hard failures: a query that cannot be embedded cannot
// be answered from the corpus.
func (c *EmbedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	var result embedResponse
	if err := doPost(ctx, c.baseURL, "/embed", &embedRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrUnavailable)
	}
	return result.Embedding, nil
}

// Health checks if the embedder sidecar is healthy.
func (c *EmbedClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.baseURL)
}

func checkHealth(ctx context.Context, baseURL string) error {
	reachable, _, _, err := doHealth(ctx, baseURL)
	if err != nil {
		if !reachable {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	return nil
}
