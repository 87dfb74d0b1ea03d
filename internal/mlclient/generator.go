package mlclient

import (
	"context"
	"fmt"
	"time"
)

// GeneratorTurn is one prior conversation turn sent with a generation
// request.
type GeneratorTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces an answer grounded in retrieved context. The answer
// text is opaque to this service; prompting lives in the sidecar.
type Generator interface {
	Generate(ctx context.Context, question, contextText string, history []GeneratorTurn) (string, error)
}

// GeneratorClient calls the generation sidecar over HTTP. Generation is
// slow compared to the other sidecars, so it carries its own timeout.
type GeneratorClient struct {
	baseURL string
	timeout time.Duration
}

// NewGeneratorClient creates a client for the generator at baseURL.
func NewGeneratorClient(baseURL string, timeout time.Duration) *GeneratorClient {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &GeneratorClient{baseURL: baseURL, timeout: timeout}
}

type generateRequest struct {
	Question string          `json:"question"`
	Context  string          `json:"context"`
	History  []GeneratorTurn `json:"history,omitempty"`
}

type generateResponse struct {
	Answer       string `json:"answer"`
	ModelVersion string `json:"model_version"`
}

// Generate requests an answer for the question given the assembled context.
func (c *GeneratorClient) Generate(
	ctx context.Context,
	question, contextText string,
	history []GeneratorTurn,
) (string, error) {
	req := generateRequest{
		Question: question,
		Context:  contextText,
		History:  history,
	}

	var resp generateResponse
	if err := doPostWithTimeout(ctx, c.baseURL, "/generate", c.timeout, req, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.Answer == "" {
		return "", fmt.Errorf("%w: empty answer", ErrUnavailable)
	}

	return resp.Answer, nil
}

// Health checks the generator sidecar.
func (c *GeneratorClient) Health(ctx context.Context) error {
	return checkHealth(ctx, c.baseURL)
}
