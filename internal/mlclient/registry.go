package mlclient

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Registry hands out the model clients, constructing each at most once on
// first use. Model construction is the expensive part on the sidecar end
// (model load), so the registry is built once per process and injected into
// the moderation pipeline and the retriever; tests substitute fakes.
type Registry struct {
	embedderURL      string
	toxicityURL      string
	zeroShotURL      string
	generatorURL     string
	generatorTimeout time.Duration

	embedOnce     sync.Once
	toxicityOnce  sync.Once
	zeroShotOnce  sync.Once
	generatorOnce sync.Once

	embedder  *EmbedClient
	toxicity  *ToxicityClient
	zeroShot  *ZeroShotClient
	generator *GeneratorClient
}

// RegistryConfig holds the sidecar base URLs.
type RegistryConfig struct {
	EmbedderURL      string
	ToxicityURL      string
	ZeroShotURL      string
	GeneratorURL     string
	GeneratorTimeout time.Duration
}

// NewRegistry creates a registry. No connections are made until a client
// is first requested.
func NewRegistry(cfg RegistryConfig) *Registry {
	return &Registry{
		embedderURL:      cfg.EmbedderURL,
		toxicityURL:      cfg.ToxicityURL,
		zeroShotURL:      cfg.ZeroShotURL,
		generatorURL:     cfg.GeneratorURL,
		generatorTimeout: cfg.GeneratorTimeout,
	}
}

// Embedder returns the process-wide embedder client.
func (r *Registry) Embedder() Embedder {
	r.embedOnce.Do(func() {
		r.embedder = NewEmbedClient(r.embedderURL)
	})
	return r.embedder
}

// Toxicity returns the process-wide toxicity client.
func (r *Registry) Toxicity() ToxicityClassifier {
	r.toxicityOnce.Do(func() {
		r.toxicity = NewToxicityClient(r.toxicityURL)
	})
	return r.toxicity
}

// ZeroShot returns the process-wide zero-shot client.
func (r *Registry) ZeroShot() ZeroShotClassifier {
	r.zeroShotOnce.Do(func() {
		r.zeroShot = NewZeroShotClient(r.zeroShotURL)
	})
	return r.zeroShot
}

// Generator returns the process-wide generator client.
func (r *Registry) Generator() Generator {
	r.generatorOnce.Do(func() {
		r.generator = NewGeneratorClient(r.generatorURL, r.generatorTimeout)
	})
	return r.generator
}

// Health checks the embedder and both classifier sidecars and returns the
// first failure. The generator is excluded: its failures surface per-request
// as retryable errors, and a slow generator should not flip readiness.
func (r *Registry) Health(ctx context.Context) error {
	r.Embedder()
	r.Toxicity()
	r.ZeroShot()

	if err := r.embedder.Health(ctx); err != nil {
		return fmt.Errorf("embedder: %w", err)
	}
	if err := r.toxicity.Health(ctx); err != nil {
		return fmt.Errorf("toxicity: %w", err)
	}
	if err := r.zeroShot.Health(ctx); err != nil {
		return fmt.Errorf("zero-shot: %w", err)
	}
	return nil
}
