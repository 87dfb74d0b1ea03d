//nolint:testpackage // Testing internal clients requires same package access
package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestEmbedClient_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "career question" {
			t.Errorf("unexpected text %q", req.Text)
		}
		_ = json.NewEncoder(w).Encode(embedResponse{
			Embedding:    []float32{0.1, 0.2, 0.3},
			ModelVersion: "all-MiniLM-L6-v2",
		})
	}))
	defer server.Close()

	client := NewEmbedClient(server.URL)
	vec, err := client.Embed(context.Background(), "career question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3-dim vector, got %d", len(vec))
	}
}

func TestEmbedClient_EmptyEmbeddingIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer server.Close()

	client := NewEmbedClient(server.URL)
	_, err := client.Embed(context.Background(), "q")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestEmbedClient_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewEmbedClient(server.URL)
	if _, err := client.Embed(context.Background(), "q"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestEmbedClient_UnreachableIsUnavailable(t *testing.T) {
	client := NewEmbedClient("http://127.0.0.1:1")
	if _, err := client.Embed(context.Background(), "q"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestToxicityClient_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(ToxicityResult{Label: "toxic", Score: 0.91})
	}))
	defer server.Close()

	client := NewToxicityClient(server.URL)
	result, err := client.ClassifyToxicity(context.Background(), "some text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != "toxic" || result.Score != 0.91 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestZeroShotClient_Classify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req zeroShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.CandidateLabels) != 2 {
			t.Errorf("unexpected labels %v", req.CandidateLabels)
		}
		if req.HypothesisTemplate != "This text is about {}." {
			t.Errorf("unexpected template %q", req.HypothesisTemplate)
		}
		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"career", "other"},
			Scores: []float64{0.8, 0.2},
		})
	}))
	defer server.Close()

	client := NewZeroShotClient(server.URL)
	scores, err := client.ClassifyZeroShot(context.Background(), "text",
		[]string{"career", "other"}, "This text is about {}.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores["career"] != 0.8 {
		t.Errorf("unexpected scores %v", scores)
	}
}

func TestZeroShotClient_LengthMismatchIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"a", "b"},
			Scores: []float64{0.9},
		})
	}))
	defer server.Close()

	client := NewZeroShotClient(server.URL)
	_, err := client.ClassifyZeroShot(context.Background(), "text", []string{"a", "b"}, "t")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGeneratorClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Question != "how to negotiate" {
			t.Errorf("unexpected question %q", req.Question)
		}
		if len(req.History) != 2 {
			t.Errorf("expected 2 history turns, got %d", len(req.History))
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Answer: "negotiate politely"})
	}))
	defer server.Close()

	client := NewGeneratorClient(server.URL, 10*time.Second)
	answer, err := client.Generate(context.Background(), "how to negotiate", "context block",
		[]GeneratorTurn{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "negotiate politely" {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestGeneratorClient_EmptyAnswerIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer server.Close()

	client := NewGeneratorClient(server.URL, time.Second)
	if _, err := client.Generate(context.Background(), "q", "", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRegistry_ClientsMemoized(t *testing.T) {
	registry := NewRegistry(RegistryConfig{
		EmbedderURL:  "http://embedder",
		ToxicityURL:  "http://toxicity",
		ZeroShotURL:  "http://zeroshot",
		GeneratorURL: "http://generator",
	})

	if registry.Embedder() != registry.Embedder() {
		t.Error("embedder must be constructed once")
	}
	if registry.Toxicity() != registry.Toxicity() {
		t.Error("toxicity client must be constructed once")
	}
	if registry.ZeroShot() != registry.ZeroShot() {
		t.Error("zero-shot client must be constructed once")
	}
	if registry.Generator() != registry.Generator() {
		t.Error("generator client must be constructed once")
	}
}

func TestHealth_ReportsFailingSidecar(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(healthResponse{ModelVersion: "v1"})
	}))
	defer healthy.Close()

	registry := NewRegistry(RegistryConfig{
		EmbedderURL: healthy.URL,
		ToxicityURL: "http://127.0.0.1:1",
		ZeroShotURL: healthy.URL,
	})

	err := registry.Health(context.Background())
	if err == nil {
		t.Fatal("expected health failure for unreachable toxicity sidecar")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
