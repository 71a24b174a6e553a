package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lgc202/modelkit/config"
	"github.com/lgc202/modelkit/llm"
)

type fakeInventory struct {
	names []string
	err   error
}

func (f *fakeInventory) Installed(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func mustConfig(t *testing.T, gen any) llm.ProviderConfig {
	t.Helper()
	cfg, ok := llm.ConfigOf(gen)
	if !ok {
		t.Fatalf("handle %T does not report its config", gen)
	}
	return cfg
}

func TestGeneration_InvalidProvider(t *testing.T) {
	r := New(config.Settings{Provider: "azure"})
	_, err := r.Generation(context.Background(), false, 0.0)
	ce, ok := llm.AsConfigError(err)
	if !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(ce.Reason, "invalid provider") {
		t.Fatalf("Reason=%q", ce.Reason)
	}
	if !strings.Contains(ce.Remediation, "LLM_PROVIDER") {
		t.Fatalf("Remediation=%q", ce.Remediation)
	}
}

func TestGeneration_TemperatureOutOfRange(t *testing.T) {
	r := New(config.Settings{Provider: "ollama"})
	if _, err := r.Generation(context.Background(), false, 1.5); err == nil {
		t.Fatalf("expected error")
	} else if _, ok := llm.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGeneration_GeneralModelNoThinking(t *testing.T) {
	r := New(
		config.Settings{Provider: "ollama"},
		WithInventory(&fakeInventory{names: []string{"llama3.1:8b", "nomic-embed-text"}}),
	)
	gen, err := r.Generation(context.Background(), false, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "llama3.1" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.Thinking {
		t.Fatalf("Thinking=true, want false")
	}
}

func TestGeneration_ThinkingOverrideEnablesTrace(t *testing.T) {
	r := New(config.Settings{
		Provider:            "ollama",
		OllamaThinkingModel: "qwen3:30b",
	})
	gen, err := r.Generation(context.Background(), true, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "qwen3:30b" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if !cfg.Thinking {
		t.Fatalf("Thinking=false, want true")
	}
}

// Thinking mode does not propagate when the resolution fell back to a
// general override.
func TestGeneration_GeneralOverrideDisablesTrace(t *testing.T) {
	r := New(config.Settings{
		Provider:    "ollama",
		OllamaModel: "llama3.1",
	})
	gen, err := r.Generation(context.Background(), true, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "llama3.1" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.Thinking {
		t.Fatalf("Thinking=true, want false")
	}
}

func TestGeneration_ThinkingOverrideIgnoredWithoutPreference(t *testing.T) {
	r := New(
		config.Settings{
			Provider:            "ollama",
			OllamaThinkingModel: "qwen3",
		},
		WithInventory(&fakeInventory{names: []string{"llama3.1:latest"}}),
	)
	gen, err := r.Generation(context.Background(), false, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "llama3.1" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.Thinking {
		t.Fatalf("Thinking=true, want false")
	}
}

func TestGeneration_AutoDetectThinking(t *testing.T) {
	r := New(
		config.Settings{Provider: "ollama"},
		WithInventory(&fakeInventory{names: []string{"Qwen3:latest"}}),
	)
	gen, err := r.Generation(context.Background(), true, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "qwen3" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	// Auto-detected models never emit reasoning, even under preferThinking.
	if cfg.Thinking {
		t.Fatalf("Thinking=true, want false")
	}
}

func TestGeneration_RequiredClassNotInstalled(t *testing.T) {
	r := New(
		config.Settings{Provider: "ollama"},
		WithInventory(&fakeInventory{names: []string{"mistral"}}),
	)
	_, err := r.Generation(context.Background(), true, 0.0)
	ce, ok := llm.AsConfigError(err)
	if !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(ce.Remediation, "ollama pull qwen3") {
		t.Fatalf("Remediation=%q", ce.Remediation)
	}
}

func TestGeneration_ProbeUnreachable(t *testing.T) {
	probeErr := &llm.UnavailableError{
		Backend:     llm.BackendOllama,
		Reason:      "cannot query installed models",
		Remediation: "Make sure Ollama is installed and running.",
		Cause:       errors.New("connection refused"),
	}
	r := New(
		config.Settings{Provider: "ollama"},
		WithInventory(&fakeInventory{err: probeErr}),
	)
	_, err := r.Generation(context.Background(), false, 0.0)
	ue, ok := llm.AsUnavailableError(err)
	if !ok {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if ue.Remediation == "" {
		t.Fatalf("remediation missing")
	}
}

func TestGeneration_HostedMissingCredential(t *testing.T) {
	r := New(config.Settings{Provider: "google"})
	_, err := r.Generation(context.Background(), false, 0.0)
	ce, ok := llm.AsConfigError(err)
	if !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if ce.Var != "GOOGLE_API_KEY" {
		t.Fatalf("Var=%q", ce.Var)
	}
	if !strings.Contains(ce.Remediation, "GOOGLE_API_KEY") {
		t.Fatalf("Remediation=%q", ce.Remediation)
	}
}

func TestGeneration_HostedDefaults(t *testing.T) {
	r := New(config.Settings{Provider: "google", GoogleAPIKey: "k"})
	gen, err := r.Generation(context.Background(), false, 0.3)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	cfg := mustConfig(t, gen)
	if cfg.Model != "gemini-3-flash-preview" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.Backend != llm.BackendGoogle {
		t.Fatalf("Backend=%q", cfg.Backend)
	}
	if cfg.Temperature != 0.3 {
		t.Fatalf("Temperature=%v", cfg.Temperature)
	}
}

func TestGeneration_HostedThinkingEqualityRule(t *testing.T) {
	// Model equals the thinking override: emission on.
	r := New(config.Settings{
		Provider:            "google",
		GoogleAPIKey:        "k",
		GoogleModel:         "gemini-3-pro",
		GoogleThinkingModel: "gemini-3-pro",
	})
	gen, err := r.Generation(context.Background(), true, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	if cfg := mustConfig(t, gen); !cfg.Thinking {
		t.Fatalf("Thinking=false, want true")
	}

	// Model differs from the override: emission off.
	r = New(config.Settings{
		Provider:            "google",
		GoogleAPIKey:        "k",
		GoogleThinkingModel: "gemini-3-pro",
	})
	gen, err = r.Generation(context.Background(), true, 0.0)
	if err != nil {
		t.Fatalf("Generation() err=%v", err)
	}
	if cfg := mustConfig(t, gen); cfg.Thinking {
		t.Fatalf("Thinking=true, want false")
	}
}

func TestEmbedding_HostedMissingCredential(t *testing.T) {
	r := New(config.Settings{Provider: "google"})
	_, err := r.Embedding()
	if _, ok := llm.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestEmbedding_InvalidProvider(t *testing.T) {
	r := New(config.Settings{Provider: ""})
	if _, err := r.Embedding(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEmbedding_Local(t *testing.T) {
	r := New(config.Settings{Provider: "ollama"})
	emb, err := r.Embedding()
	if err != nil {
		t.Fatalf("Embedding() err=%v", err)
	}
	if emb == nil {
		t.Fatalf("nil embedder")
	}
}
