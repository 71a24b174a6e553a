// Package resolve selects and constructs generation and embedding handles
// from loaded settings.
//
// Resolution is strict: every failure is a typed, terminal error with
// remediation text. The resolver never retries, never falls back from the
// hosted backend to the local one, and never substitutes a non-thinking
// model when a thinking model was required.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lgc202/modelkit/config"
	"github.com/lgc202/modelkit/llm"
	"github.com/lgc202/modelkit/llm/providers/gemini"
	"github.com/lgc202/modelkit/llm/providers/ollama"
)

// Model-name tokens matched (case-insensitively, as substrings) against the
// local inventory during auto-detection.
const (
	thinkingModelToken = "qwen3"
	generalModelToken  = "llama3.1"
)

// ModelInventory lists the models installed in a local backend. It is an
// interface so tests can fake the capability probe without a running server.
type ModelInventory interface {
	Installed(ctx context.Context) ([]string, error)
}

type Resolver struct {
	settings   config.Settings
	inventory  ModelInventory
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithInventory replaces the default Ollama-backed capability probe.
func WithInventory(inv ModelInventory) Option {
	return func(r *Resolver) { r.inventory = inv }
}

// WithHTTPClient sets the HTTP client threaded into every resolved handle.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.httpClient = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func New(settings config.Settings, opts ...Option) *Resolver {
	r := &Resolver{settings: settings}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generation resolves a text-generation handle.
//
// preferThinking asks for a thinking-capable model; reasoning-trace emission
// is enabled only when the resolved model name exactly equals the configured
// thinking-model override. temperature must be in [0.0, 1.0].
func (r *Resolver) Generation(ctx context.Context, preferThinking bool, temperature float64) (llm.Generator, error) {
	if temperature < 0 || temperature > 1 {
		return nil, &llm.ConfigError{
			Reason:      fmt.Sprintf("temperature must be between 0.0 and 1.0, got %g", temperature),
			Remediation: "Pass a temperature within [0.0, 1.0].",
		}
	}

	switch llm.Backend(r.settings.Provider) {
	case llm.BackendOllama:
		return r.ollamaGeneration(ctx, preferThinking, temperature)
	case llm.BackendGoogle:
		return r.googleGeneration(preferThinking, temperature)
	default:
		return nil, r.invalidProvider()
	}
}

// Embedding resolves an embedding handle. It follows the same two-path
// structure as Generation without any thinking-model logic: each backend
// uses one fixed embedding model.
func (r *Resolver) Embedding() (llm.Embedder, error) {
	switch llm.Backend(r.settings.Provider) {
	case llm.BackendOllama:
		return ollama.NewEmbedder(r.ollamaOpts()...)
	case llm.BackendGoogle:
		if r.settings.GoogleAPIKey == "" {
			return nil, missingCredential()
		}
		return gemini.NewEmbedder(r.settings.GoogleAPIKey, r.geminiOpts()...)
	default:
		return nil, r.invalidProvider()
	}
}

// Inventory returns the capability probe the resolver uses for local
// model auto-detection.
func (r *Resolver) Inventory() (ModelInventory, error) {
	if r.inventory != nil {
		return r.inventory, nil
	}
	return ollama.NewInventory(r.ollamaOpts()...)
}

func (r *Resolver) ollamaGeneration(ctx context.Context, preferThinking bool, temperature float64) (llm.Generator, error) {
	s := r.settings

	// Model priority: thinking override (only under preferThinking),
	// then general override, then inventory auto-detection.
	var model string
	if preferThinking && s.OllamaThinkingModel != "" {
		model = s.OllamaThinkingModel
	}
	if model == "" {
		model = s.OllamaModel
	}
	if model == "" {
		detected, err := r.detectModel(ctx, preferThinking)
		if err != nil {
			return nil, err
		}
		model = detected
	}

	// Auto-detected or general models never emit reasoning, even under
	// preferThinking.
	thinking := preferThinking && s.OllamaThinkingModel != "" && model == s.OllamaThinkingModel

	cfg := llm.ProviderConfig{
		Backend:     llm.BackendOllama,
		Model:       model,
		Thinking:    thinking,
		Temperature: temperature,
	}
	return ollama.New(cfg, r.ollamaOpts()...)
}

func (r *Resolver) googleGeneration(preferThinking bool, temperature float64) (llm.Generator, error) {
	s := r.settings
	if s.GoogleAPIKey == "" {
		return nil, missingCredential()
	}

	model := s.GoogleModel
	if model == "" {
		model = gemini.DefaultModel
	}

	thinking := preferThinking && s.GoogleThinkingModel != "" && model == s.GoogleThinkingModel

	cfg := llm.ProviderConfig{
		Backend:     llm.BackendGoogle,
		Model:       model,
		Thinking:    thinking,
		Temperature: temperature,
		Credential:  s.GoogleAPIKey,
	}

	opts := r.geminiOpts()
	if thinking {
		// Hosted activation takes a depth level plus an expose-trace flag
		// rather than a single boolean.
		opts = append(opts, gemini.WithThinking(gemini.Thinking{
			Level:           gemini.ThinkingMedium,
			IncludeThoughts: true,
		}))
	}
	return gemini.New(cfg, opts...)
}

func (r *Resolver) detectModel(ctx context.Context, preferThinking bool) (string, error) {
	inv, err := r.Inventory()
	if err != nil {
		return "", err
	}
	names, err := inv.Installed(ctx)
	if err != nil {
		return "", err
	}

	token := generalModelToken
	if preferThinking {
		token = thinkingModelToken
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), token) {
			return token, nil
		}
	}

	return "", &llm.ConfigError{
		Reason:      fmt.Sprintf("%s is required when prefer_thinking=%t, but it is not installed", token, preferThinking),
		Remediation: fmt.Sprintf("Install it with:\n  ollama pull %s", token),
	}
}

func (r *Resolver) invalidProvider() error {
	return &llm.ConfigError{
		Var:    "LLM_PROVIDER",
		Reason: fmt.Sprintf("invalid provider %q", r.settings.Provider),
		Remediation: "Valid options: 'ollama', 'google'.\n" +
			"Set the LLM_PROVIDER environment variable to one of these values.",
	}
}

func missingCredential() error {
	return &llm.ConfigError{
		Var:    "GOOGLE_API_KEY",
		Reason: "missing credential",
		Remediation: "GOOGLE_API_KEY is required when LLM_PROVIDER=google.\n" +
			"Setup instructions:\n" +
			"1. Get an API key from https://ai.google.dev/\n" +
			"2. Create a .env file in the repository root:\n" +
			"   LLM_PROVIDER=google\n" +
			"   GOOGLE_API_KEY=your_api_key_here\n" +
			"3. Or export the environment variable:\n" +
			"   export GOOGLE_API_KEY=your_api_key_here",
	}
}

func (r *Resolver) ollamaOpts() []ollama.Option {
	opts := []ollama.Option{ollama.WithBaseURL(r.settings.OllamaHost)}
	if r.httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(r.httpClient))
	}
	if r.logger != nil {
		opts = append(opts, ollama.WithLogger(r.logger))
	}
	return opts
}

func (r *Resolver) geminiOpts() []gemini.Option {
	var opts []gemini.Option
	if r.httpClient != nil {
		opts = append(opts, gemini.WithHTTPClient(r.httpClient))
	}
	if r.logger != nil {
		opts = append(opts, gemini.WithLogger(r.logger))
	}
	return opts
}
