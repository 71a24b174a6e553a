// Package gemini implements the hosted backend against the Google
// Generative Language API. A credential is required; there is no anonymous
// access and no fallback to another backend.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lgc202/modelkit/llm"
	"github.com/lgc202/modelkit/llm/internal/transport"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is used when no model override is configured.
	DefaultModel = "gemini-3-flash-preview"

	// EmbeddingModel is the fixed model used for hosted embeddings.
	EmbeddingModel = "gemini-embedding-001"
)

// ThinkingLevel controls the reasoning depth of thinking-capable models.
type ThinkingLevel string

const (
	ThinkingMinimal ThinkingLevel = "minimal"
	ThinkingLow     ThinkingLevel = "low"
	ThinkingMedium  ThinkingLevel = "medium"
	ThinkingHigh    ThinkingLevel = "high"
)

// Thinking is the hosted activation shape: a depth level plus a flag to
// expose the trace in the response. This differs structurally from the
// local backend's single boolean.
type Thinking struct {
	Level           ThinkingLevel
	IncludeThoughts bool
}

type Provider struct {
	cfg      llm.ProviderConfig
	thinking *Thinking
	tr       *transport.Client
}

var _ llm.Generator = (*Provider)(nil)

// New returns a generation handle bound to cfg. cfg.Credential must be set.
func New(cfg llm.ProviderConfig, opts ...Option) (*Provider, error) {
	if cfg.Credential == "" {
		return nil, missingCredential()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	s := settings{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	tr, err := transport.New(s.baseURL, s.httpClient)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		tr.Logger = s.logger
	}
	// Header auth keeps the credential out of request URLs and logs.
	tr.DefaultHeaders.Set("x-goog-api-key", cfg.Credential)

	return &Provider{cfg: cfg, thinking: s.thinking, tr: tr}, nil
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

func (p *Provider) Config() llm.ProviderConfig { return p.cfg }

type generatePart struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type thinkingConfig struct {
	ThinkingLevel   ThinkingLevel `json:"thinkingLevel,omitempty"`
	IncludeThoughts bool          `json:"includeThoughts,omitempty"`
}

type generationConfig struct {
	Temperature    *float64        `json:"temperature,omitempty"`
	ThinkingConfig *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Generate issues one blocking :generateContent call and maps the candidate
// parts to a segment list, tagging thought-flagged parts as thinking spans.
func (p *Provider) Generate(ctx context.Context, prompt string) (llm.RawResponse, error) {
	temp := p.cfg.Temperature
	req := generateRequest{
		Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: &temp},
	}
	if p.thinking != nil {
		req.GenerationConfig.ThinkingConfig = &thinkingConfig{
			ThinkingLevel:   p.thinking.Level,
			IncludeThoughts: p.thinking.IncludeThoughts,
		}
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", p.cfg.Model)
	_, raw, err := p.tr.DoJSON(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		return llm.RawResponse{}, p.mapError(err)
	}

	var wresp generateResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return llm.RawResponse{}, fmt.Errorf("gemini: decode response: %w", err)
	}

	out := llm.RawResponse{
		Model: wresp.ModelVersion,
		Raw:   append(json.RawMessage(nil), raw...),
	}
	if out.Model == "" {
		out.Model = p.cfg.Model
	}
	if len(wresp.Candidates) == 0 {
		return out, nil
	}

	segs := make(llm.SegmentList, 0, len(wresp.Candidates[0].Content.Parts))
	for _, part := range wresp.Candidates[0].Content.Parts {
		if part.Text == "" {
			continue
		}
		kind := llm.SegmentText
		if part.Thought {
			kind = llm.SegmentThinking
		}
		segs = append(segs, llm.Segment{Kind: kind, Text: part.Text})
	}
	out.Content = segs
	return out, nil
}

func (p *Provider) mapError(err error) error {
	var se *transport.HTTPStatusError
	if errors.As(err, &se) {
		return fmt.Errorf("gemini: generate failed with status %d: %s", se.StatusCode, se.Body)
	}
	return fmt.Errorf("gemini: generate: %w", err)
}
