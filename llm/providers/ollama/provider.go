// Package ollama implements the local backend against the native Ollama
// HTTP API: chat generation, installed-model inventory, and embeddings.
//
// Requires Ollama to be running locally.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"

	chatPath  = "/api/chat"
	tagsPath  = "/api/tags"
	embedPath = "/api/embed"

	// EmbeddingModel is the fixed model used for local embeddings.
	EmbeddingModel = "nomic-embed-text"
)

type Provider struct {
	cfg llm.ProviderConfig
	tr  *transport.Client
}

var _ llm.Generator = (*Provider)(nil)

// New returns a generation handle bound to cfg.
func New(cfg llm.ProviderConfig, opts ...Option) (*Provider, error) {
	if cfg.Model == "" {
		return nil, errors.New("ollama: model is required")
	}
	tr, err := newTransport(opts)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, tr: tr}, nil
}

func (p *Provider) Config() llm.ProviderConfig { return p.cfg }

type chatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Think    bool           `json:"think,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Generate issues one blocking /api/chat call and maps the result. The
// final answer arrives as a plain string; any reasoning arrives on the
// out-of-band thinking field, so the trace is reported as a side channel.
func (p *Provider) Generate(ctx context.Context, prompt string) (llm.RawResponse, error) {
	req := chatRequest{
		Model:    p.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Think:    p.cfg.Thinking,
		Options:  map[string]any{"temperature": p.cfg.Temperature},
	}

	_, raw, err := p.tr.DoJSON(ctx, http.MethodPost, chatPath, nil, req)
	if err != nil {
		return llm.RawResponse{}, p.mapError(err)
	}

	var wresp chatResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return llm.RawResponse{}, fmt.Errorf("ollama: decode response: %w", err)
	}

	return llm.RawResponse{
		Content:        llm.PlainText(wresp.Message.Content),
		ReasoningTrace: wresp.Message.Thinking,
		Model:          wresp.Model,
		Raw:            append(json.RawMessage(nil), raw...),
	}, nil
}

func (p *Provider) mapError(err error) error {
	var se *transport.HTTPStatusError
	if errors.As(err, &se) {
		return fmt.Errorf("ollama: chat failed with status %d: %s", se.StatusCode, se.Body)
	}
	return fmt.Errorf("ollama: chat: %w", err)
}
