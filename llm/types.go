package llm

import (
	"context"
	"encoding/json"
)

// Backend is the canonical identifier of a model backend.
type Backend string

const (
	// BackendOllama is a locally running model server, queried for its
	// installed model inventory.
	BackendOllama Backend = "ollama"
	// BackendGoogle is the credentialed Google Generative Language API.
	BackendGoogle Backend = "google"
)

// ProviderConfig is the configuration a resolved handle is bound to.
// It is built once per resolution and never mutated afterwards.
type ProviderConfig struct {
	Backend Backend
	Model   string

	// Thinking reports whether the handle asks the backend to emit a
	// reasoning trace alongside its final answer.
	Thinking bool

	// Temperature is the sampling temperature, in [0.0, 1.0].
	Temperature float64

	// Credential is the API key for hosted backends. Required iff
	// Backend == BackendGoogle.
	Credential string
}

// SegmentKind tags one span of segmented model output.
type SegmentKind string

const (
	SegmentThinking SegmentKind = "thinking"
	SegmentText     SegmentKind = "text"
)

// Segment is one tagged span of model output.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Content is the closed set of content shapes a backend may return.
type Content interface{ isContent() }

// PlainText is content returned as a single unstructured string.
type PlainText string

// SegmentList is content returned as an ordered sequence of tagged segments.
type SegmentList []Segment

func (PlainText) isContent()   {}
func (SegmentList) isContent() {}

// RawResponse is a backend result prior to normalization.
type RawResponse struct {
	// Content is PlainText or SegmentList. A nil Content means the backend
	// returned something this library does not model; Normalize degrades to
	// a textual rendering instead of failing.
	Content Content

	// ReasoningTrace carries reasoning reported out-of-band by backends
	// that do not tag it inline.
	ReasoningTrace string

	// Model is the model that produced the response, when reported.
	Model string

	// Raw is the undecoded response payload, kept for the rendering fallback.
	Raw json.RawMessage
}

// NormalizedResponse is the clean (reasoning, answer) pair extracted from a
// RawResponse.
type NormalizedResponse struct {
	// Reasoning is the reasoning trace, empty when none was recovered.
	Reasoning string
	// Answer is the final answer text. It is always populated: when no text
	// is recoverable it holds a best-effort rendering of the raw content.
	Answer string
}

// Generator is an opaque handle to a resolved text-generation backend.
// Generate issues one blocking call and returns the complete response.
//
// A Generator is stateless beyond its bound ProviderConfig and safe to reuse
// for repeated sequential calls.
type Generator interface {
	Generate(ctx context.Context, prompt string) (RawResponse, error)
}

// Embedder is an opaque handle to a resolved embedding backend.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float64, error)
}

// ConfigReporter is an optional interface for discovering the resolved
// configuration behind a handle.
type ConfigReporter interface {
	Config() ProviderConfig
}

// ConfigOf returns the ProviderConfig a handle is bound to, when it reports one.
func ConfigOf(v any) (ProviderConfig, bool) {
	if r, ok := v.(ConfigReporter); ok {
		return r.Config(), true
	}
	return ProviderConfig{}, false
}
