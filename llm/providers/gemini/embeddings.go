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

// Embedder embeds text through the hosted API. The model is fixed to
// EmbeddingModel and the same credential rule as generation applies.
type Embedder struct {
	model string
	tr    *transport.Client
}

var _ llm.Embedder = (*Embedder)(nil)

func NewEmbedder(credential string, opts ...Option) (*Embedder, error) {
	if credential == "" {
		return nil, missingCredential()
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
	tr.DefaultHeaders.Set("x-goog-api-key", credential)

	return &Embedder{model: EmbeddingModel, tr: tr}, nil
}

type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

type embedContentRequest struct {
	Model   string          `json:"model"`
	Content generateContent `json:"content"`
}

type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

func (e *Embedder) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, errors.New("gemini: inputs required")
	}

	req := batchEmbedRequest{Requests: make([]embedContentRequest, 0, len(inputs))}
	for _, in := range inputs {
		req.Requests = append(req.Requests, embedContentRequest{
			Model:   "models/" + e.model,
			Content: generateContent{Parts: []generatePart{{Text: in}}},
		})
	}

	path := fmt.Sprintf("/v1beta/models/%s:batchEmbedContents", e.model)
	_, raw, err := e.tr.DoJSON(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		var se *transport.HTTPStatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("gemini: embed failed with status %d: %s", se.StatusCode, se.Body)
		}
		return nil, fmt.Errorf("gemini: embed: %w", err)
	}

	var resp batchEmbedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(inputs) {
		return nil, fmt.Errorf("gemini: got %d embeddings for %d inputs", len(resp.Embeddings), len(inputs))
	}

	out := make([][]float64, 0, len(resp.Embeddings))
	for _, em := range resp.Embeddings {
		out = append(out, em.Values)
	}
	return out, nil
}
