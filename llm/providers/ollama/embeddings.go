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

// Embedder embeds text through the local Ollama instance. The model is fixed
// to EmbeddingModel.
type Embedder struct {
	model string
	tr    *transport.Client
}

var _ llm.Embedder = (*Embedder)(nil)

func NewEmbedder(opts ...Option) (*Embedder, error) {
	tr, err := newTransport(opts)
	if err != nil {
		return nil, err
	}
	return &Embedder{model: EmbeddingModel, tr: tr}, nil
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

func (e *Embedder) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, errors.New("ollama: inputs required")
	}

	req := embedRequest{Model: e.model, Input: inputs}
	_, raw, err := e.tr.DoJSON(ctx, http.MethodPost, embedPath, nil, req)
	if err != nil {
		var se *transport.HTTPStatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("ollama: embed failed with status %d: %s", se.StatusCode, se.Body)
		}
		return nil, fmt.Errorf("ollama: embed: %w", err)
	}

	var resp embedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(inputs) {
		return nil, fmt.Errorf("ollama: got %d embeddings for %d inputs", len(resp.Embeddings), len(inputs))
	}
	return resp.Embeddings, nil
}
