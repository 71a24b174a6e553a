package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lgc202/modelkit/llm"
	"github.com/lgc202/modelkit/llm/internal/transport"
)

// Inventory queries the local Ollama instance for its installed models.
type Inventory struct {
	tr *transport.Client
}

func NewInventory(opts ...Option) (*Inventory, error) {
	tr, err := newTransport(opts)
	if err != nil {
		return nil, err
	}
	return &Inventory{tr: tr}, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Installed returns the names of all locally installed models. A transport
// failure means the server itself cannot be reached and is reported as
// *llm.UnavailableError with start instructions.
func (inv *Inventory) Installed(ctx context.Context) ([]string, error) {
	_, raw, err := inv.tr.DoJSON(ctx, http.MethodGet, tagsPath, nil, nil)
	if err != nil {
		return nil, &llm.UnavailableError{
			Backend: llm.BackendOllama,
			Reason:  "cannot query installed models",
			Remediation: "Make sure Ollama is installed and running.\n" +
				"Visit https://ollama.ai for installation instructions.",
			Cause: err,
		}
	}

	var resp tagsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode model list: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
