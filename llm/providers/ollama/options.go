package ollama

import (
	"log/slog"
	"net/http"

	"github.com/lgc202/modelkit/llm/internal/transport"
)

// Option configures the Ollama client types (Provider, Inventory, Embedder).
type Option func(*settings) error

type settings struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func WithBaseURL(baseURL string) Option {
	return func(s *settings) error {
		if baseURL != "" {
			s.baseURL = baseURL
		}
		return nil
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) error {
		s.httpClient = c
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

func newTransport(opts []Option) (*transport.Client, error) {
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
	return tr, nil
}
