package gemini

import (
	"log/slog"
	"net/http"
)

// Option configures the Gemini client types (Provider, Embedder).
type Option func(*settings) error

type settings struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	thinking   *Thinking
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

// WithThinking enables the thinking activation shape on generation requests.
func WithThinking(t Thinking) Option {
	return func(s *settings) error {
		v := t
		s.thinking = &v
		return nil
	}
}
