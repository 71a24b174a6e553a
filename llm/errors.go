package llm

import (
	"errors"
	"fmt"
)

// ConfigError reports invalid or missing required configuration: a bad
// backend selector, a missing credential, or a required model class that is
// not installed. It is terminal; the resolver never retries and never
// silently degrades around it.
type ConfigError struct {
	// Var is the configuration key at fault (e.g. "GOOGLE_API_KEY"),
	// when a single one exists.
	Var    string
	Reason string

	// Remediation names the exact action needed to fix the configuration.
	Remediation string
}

func (e *ConfigError) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("llm config: %s: %s", e.Var, e.Reason)
	}
	return "llm config: " + e.Reason
}

// UnavailableError reports that a local backend's capability-query mechanism
// could not be reached at all. Terminal, like ConfigError.
type UnavailableError struct {
	Backend Backend
	Reason  string

	// Remediation carries install/start instructions for the backend.
	Remediation string

	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("llm %s: %s", e.Backend, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

func AsConfigError(err error) (*ConfigError, bool) {
	var e *ConfigError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func AsUnavailableError(err error) (*UnavailableError, bool) {
	var e *UnavailableError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
