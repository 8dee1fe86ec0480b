// Package provider holds the provider-agnostic types shared by the
// completion adapters and their callers.
package provider

// CompletionRequest is one role-tagged instruction pair sent to the oracle.
type CompletionRequest struct {
	// Model overrides the adapter's default model when non-empty.
	Model       string
	System      string
	User        string
	Temperature float64
	// MaxTokens caps the reply length; 0 means the adapter default.
	MaxTokens int
}
