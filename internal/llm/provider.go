package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// A Provider sends one request to a completion service and returns the
// raw text it produced. It never validates or parses that text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw completion.
	// The request's Schema field, when set, asks the provider to use its
	// native JSON output mode. Conformance is checked later by Decode.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Omitted from the wire when empty.
	System string

	// Messages is the conversation history. Every call in this service is
	// single-turn, so this holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response is expected to conform to.
	// When nil, the completion is free-form text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// the compiled validator). Kebab-case, e.g. "gmat-question".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion exactly as the provider returned it.
	Text string

	// Usage reports token consumption as reported by the provider.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage holds the provider-reported token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
