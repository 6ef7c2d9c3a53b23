package llm

import (
	"context"
	"errors"
	"time"
)

// ClientOptions are the per-call settings shared by every completion.
type ClientOptions struct {
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// OptionsFromConfig extracts the call settings from a Config.
func OptionsFromConfig(cfg Config) ClientOptions {
	return ClientOptions{
		Timeout:     cfg.Timeout,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// Client sends single-turn prompts to a Provider. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	provider Provider
	opts     ClientOptions
}

// NewClient creates a Client over the given provider.
func NewClient(provider Provider, opts ClientOptions) *Client {
	return &Client{provider: provider, opts: opts}
}

// ModelID returns the model the underlying provider targets.
func (c *Client) ModelID() string {
	return c.provider.ModelID()
}

// Complete sends a system and a human message and returns the raw
// completion text. An empty system message is left out.
func (c *Client) Complete(ctx context.Context, system, human string) (string, error) {
	return c.complete(ctx, system, human, nil)
}

// CompleteJSON is Complete with the provider's JSON output mode enabled
// for schema. The returned text is still unvalidated; pass it to Decode.
func (c *Client) CompleteJSON(ctx context.Context, system, human string, schema *Schema) (string, error) {
	return c.complete(ctx, system, human, schema)
}

func (c *Client) complete(ctx context.Context, system, human string, schema *Schema) (string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: human}},
		Schema:      schema,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		var up *ErrUpstream
		if errors.As(err, &up) {
			return "", err
		}
		return "", &ErrUpstream{Err: err}
	}
	return resp.Text, nil
}
