package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration. It is built once at
// startup and never mutated afterwards.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "openai", "anthropic", "gemini", "mock"
	Provider string

	OpenRouter OpenRouterConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig

	// Timeout bounds a single completion call. Default: 60s.
	Timeout time.Duration

	// MaxTokens is the completion budget. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness for every call.
	Temperature float64
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "deepseek/deepseek-r1-0528-qwen3-8b:free"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.

	// StrictSchema sends the full JSON schema as a strict response format.
	// When false, plain JSON mode is requested and the schema is enforced
	// only by Decode.
	StrictSchema bool
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

const defaultOpenRouterModel = "deepseek/deepseek-r1-0528-qwen3-8b:free"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		OpenRouter: OpenRouterConfig{
			Model:   defaultOpenRouterModel,
			BaseURL: defaultOpenRouterBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Timeout:     60 * time.Second,
		Temperature: 0.7,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("GMAT_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("OPENROUTER_MODEL_NAME"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if s, err := strconv.ParseBool(os.Getenv("OPENAI_STRICT_SCHEMA")); err == nil {
		cfg.OpenAI.StrictSchema = s
	}

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if d, err := time.ParseDuration(os.Getenv("GMAT_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("GMAT_LLM_MAX_TOKENS")); err == nil && n >= 0 {
		cfg.MaxTokens = n
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return &ErrConfiguration{Setting: "OPENROUTER_API_KEY", Reason: "is required for the openrouter provider"}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Setting: "OPENAI_API_KEY", Reason: "is required for the openai provider"}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Setting: "ANTHROPIC_API_KEY", Reason: "is required for the anthropic provider"}
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Setting: "GEMINI_API_KEY", Reason: "is required for the gemini provider"}
		}
	case "mock":
		// No API key needed.
	default:
		return &ErrConfiguration{Setting: "GMAT_LLM_PROVIDER", Reason: "names an unknown provider: " + strconv.Quote(c.Provider)}
	}
	if c.Timeout <= 0 {
		return &ErrConfiguration{Setting: "GMAT_LLM_TIMEOUT", Reason: "must be positive"}
	}
	return nil
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case "openrouter":
		c.OpenRouter.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "gemini":
		c.Gemini.Model = model
	}
}
