package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `{"b":2}`},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var up *ErrUpstream
	if !errors.As(err, &up) {
		t.Fatalf("expected ErrUpstream, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `{}`})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected system 'sys', got %q", last.System)
	}
}

func TestLocalMockProvider_RepliesByPurpose(t *testing.T) {
	m := NewLocalMockProvider()

	for _, purpose := range []string{PurposeQuestionGen, PurposeFeedback, PurposeTestCompletion, ""} {
		resp, err := m.Generate(WithPurpose(context.Background(), purpose), Request{})
		if err != nil {
			t.Fatalf("purpose %q: %v", purpose, err)
		}
		if resp.Text == "" {
			t.Errorf("purpose %q: empty reply", purpose)
		}
	}
	if m.CallCount() != 4 {
		t.Errorf("expected 4 calls, got %d", m.CallCount())
	}

	m = NewLocalMockProvider()
	m.responses = []MockResponse{{Text: "queued"}}
	resp, err := m.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "queued" {
		t.Errorf("queued responses should take precedence, got %q", resp.Text)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuestionGen)
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}, Timeout: time.Second},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}, Timeout: time.Second},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock", Timeout: time.Second},
			wantErr: false,
		},
		{
			name:    "zero timeout",
			cfg:     Config{Provider: "mock"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown", Timeout: time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ErrConfiguration
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ErrConfiguration, got %T", err)
				}
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-env")
	t.Setenv("OPENROUTER_MODEL_NAME", "meta-llama/llama-3-8b")
	t.Setenv("GMAT_LLM_TIMEOUT", "15s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" {
		t.Errorf("provider = %q, want openrouter", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or-env" {
		t.Errorf("api key = %q", cfg.OpenRouter.APIKey)
	}
	if cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Errorf("model = %q", cfg.OpenRouter.Model)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("timeout = %s, want 15s", cfg.Timeout)
	}
}

func TestConfigFromEnv_DefaultModel(t *testing.T) {
	t.Setenv("OPENROUTER_MODEL_NAME", "")
	cfg := ConfigFromEnv()
	if cfg.OpenRouter.Model != "deepseek/deepseek-r1-0528-qwen3-8b:free" {
		t.Errorf("model = %q", cfg.OpenRouter.Model)
	}
}

func TestConfigFromEnv_MaxTokens(t *testing.T) {
	t.Setenv("GMAT_LLM_MAX_TOKENS", "")
	if got := ConfigFromEnv().MaxTokens; got != 0 {
		t.Errorf("default max tokens = %d, want 0 (provider default)", got)
	}

	t.Setenv("GMAT_LLM_MAX_TOKENS", "4096")
	if got := ConfigFromEnv().MaxTokens; got != 4096 {
		t.Errorf("max tokens = %d, want 4096", got)
	}
}
