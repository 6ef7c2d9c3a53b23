package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing and for running the
// service without credentials. It returns canned responses in FIFO order
// and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	// Fallback answers once the queue is drained. Nil means ErrUpstream.
	Fallback func(ctx context.Context, req Request) MockResponse
	Calls    []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Local replies keyed by call purpose.
const (
	localQuestion = `{"question":"If 3x + 5 = 20, what is the value of x?","options":["A) 3","B) 4","C) 5","D) 6","E) 15"],"answer":"C","explanation":"Subtract 5 from both sides to get 3x = 15, then divide by 3 to get x = 5."}`
	localFeedback = `{"is_correct":false,"feedback":"This reply comes from the local mock provider; configure a real provider for tutoring feedback.","remediation_topic":"Algebra: Linear equations"}`
	localEcho     = "Hello, AI is working!"
)

// NewLocalMockProvider returns a MockProvider that answers every call with
// a fixed reply for its purpose, so the service can run offline.
func NewLocalMockProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = func(ctx context.Context, _ Request) MockResponse {
		switch PurposeFrom(ctx) {
		case PurposeQuestionGen:
			return MockResponse{Text: localQuestion}
		case PurposeFeedback:
			return MockResponse{Text: localFeedback}
		}
		return MockResponse{Text: localEcho}
	}
	return m
}

// Generate returns the next canned response. An empty queue defers to
// Fallback, or returns ErrUpstream without one.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = m.Fallback(ctx, req)
	default:
		return nil, &ErrUpstream{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none was made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
