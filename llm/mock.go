package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider returns scripted completions. Queued errors for a model are
// returned before its queued responses; Respond is used once both queues
// are empty.
type MockProvider struct {
	Respond func(req Request) (string, error)

	mu        sync.Mutex
	responses map[string][]string
	errors    map[string][]error
	calls     []Request
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		responses: make(map[string][]string),
		errors:    make(map[string][]error),
	}
}

// Script queues responses for model.
func (m *MockProvider) Script(model string, responses ...string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[model] = append(m.responses[model], responses...)
	return m
}

// Fail queues errors for model.
func (m *MockProvider) Fail(model string, errs ...error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[model] = append(m.errors[model], errs...)
	return m
}

func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m.mu.Lock()
	m.calls = append(m.calls, req)
	if errs := m.errors[req.Model]; len(errs) > 0 {
		m.errors[req.Model] = errs[1:]
		m.mu.Unlock()
		return nil, NewModelError(req.Model, "complete", errs[0])
	}
	if queued := m.responses[req.Model]; len(queued) > 0 {
		m.responses[req.Model] = queued[1:]
		m.mu.Unlock()
		return m.response(req, queued[0]), nil
	}
	m.mu.Unlock()

	if m.Respond == nil {
		return nil, NewModelError(req.Model, "complete", fmt.Errorf("no scripted response"))
	}
	content, err := m.Respond(req)
	if err != nil {
		return nil, NewModelError(req.Model, "complete", err)
	}
	return m.response(req, content), nil
}

func (m *MockProvider) response(req Request, content string) *Response {
	prompt := 0
	for _, msg := range req.Messages {
		prompt += len(msg.Content) / 4
	}
	return &Response{
		Content:      content,
		Model:        req.Model,
		FinishReason: "stop",
		Usage: Usage{
			PromptTokens:     prompt,
			CompletionTokens: len(content) / 4,
			TotalTokens:      prompt + len(content)/4,
		},
	}
}

// Calls returns the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount counts the requests sent to model.
func (m *MockProvider) CallCount(model string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Model == model {
			n++
		}
	}
	return n
}

func (m *MockProvider) Close() error {
	return nil
}

var _ Provider = (*MockProvider)(nil)
