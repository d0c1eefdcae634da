package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockPromptStore is a mock of domain.PromptStore.
type MockPromptStore struct {
	mock.Mock
}

// MockPromptStoreExpecter records expectations on MockPromptStore.
type MockPromptStoreExpecter struct {
	mock *mock.Mock
}

// NewMockPromptStore creates a mock that asserts its expectations on cleanup.
func NewMockPromptStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPromptStore {
	m := &MockPromptStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockPromptStore) EXPECT() *MockPromptStoreExpecter {
	return &MockPromptStoreExpecter{mock: &m.Mock}
}

// CreatePrompt provides a mock function.
func (m *MockPromptStore) CreatePrompt(ctx context.Context, in domain.NewPrompt) (*domain.Prompt, error) {
	args := m.Called(ctx, in)

	var prompt *domain.Prompt
	if args.Get(0) != nil {
		prompt = args.Get(0).(*domain.Prompt)
	}

	return prompt, args.Error(1)
}

// ListPrompts provides a mock function.
func (m *MockPromptStore) ListPrompts(ctx context.Context, opts domain.ListOptions) ([]*domain.Prompt, error) {
	args := m.Called(ctx, opts)

	var prompts []*domain.Prompt
	if args.Get(0) != nil {
		prompts = args.Get(0).([]*domain.Prompt)
	}

	return prompts, args.Error(1)
}

// GetPrompt provides a mock function.
func (m *MockPromptStore) GetPrompt(ctx context.Context, id string) (*domain.Prompt, error) {
	args := m.Called(ctx, id)

	var prompt *domain.Prompt
	if args.Get(0) != nil {
		prompt = args.Get(0).(*domain.Prompt)
	}

	return prompt, args.Error(1)
}

// ListPromptVersions provides a mock function.
func (m *MockPromptStore) ListPromptVersions(ctx context.Context, promptID string) ([]*domain.PromptVersion, error) {
	args := m.Called(ctx, promptID)

	var versions []*domain.PromptVersion
	if args.Get(0) != nil {
		versions = args.Get(0).([]*domain.PromptVersion)
	}

	return versions, args.Error(1)
}

// CreatePrompt expects a CreatePrompt call.
func (e *MockPromptStoreExpecter) CreatePrompt(ctx, in any) *mock.Call {
	return e.mock.On("CreatePrompt", ctx, in)
}

// ListPrompts expects a ListPrompts call.
func (e *MockPromptStoreExpecter) ListPrompts(ctx, opts any) *mock.Call {
	return e.mock.On("ListPrompts", ctx, opts)
}

// GetPrompt expects a GetPrompt call.
func (e *MockPromptStoreExpecter) GetPrompt(ctx, id any) *mock.Call {
	return e.mock.On("GetPrompt", ctx, id)
}

// ListPromptVersions expects a ListPromptVersions call.
func (e *MockPromptStoreExpecter) ListPromptVersions(ctx, promptID any) *mock.Call {
	return e.mock.On("ListPromptVersions", ctx, promptID)
}
