// Package mocks holds testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockChatGateway is a mock of domain.ChatGateway.
type MockChatGateway struct {
	mock.Mock
}

// MockChatGatewayExpecter records expectations on MockChatGateway.
type MockChatGatewayExpecter struct {
	mock *mock.Mock
}

// NewMockChatGateway creates a mock that asserts its expectations on cleanup.
func NewMockChatGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChatGateway {
	m := &MockChatGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockChatGateway) EXPECT() *MockChatGatewayExpecter {
	return &MockChatGatewayExpecter{mock: &m.Mock}
}

// Complete provides a mock function.
func (m *MockChatGateway) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResult, error) {
	args := m.Called(ctx, req)

	var result *domain.CompletionResult
	if fn, ok := args.Get(0).(func(context.Context, *domain.CompletionRequest) *domain.CompletionResult); ok {
		result = fn(ctx, req)
	} else if args.Get(0) != nil {
		result = args.Get(0).(*domain.CompletionResult)
	}

	return result, args.Error(1)
}

// Name provides a mock function.
func (m *MockChatGateway) Name() string {
	args := m.Called()
	return args.String(0)
}

// Complete expects a Complete call.
func (e *MockChatGatewayExpecter) Complete(ctx, req any) *mock.Call {
	return e.mock.On("Complete", ctx, req)
}

// Name expects a Name call.
func (e *MockChatGatewayExpecter) Name() *mock.Call {
	return e.mock.On("Name")
}
