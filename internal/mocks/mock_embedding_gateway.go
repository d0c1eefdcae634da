package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockEmbeddingGateway is a mock of domain.EmbeddingGateway.
type MockEmbeddingGateway struct {
	mock.Mock
}

// MockEmbeddingGatewayExpecter records expectations on MockEmbeddingGateway.
type MockEmbeddingGatewayExpecter struct {
	mock *mock.Mock
}

// NewMockEmbeddingGateway creates a mock that asserts its expectations on cleanup.
func NewMockEmbeddingGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEmbeddingGateway {
	m := &MockEmbeddingGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockEmbeddingGateway) EXPECT() *MockEmbeddingGatewayExpecter {
	return &MockEmbeddingGatewayExpecter{mock: &m.Mock}
}

// Embed provides a mock function.
func (m *MockEmbeddingGateway) Embed(ctx context.Context, req *domain.EmbeddingRequest) (*domain.EmbeddingResult, error) {
	args := m.Called(ctx, req)

	var result *domain.EmbeddingResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.EmbeddingResult)
	}

	return result, args.Error(1)
}

// Embed expects an Embed call.
func (e *MockEmbeddingGatewayExpecter) Embed(ctx, req any) *mock.Call {
	return e.mock.On("Embed", ctx, req)
}
