package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockVectorIndex is a mock of domain.VectorIndex.
type MockVectorIndex struct {
	mock.Mock
}

// MockVectorIndexExpecter records expectations on MockVectorIndex.
type MockVectorIndexExpecter struct {
	mock *mock.Mock
}

// NewMockVectorIndex creates a mock that asserts its expectations on cleanup.
func NewMockVectorIndex(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVectorIndex {
	m := &MockVectorIndex{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockVectorIndex) EXPECT() *MockVectorIndexExpecter {
	return &MockVectorIndexExpecter{mock: &m.Mock}
}

// Index provides a mock function.
func (m *MockVectorIndex) Index(ctx context.Context, key string, vector []float64, data []byte) error {
	args := m.Called(ctx, key, vector, data)
	return args.Error(0)
}

// Search provides a mock function.
func (m *MockVectorIndex) Search(
	ctx context.Context,
	vector []float64,
	threshold float64,
	limit int,
) ([]*domain.SearchResult, error) {
	args := m.Called(ctx, vector, threshold, limit)

	var results []*domain.SearchResult
	if args.Get(0) != nil {
		results = args.Get(0).([]*domain.SearchResult)
	}

	return results, args.Error(1)
}

// Index expects an Index call.
func (e *MockVectorIndexExpecter) Index(ctx, key, vector, data any) *mock.Call {
	return e.mock.On("Index", ctx, key, vector, data)
}

// Search expects a Search call.
func (e *MockVectorIndexExpecter) Search(ctx, vector, threshold, limit any) *mock.Call {
	return e.mock.On("Search", ctx, vector, threshold, limit)
}

// MockCostCalculator is a mock of domain.CostCalculator.
type MockCostCalculator struct {
	mock.Mock
}

// MockCostCalculatorExpecter records expectations on MockCostCalculator.
type MockCostCalculatorExpecter struct {
	mock *mock.Mock
}

// NewMockCostCalculator creates a mock that asserts its expectations on cleanup.
func NewMockCostCalculator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCostCalculator {
	m := &MockCostCalculator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockCostCalculator) EXPECT() *MockCostCalculatorExpecter {
	return &MockCostCalculatorExpecter{mock: &m.Mock}
}

// Calculate provides a mock function.
func (m *MockCostCalculator) Calculate(ctx context.Context, model string, usage domain.Usage) (float64, error) {
	args := m.Called(ctx, model, usage)
	return args.Get(0).(float64), args.Error(1)
}

// Calculate expects a Calculate call.
func (e *MockCostCalculatorExpecter) Calculate(ctx, model, usage any) *mock.Call {
	return e.mock.On("Calculate", ctx, model, usage)
}
