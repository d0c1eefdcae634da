package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockUsageStore is a mock of domain.UsageStore.
type MockUsageStore struct {
	mock.Mock
}

// MockUsageStoreExpecter records expectations on MockUsageStore.
type MockUsageStoreExpecter struct {
	mock *mock.Mock
}

// NewMockUsageStore creates a mock that asserts its expectations on cleanup.
func NewMockUsageStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUsageStore {
	m := &MockUsageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockUsageStore) EXPECT() *MockUsageStoreExpecter {
	return &MockUsageStoreExpecter{mock: &m.Mock}
}

// LogUsageEvent provides a mock function.
func (m *MockUsageStore) LogUsageEvent(ctx context.Context, in domain.NewUsageEvent) (*domain.UsageEvent, error) {
	args := m.Called(ctx, in)

	var event *domain.UsageEvent
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.UsageEvent)
	}

	return event, args.Error(1)
}

// LogUsageEvent expects a LogUsageEvent call.
func (e *MockUsageStoreExpecter) LogUsageEvent(ctx, in any) *mock.Call {
	return e.mock.On("LogUsageEvent", ctx, in)
}

// MockEmbeddingStore is a mock of domain.EmbeddingStore.
type MockEmbeddingStore struct {
	mock.Mock
}

// MockEmbeddingStoreExpecter records expectations on MockEmbeddingStore.
type MockEmbeddingStoreExpecter struct {
	mock *mock.Mock
}

// NewMockEmbeddingStore creates a mock that asserts its expectations on cleanup.
func NewMockEmbeddingStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEmbeddingStore {
	m := &MockEmbeddingStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockEmbeddingStore) EXPECT() *MockEmbeddingStoreExpecter {
	return &MockEmbeddingStoreExpecter{mock: &m.Mock}
}

// RecordEmbedding provides a mock function.
func (m *MockEmbeddingStore) RecordEmbedding(ctx context.Context, in domain.NewEmbeddingRecord) (*domain.EmbeddingRecord, error) {
	args := m.Called(ctx, in)

	var record *domain.EmbeddingRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.EmbeddingRecord)
	}

	return record, args.Error(1)
}

// RecordEmbedding expects a RecordEmbedding call.
func (e *MockEmbeddingStoreExpecter) RecordEmbedding(ctx, in any) *mock.Call {
	return e.mock.On("RecordEmbedding", ctx, in)
}

// MockEventPublisher is a mock of domain.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// MockEventPublisherExpecter records expectations on MockEventPublisher.
type MockEventPublisherExpecter struct {
	mock *mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockEventPublisher) EXPECT() *MockEventPublisherExpecter {
	return &MockEventPublisherExpecter{mock: &m.Mock}
}

// Publish provides a mock function.
func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, data map[string]any) {
	m.Called(ctx, eventType, data)
}

// Publish expects a Publish call.
func (e *MockEventPublisherExpecter) Publish(ctx, eventType, data any) *mock.Call {
	return e.mock.On("Publish", ctx, eventType, data)
}

// MockMessageIndexer is a mock of domain.MessageIndexer.
type MockMessageIndexer struct {
	mock.Mock
}

// MockMessageIndexerExpecter records expectations on MockMessageIndexer.
type MockMessageIndexerExpecter struct {
	mock *mock.Mock
}

// NewMockMessageIndexer creates a mock that asserts its expectations on cleanup.
func NewMockMessageIndexer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageIndexer {
	m := &MockMessageIndexer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockMessageIndexer) EXPECT() *MockMessageIndexerExpecter {
	return &MockMessageIndexerExpecter{mock: &m.Mock}
}

// Index provides a mock function.
func (m *MockMessageIndexer) Index(ctx context.Context, msg *domain.SessionMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Index expects an Index call.
func (e *MockMessageIndexerExpecter) Index(ctx, msg any) *mock.Call {
	return e.mock.On("Index", ctx, msg)
}
