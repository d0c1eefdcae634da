package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockSessionStore is a mock of domain.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// MockSessionStoreExpecter records expectations on MockSessionStore.
type MockSessionStoreExpecter struct {
	mock *mock.Mock
}

// NewMockSessionStore creates a mock that asserts its expectations on cleanup.
func NewMockSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionStore {
	m := &MockSessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockSessionStore) EXPECT() *MockSessionStoreExpecter {
	return &MockSessionStoreExpecter{mock: &m.Mock}
}

// CreateSession provides a mock function.
func (m *MockSessionStore) CreateSession(ctx context.Context, in domain.NewSession) (*domain.Session, error) {
	args := m.Called(ctx, in)

	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}

	return session, args.Error(1)
}

// GetSession provides a mock function.
func (m *MockSessionStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)

	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}

	return session, args.Error(1)
}

// ListSessions provides a mock function.
func (m *MockSessionStore) ListSessions(ctx context.Context, opts domain.ListOptions) ([]*domain.Session, error) {
	args := m.Called(ctx, opts)

	var sessions []*domain.Session
	if args.Get(0) != nil {
		sessions = args.Get(0).([]*domain.Session)
	}

	return sessions, args.Error(1)
}

// CreateMessage provides a mock function.
func (m *MockSessionStore) CreateMessage(ctx context.Context, in domain.NewMessage) (*domain.SessionMessage, error) {
	args := m.Called(ctx, in)

	var msg *domain.SessionMessage
	if fn, ok := args.Get(0).(func(context.Context, domain.NewMessage) *domain.SessionMessage); ok {
		msg = fn(ctx, in)
	} else if args.Get(0) != nil {
		msg = args.Get(0).(*domain.SessionMessage)
	}

	return msg, args.Error(1)
}

// ListMessages provides a mock function.
func (m *MockSessionStore) ListMessages(ctx context.Context, sessionID string) ([]*domain.SessionMessage, error) {
	args := m.Called(ctx, sessionID)

	var msgs []*domain.SessionMessage
	if args.Get(0) != nil {
		msgs = args.Get(0).([]*domain.SessionMessage)
	}

	return msgs, args.Error(1)
}

// MarkMessageIndexed provides a mock function.
func (m *MockSessionStore) MarkMessageIndexed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CreateSession expects a CreateSession call.
func (e *MockSessionStoreExpecter) CreateSession(ctx, in any) *mock.Call {
	return e.mock.On("CreateSession", ctx, in)
}

// GetSession expects a GetSession call.
func (e *MockSessionStoreExpecter) GetSession(ctx, id any) *mock.Call {
	return e.mock.On("GetSession", ctx, id)
}

// ListSessions expects a ListSessions call.
func (e *MockSessionStoreExpecter) ListSessions(ctx, opts any) *mock.Call {
	return e.mock.On("ListSessions", ctx, opts)
}

// CreateMessage expects a CreateMessage call.
func (e *MockSessionStoreExpecter) CreateMessage(ctx, in any) *mock.Call {
	return e.mock.On("CreateMessage", ctx, in)
}

// ListMessages expects a ListMessages call.
func (e *MockSessionStoreExpecter) ListMessages(ctx, sessionID any) *mock.Call {
	return e.mock.On("ListMessages", ctx, sessionID)
}

// MarkMessageIndexed expects a MarkMessageIndexed call.
func (e *MockSessionStoreExpecter) MarkMessageIndexed(ctx, id any) *mock.Call {
	return e.mock.On("MarkMessageIndexed", ctx, id)
}
