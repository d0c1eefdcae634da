package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// MockProjectStore is a mock of domain.ProjectStore.
type MockProjectStore struct {
	mock.Mock
}

// MockProjectStoreExpecter records expectations on MockProjectStore.
type MockProjectStoreExpecter struct {
	mock *mock.Mock
}

// NewMockProjectStore creates a mock that asserts its expectations on cleanup.
func NewMockProjectStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProjectStore {
	m := &MockProjectStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EXPECT returns the expecter.
func (m *MockProjectStore) EXPECT() *MockProjectStoreExpecter {
	return &MockProjectStoreExpecter{mock: &m.Mock}
}

// CreateProject provides a mock function.
func (m *MockProjectStore) CreateProject(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	args := m.Called(ctx, in)

	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}

	return project, args.Error(1)
}

// ListProjects provides a mock function.
func (m *MockProjectStore) ListProjects(ctx context.Context, opts domain.ListOptions) ([]*domain.Project, error) {
	args := m.Called(ctx, opts)

	var projects []*domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]*domain.Project)
	}

	return projects, args.Error(1)
}

// GetProject provides a mock function.
func (m *MockProjectStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)

	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}

	return project, args.Error(1)
}

// CreateProject expects a CreateProject call.
func (e *MockProjectStoreExpecter) CreateProject(ctx, in any) *mock.Call {
	return e.mock.On("CreateProject", ctx, in)
}

// ListProjects expects a ListProjects call.
func (e *MockProjectStoreExpecter) ListProjects(ctx, opts any) *mock.Call {
	return e.mock.On("ListProjects", ctx, opts)
}

// GetProject expects a GetProject call.
func (e *MockProjectStoreExpecter) GetProject(ctx, id any) *mock.Call {
	return e.mock.On("GetProject", ctx, id)
}
