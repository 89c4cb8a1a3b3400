package testutil

import (
	"time"

	"wordfolder/internal/workspace"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) {
	m.Called(userID)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) {
	m.Called(userID)
}

// MockWorkspaceRepository is a mock for WorkspaceRepository. With runs the
// callback against the workspace given to Return, or returns the error when
// the workspace is nil.
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) With(userID int64, fn func(ws *workspace.Workspace) error) error {
	args := m.Called(userID)
	if ws, ok := args.Get(0).(*workspace.Workspace); ok && ws != nil {
		return fn(ws)
	}
	return args.Error(1)
}

func (m *MockWorkspaceRepository) EvictIdle(ttl time.Duration) int {
	args := m.Called(ttl)
	return args.Int(0)
}

func (m *MockWorkspaceRepository) Count() int {
	args := m.Called()
	return args.Int(0)
}
