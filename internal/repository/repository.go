package repository

import (
	"time"

	"wordfolder/internal/workspace"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) bool
	AuthorizeUser(userID int64)
	EnsureUserExists(userID int64)
}

// WorkspaceRepository gives serialized access to per-user workspaces
type WorkspaceRepository interface {
	With(userID int64, fn func(ws *workspace.Workspace) error) error
	EvictIdle(ttl time.Duration) int
	Count() int
}
