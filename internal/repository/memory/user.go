package memory

import (
	"sync"
	"time"

	"wordfolder/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

// NewUserRepo creates a new user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]*domain.User)}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	return ok && user.Authorized
}

// AuthorizeUser marks user as authorized, creating it if needed
func (r *UserRepo) AuthorizeUser(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		user = &domain.User{UserID: userID, CreatedAt: time.Now()}
		r.users[userID] = user
	}
	user.Authorized = true
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		r.users[userID] = &domain.User{UserID: userID, CreatedAt: time.Now()}
	}
}
