package memory

import (
	"sync"
	"time"

	"wordfolder/internal/workspace"
)

type entry struct {
	mu       sync.Mutex
	ws       *workspace.Workspace
	lastSeen time.Time
}

// WorkspaceRepo implements repository.WorkspaceRepository.
// Access to one user's workspace is serialized; different users do not block
// each other.
type WorkspaceRepo struct {
	mu      sync.Mutex
	entries map[int64]*entry
	now     func() time.Time
}

// NewWorkspaceRepo creates an empty registry
func NewWorkspaceRepo() *WorkspaceRepo {
	return &WorkspaceRepo{
		entries: make(map[int64]*entry),
		now:     time.Now,
	}
}

// With runs fn on the user's workspace, creating it on first use
func (r *WorkspaceRepo) With(userID int64, fn func(ws *workspace.Workspace) error) error {
	e := r.acquire(userID)
	defer e.mu.Unlock()

	err := fn(e.ws)

	r.mu.Lock()
	e.lastSeen = r.now()
	r.mu.Unlock()

	return err
}

// acquire returns the locked entry of the user. An entry evicted between the
// map lookup and the lock is not used.
func (r *WorkspaceRepo) acquire(userID int64) *entry {
	for {
		r.mu.Lock()
		e, ok := r.entries[userID]
		if !ok {
			e = &entry{ws: workspace.New(userID), lastSeen: r.now()}
			r.entries[userID] = e
		}
		r.mu.Unlock()

		e.mu.Lock()

		r.mu.Lock()
		live := r.entries[userID] == e
		r.mu.Unlock()

		if live {
			return e
		}
		e.mu.Unlock()
	}
}

// EvictIdle drops workspaces not used for longer than ttl. Workspaces that are
// in use right now are kept.
func (r *WorkspaceRepo) EvictIdle(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	evicted := 0
	for userID, e := range r.entries {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		delete(r.entries, userID)
		e.mu.Unlock()
		evicted++
	}
	return evicted
}

// Count returns the number of live workspaces
func (r *WorkspaceRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
