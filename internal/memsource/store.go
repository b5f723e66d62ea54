// Package memsource provides an in-memory implementation of graph.Source,
// used as the backing store for HCL-loaded workspaces and as a test fixture.
package memsource

import (
	"context"
	"sync"

	"github.com/vk/taskgraphgo/internal/task"
)

// Store holds tasks grouped by workspace. All methods are safe for
// concurrent use; FetchNodes hands out snapshot copies, never the store's
// own slices.
type Store struct {
	mu sync.RWMutex
	// workspaces preserves insertion order per workspace so edge-list and
	// fetch ordering stay deterministic.
	workspaces map[string][]task.Task
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		workspaces: make(map[string][]task.Task),
	}
}

// Put inserts the task into its workspace, replacing any existing task with
// the same ID in place so ordering stays stable across overrides.
func (s *Store) Put(t task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.workspaces[t.Workspace]
	for i, existing := range tasks {
		if existing.ID == t.ID {
			tasks[i] = t
			return
		}
	}
	s.workspaces[t.Workspace] = append(tasks, t)
}

// Len reports how many tasks the given workspace holds.
func (s *Store) Len(scope string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces[scope])
}

// FetchNodes implements graph.Source. It returns up to limit tasks from the
// scope as an independent snapshot; an unknown scope yields an empty slice.
func (s *Store) FetchNodes(ctx context.Context, scope string, limit int) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := s.workspaces[scope]
	if limit >= 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	snapshot := make([]task.Task, len(tasks))
	for i, t := range tasks {
		snapshot[i] = t
		snapshot[i].BlockedBy = append([]string{}, t.BlockedBy...)
		snapshot[i].Blocks = append([]string{}, t.Blocks...)
	}
	return snapshot, nil
}
