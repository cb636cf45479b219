package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
)

// MemoryTaskRepository is an in-memory task store for development and
// tests.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// NewMemoryTaskRepository creates an empty in-memory task store.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{}
}

// Put adds or replaces a task by ID.
func (r *MemoryTaskRepository) Put(task domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.tasks {
		if existing.ID == task.ID {
			r.tasks[i] = task
			return
		}
	}
	r.tasks = append(r.tasks, task)
}

// FindActiveByUserID returns the user's non-completed tasks in insertion
// order.
func (r *MemoryTaskRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Task
	for _, task := range r.tasks {
		if task.UserID == userID && !task.Completed {
			out = append(out, task)
		}
	}
	return out, nil
}

// ActiveUserIDs returns the distinct users with non-completed tasks.
func (r *MemoryTaskRepository) ActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, task := range r.tasks {
		if !task.Completed && !seen[task.UserID] {
			seen[task.UserID] = true
			ids = append(ids, task.UserID)
		}
	}
	return ids, nil
}
