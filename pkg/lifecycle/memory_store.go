package lifecycle

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps lifecycle tasks in process memory. Pending tasks
// are lost on restart, which matches the in-memory storage scope; a
// durable Store implementation can replace it without touching the
// worker.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]Task
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

func (s *MemoryStore) Enqueue(_ context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.tasks[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

func (s *MemoryStore) Due(_ context.Context, now time.Time, limit int) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []Task
	for _, id := range s.order {
		t := s.tasks[id]
		if t.Status != StatusPending || t.RunAt.After(now) {
			continue
		}
		due = append(due, t)
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (s *MemoryStore) MarkDone(_ context.Context, id string) error {
	return s.setStatus(id, StatusDone, "")
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string, errMsg string) error {
	return s.setStatus(id, StatusFailed, errMsg)
}

func (s *MemoryStore) setStatus(id string, status Status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil
	}
	t.Status = status
	t.Attempts++
	t.LastError = errMsg
	s.tasks[id] = t
	return nil
}
