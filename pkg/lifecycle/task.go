// Package lifecycle advances order status over time. Instead of a bare
// fire-and-forget timer, each transition is an explicit task with a
// scheduled-for time held in a store and processed by a worker loop, so
// a durable store implementation can survive restarts and tasks can be
// retried or inspected.
package lifecycle

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Task is one scheduled status transition for an order.
type Task struct {
	ID        string
	OrderID   string
	RunAt     time.Time
	Status    Status
	Attempts  int
	LastError string
	CreatedAt time.Time
}
