package lifecycle

import (
	"context"
	"log/slog"
	"time"
)

type Store interface {
	Enqueue(ctx context.Context, t Task) error
	Due(ctx context.Context, now time.Time, limit int) ([]Task, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
}

// Handler performs the actual transition for a due task.
type Handler interface {
	Handle(ctx context.Context, t Task) error
}

type Worker struct {
	log      *slog.Logger
	store    Store
	handler  Handler
	interval time.Duration
	batch    int
}

func NewWorker(log *slog.Logger, store Store, handler Handler) *Worker {
	return &Worker{
		log:      log,
		store:    store,
		handler:  handler,
		interval: 250 * time.Millisecond,
		batch:    100,
	}
}

// WithInterval overrides the polling interval, mainly for tests.
func (w *Worker) WithInterval(d time.Duration) *Worker {
	w.interval = d
	return w
}

// Run polls the store for due tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("lifecycle worker stopping")
			return nil
		case now := <-t.C:
			tasks, err := w.store.Due(ctx, now, w.batch)
			if err != nil {
				w.log.Error("lifecycle due query failed", "err", err)
				continue
			}
			for _, task := range tasks {
				if err := w.handler.Handle(ctx, task); err != nil {
					w.log.Error("lifecycle task failed", "task_id", task.ID, "order_id", task.OrderID, "err", err)
					if err := w.store.MarkFailed(ctx, task.ID, err.Error()); err != nil {
						w.log.Error("lifecycle mark failed error", "task_id", task.ID, "err", err)
					}
					continue
				}
				if err := w.store.MarkDone(ctx, task.ID); err != nil {
					w.log.Error("lifecycle mark done error", "task_id", task.ID, "err", err)
				}
			}
		}
	}
}
