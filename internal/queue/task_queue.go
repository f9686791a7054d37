package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/tevino/abool"
	"go.uber.org/atomic"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

// Task is one unit of capture work. Once dequeued it runs to completion.
type Task func(ctx context.Context) error

type TaskQueueInterface interface {
	Enqueue(name string, task Task) (<-chan error, error)
	Pending() int64
	Shutdown(ctx context.Context) error
}

type job struct {
	id   string
	name string
	task Task
	done chan error
}

// TaskQueue runs tasks one at a time in enqueue order on a single worker.
type TaskQueue struct {
	jobs     chan job
	mu       sync.RWMutex
	closed   *abool.AtomicBool
	pending  *atomic.Int64
	finished chan struct{}
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewTaskQueue(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) TaskQueueInterface {
	size := conf.Capture.QueueSize
	if size <= 0 {
		size = 1
	}
	q := &TaskQueue{
		jobs:     make(chan job, size),
		closed:   abool.New(),
		pending:  atomic.NewInt64(0),
		finished: make(chan struct{}),
		logger:   logger,
		metrics:  metrics,
	}
	go q.work()
	return q
}

// Enqueue schedules a task and returns a channel that receives its result
// exactly once.
func (q *TaskQueue) Enqueue(name string, task Task) (<-chan error, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed.IsSet() {
		return nil, models.ErrQueueClosed
	}

	j := job{id: newTaskId(), name: name, task: task, done: make(chan error, 1)}
	q.metrics.SetQueuePending(q.pending.Inc())

	select {
	case q.jobs <- j:
		q.logger.Debugf(providers.TypeCapture, "Queued %s (%s)", j.name, j.id)
		return j.done, nil
	default:
		q.metrics.SetQueuePending(q.pending.Dec())
		return nil, models.ErrQueueFull
	}
}

// Pending counts tasks waiting plus the one running.
func (q *TaskQueue) Pending() int64 {
	return q.pending.Load()
}

// Shutdown stops intake and waits for queued tasks to drain or ctx to end.
func (q *TaskQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed.SetToIf(false, true) {
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue drain: %d task(s) left: %w", q.pending.Load(), ctx.Err())
	}
}

func (q *TaskQueue) work() {
	defer close(q.finished)
	for j := range q.jobs {
		err := q.run(j)
		q.metrics.SetQueuePending(q.pending.Dec())
		j.done <- err
		close(j.done)
	}
}

func (q *TaskQueue) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", j.name, r)
			q.logger.Errorf(providers.TypeCapture, "%s", err)
		}
	}()

	q.logger.Debugf(providers.TypeCapture, "Running %s (%s)", j.name, j.id)
	err = j.task(context.Background())
	if err != nil {
		q.logger.Errorf(providers.TypeCapture, "Task %s (%s) failed: %s", j.name, j.id, err)
	}
	return err
}

func newTaskId() string {
	u, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return u.String()
}
