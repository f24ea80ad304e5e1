package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one unit of deferred work.
type Task struct {
	ID      string
	Kind    string
	Payload any
}

// HandlerFunc processes a task. A returned error triggers a retry until the
// attempt budget is spent.
type HandlerFunc func(ctx context.Context, task Task) error

// Options tunes a Runner. Zero values fall back to sane defaults.
type Options struct {
	Workers int
	Buffer  int
	Retries int
	Backoff time.Duration
}

// Runner drains a buffered task channel with a fixed pool of workers.
type Runner struct {
	name    string
	handle  HandlerFunc
	opts    Options
	logger  *zap.Logger
	tasks   chan Task
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewRunner builds a runner around the handler. Start must be called before
// Submit.
func NewRunner(name string, handle HandlerFunc, opts Options, logger *zap.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Buffer <= 0 {
		opts.Buffer = opts.Workers * 8
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		name:   name,
		handle: handle,
		opts:   opts,
		logger: logger,
		tasks:  make(chan Task, opts.Buffer),
	}
}

// Start launches the worker pool. Calling Start twice is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	for i := 0; i < r.opts.Workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
	r.running = true
	r.logger.Debug("task runner started",
		zap.String("runner", r.name),
		zap.Int("workers", r.opts.Workers),
	)
}

// Stop cancels the workers and waits for them to drain.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Debug("task runner stopped", zap.String("runner", r.name))
}

// Submit enqueues a task, blocking while the buffer is full.
func (r *Runner) Submit(task Task) error {
	r.mu.Lock()
	running := r.running
	ctx := r.ctx
	r.mu.Unlock()

	if !running {
		return fmt.Errorf("runner %s is not started", r.name)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("runner %s stopped: %w", r.name, ctx.Err())
	case r.tasks <- task:
		return nil
	}
}

func (r *Runner) work() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case task := <-r.tasks:
			r.run(task)
		}
	}
}

func (r *Runner) run(task Task) {
	for attempt := 0; ; attempt++ {
		err := r.handle(r.ctx, task)
		if err == nil {
			return
		}
		if attempt >= r.opts.Retries {
			r.logger.Error("task abandoned",
				zap.String("runner", r.name),
				zap.String("task", task.ID),
				zap.String("kind", task.Kind),
				zap.Error(err),
			)
			return
		}
		r.logger.Warn("task failed, retrying",
			zap.String("runner", r.name),
			zap.String("task", task.ID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-r.ctx.Done():
			return
		case <-time.After(r.opts.Backoff):
		}
	}
}
