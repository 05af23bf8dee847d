package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Func is the body of a periodic task. The context is cancelled when the task stops,
// so in-flight work started by a tick is abandoned with it.
type Func func(context.Context)

// TaskConfig configures a periodic task.
type TaskConfig struct {
	Interval  time.Duration
	Immediate bool
	Logger    *zap.Logger
}

// Task runs a function on a fixed interval until stopped. Ticks never overlap:
// a slow run delays the next one instead of running concurrently.
type Task struct {
	name      string
	fn        Func
	interval  time.Duration
	immediate bool
	logger    *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewTask builds a stopped task.
func NewTask(name string, fn Func, cfg TaskConfig) *Task {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Task{
		name:      name,
		fn:        fn,
		interval:  cfg.Interval,
		immediate: cfg.Immediate,
		logger:    cfg.Logger,
	}
}

// Start launches the task goroutine. Calling it more than once, or after Stop, is a no-op.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.started = true
	t.wg.Add(1)
	go t.loop()
	t.logger.Sugar().Debugw("task started", "task", t.name, "interval", t.interval)
}

// Stop cancels the task and waits for the running tick, if any, to return.
func (t *Task) Stop() {
	t.mu.Lock()
	if !t.started || t.stopped {
		t.stopped = true
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.cancel()
	t.mu.Unlock()
	t.wg.Wait()
	t.logger.Sugar().Debugw("task stopped", "task", t.name)
}

// Running reports whether the task has been started and not yet stopped.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && !t.stopped
}

func (t *Task) loop() {
	defer t.wg.Done()
	if t.immediate {
		t.run()
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			t.run()
		}
	}
}

func (t *Task) run() {
	if t.ctx.Err() != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.logger.Sugar().Errorw("task panicked", "task", t.name, "panic", r)
		}
	}()
	t.fn(t.ctx)
}
