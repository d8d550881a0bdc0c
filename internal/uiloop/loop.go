// Package uiloop provides the single UI thread that owns the window registry.
//
// Every registry and handle call runs inside a task executed by the loop
// goroutine. Other goroutines submit work with Post or Do. An X11 host drains
// Tasks() from its own event loop instead of calling Run, so X callbacks and
// tasks never run concurrently.
package uiloop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ErrStopped is returned when submitting to a loop that has shut down.
var ErrStopped = errors.New("ui loop stopped")

// Loop is a task queue executed on one goroutine.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// New creates a loop whose queue holds up to buffer pending tasks.
func New(buffer int, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		tasks:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post queues fn without waiting for it to run. It blocks only while the
// queue is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for its result. If ctx ends first the
// task may still run later; its result is discarded.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() { result <- fn() }

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call is Do for tasks that produce a value.
func Call[T any](ctx context.Context, l *Loop, fn func() (T, error)) (T, error) {
	var out T
	err := l.Do(ctx, func() error {
		v, err := fn()
		out = v
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Tasks exposes the queue for hosts that multiplex it with their own events.
// Pass each received task to Execute.
func (l *Loop) Tasks() <-chan func() { return l.tasks }

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Execute runs one task, logging a panic instead of propagating it.
func (l *Loop) Execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("UI task panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Run executes tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.tasks:
			l.Execute(fn)
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		}
	}
}

// Stop shuts the loop down. Queued tasks that have not started are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}
