// Package affinity runs closures one at a time on a dedicated goroutine.
// State touched only from inside those closures needs no further locking.
package affinity

import (
	"context"
	"errors"

	"github.com/cheggaaa/mb/v3"
	"go.uber.org/atomic"
)

var ErrClosed = errors.New("executor closed")

type task struct {
	fn   func()
	done chan struct{}
}

type Executor struct {
	queue   *mb.MB[task]
	closed  chan struct{}
	running atomic.Bool
}

func New() *Executor {
	return &Executor{
		queue:  mb.New[task](0),
		closed: make(chan struct{}),
	}
}

// Run starts the executor goroutine
func (e *Executor) Run() {
	if e.running.Swap(true) {
		return
	}
	go e.process()
}

func (e *Executor) process() {
	defer close(e.closed)
	for {
		t, err := e.queue.WaitOne(context.Background())
		if err != nil {
			return
		}
		t.fn()
		if t.done != nil {
			close(t.done)
		}
	}
}

// Do runs fn on the executor goroutine and waits for it to finish.
// Calling Do from inside a running closure deadlocks.
func (e *Executor) Do(fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	if err := e.queue.Add(context.Background(), t); err != nil {
		return ErrClosed
	}
	select {
	case <-t.done:
		return nil
	case <-e.closed:
		select {
		case <-t.done:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Go schedules fn without waiting
func (e *Executor) Go(fn func()) error {
	if err := e.queue.Add(context.Background(), task{fn: fn}); err != nil {
		return ErrClosed
	}
	return nil
}

// Close stops accepting closures and waits for the goroutine to exit
func (e *Executor) Close() error {
	if err := e.queue.Close(); err != nil {
		return ErrClosed
	}
	if e.running.Load() {
		<-e.closed
	}
	return nil
}
