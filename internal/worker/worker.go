// Package worker runs a pure compute function off the interactive loop.
//
// The contract is poll-based: Send hands work over without blocking and
// reports false when a computation is already outstanding; Results drains a
// finished computation without blocking. At most one computation is in
// flight at a time. Arguments and results cross the boundary by value, so
// the caller's state is never aliased by the compute goroutine.
package worker

import (
	"errors"
	"sync"
)

// ErrDisconnected reports that the compute goroutine has terminated and the
// worker will never produce further results.
var ErrDisconnected = errors.New("worker: compute goroutine has exited")

// Worker is the capability interface shared by the goroutine-backed worker
// and the synchronous fallback. Implementations are not safe for use from
// multiple goroutines; the interactive loop is the single caller.
type Worker[A, R any] interface {
	// Send hands args off for computation. It returns false, without
	// blocking, when a previous computation has not been drained yet.
	Send(args A) (bool, error)
	// Results returns the outcome of a finished computation exactly once.
	// ok is false when nothing is ready.
	Results() (res R, ok bool, err error)
	// Computing reports whether a computation is outstanding: true from a
	// successful Send until the matching Results call.
	Computing() bool
	// Close stops the worker. The worker must not be sent work afterwards.
	Close()
}

type threaded[A, R any] struct {
	in        chan A
	out       chan R
	quit      chan struct{}
	done      chan struct{}
	stop      sync.Once
	computing bool
}

// New starts a goroutine-backed worker around fn.
func New[A, R any](fn func(A) R) Worker[A, R] {
	w := &threaded[A, R]{
		in:   make(chan A, 1),
		out:  make(chan R, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop(fn)
	return w
}

func (w *threaded[A, R]) loop(fn func(A) R) {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case args := <-w.in:
			select {
			case w.out <- fn(args):
			case <-w.quit:
				return
			}
		}
	}
}

func (w *threaded[A, R]) Send(args A) (bool, error) {
	select {
	case <-w.done:
		return false, ErrDisconnected
	default:
	}
	if w.computing {
		return false, nil
	}
	select {
	case w.in <- args:
		w.computing = true
		return true, nil
	default:
		return false, nil
	}
}

func (w *threaded[A, R]) Results() (R, bool, error) {
	var zero R
	select {
	case res := <-w.out:
		w.computing = false
		return res, true, nil
	default:
	}
	select {
	case <-w.done:
		return zero, false, ErrDisconnected
	default:
		return zero, false, nil
	}
}

func (w *threaded[A, R]) Computing() bool { return w.computing }

func (w *threaded[A, R]) Close() {
	w.stop.Do(func() { close(w.quit) })
}

type synchronous[A, R any] struct {
	fn        func(A) R
	result    R
	pending   bool
	computing bool
	closed    bool
}

// NewSynchronous returns a same-goroutine fallback that computes eagerly
// inside Send. It exists for environments where an isolated execution
// context is unavailable and preserves the single-flight contract.
func NewSynchronous[A, R any](fn func(A) R) Worker[A, R] {
	return &synchronous[A, R]{fn: fn}
}

func (w *synchronous[A, R]) Send(args A) (bool, error) {
	if w.closed {
		return false, ErrDisconnected
	}
	if w.pending {
		return false, nil
	}
	w.result = w.fn(args)
	w.pending = true
	w.computing = true
	return true, nil
}

func (w *synchronous[A, R]) Results() (R, bool, error) {
	var zero R
	if w.pending {
		w.pending = false
		w.computing = false
		return w.result, true, nil
	}
	if w.closed {
		return zero, false, ErrDisconnected
	}
	return zero, false, nil
}

func (w *synchronous[A, R]) Computing() bool { return w.computing }

func (w *synchronous[A, R]) Close() { w.closed = true }
