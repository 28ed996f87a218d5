package lua

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// call is one queued operation on the Lua state.
type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Executor serializes operations on one LState through a single worker
// goroutine. gopher-lua states must never be touched from two
// goroutines at once; callers from anywhere funnel through Do.
type Executor struct {
	L     *lua.LState
	queue chan *call

	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewExecutor creates an executor for L. Run must be started on the
// goroutine that owns the state.
func NewExecutor(L *lua.LState, queueSize int) *Executor {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Executor{
		L:     L,
		queue: make(chan *call, queueSize),
		done:  make(chan struct{}),
	}
}

// Run processes queued operations until the context is cancelled or
// the executor is closed.
func (e *Executor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			e.drain(ctx.Err())
			return
		case <-e.done:
			e.drain(ErrClosed)
			return
		case c := <-e.queue:
			e.finish(c, e.run(c))
		}
	}
}

// run executes one operation with panic recovery, so a broken plugin
// cannot take down the worker goroutine.
func (e *Executor) run(c *call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("lua: panic in plugin code")
			}
		}
	}()
	return c.fn(e.L)
}

// finish delivers a result without blocking.
func (e *Executor) finish(c *call, err error) {
	select {
	case c.result <- err:
	default:
	}
	close(c.result)
}

// drain fails all queued operations with err.
func (e *Executor) drain(err error) {
	for {
		select {
		case c := <-e.queue:
			e.finish(c, err)
		default:
			return
		}
	}
}

// Do runs fn on the worker goroutine and waits for it.
func (e *Executor) Do(ctx context.Context, fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrClosed
	}

	c := &call{fn: fn, result: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	case e.queue <- c:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-c.result:
		if !ok {
			return ErrClosed
		}
		return err
	}
}

// DoAsync queues fn without waiting for completion.
func (e *Executor) DoAsync(fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrClosed
	}

	c := &call{fn: fn, result: make(chan error, 1)}
	select {
	case <-e.done:
		return ErrClosed
	case e.queue <- c:
		go func() { <-c.result }()
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the executor. Queued operations fail with ErrClosed.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.done)
	})
}

// IsClosed reports whether Close was called.
func (e *Executor) IsClosed() bool {
	return e.closed.Load()
}
