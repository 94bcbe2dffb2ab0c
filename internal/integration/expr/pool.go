package expr

import (
	"context"
	"sync"
	"time"
)

// Pool manages a fixed set of reusable runtimes
type Pool struct {
	config   Config
	runtimes chan *Runtime
	size     int
	mu       sync.RWMutex
	closed   bool
}

// NewPool creates a runtime pool
func NewPool(config Config, size int) (*Pool, error) {
	if size <= 0 {
		size = 4
	}

	pool := &Pool{
		config:   config,
		runtimes: make(chan *Runtime, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		rt, err := New(config)
		if err != nil {
			pool.Close()
			return nil, err
		}
		pool.runtimes <- rt
	}

	return pool, nil
}

// Acquire takes a runtime from the pool, waiting at most AcquireTimeout
func (p *Pool) Acquire(ctx context.Context) (*Runtime, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	wait := p.config.AcquireTimeout
	if wait <= 0 {
		wait = DefaultConfig().AcquireTimeout
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case rt := <-p.runtimes:
		return rt, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrAcquire
	}
}

// Release resets a runtime and returns it to the pool
func (p *Pool) Release(rt *Runtime) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return rt.Close()
	}

	if err := rt.Reset(); err != nil {
		rt.Close()
		if fresh, err := New(p.config); err == nil {
			p.runtimes <- fresh
		}
		return err
	}

	select {
	case p.runtimes <- rt:
		return nil
	default:
		return rt.Close()
	}
}

// Run binds prog to a pooled runtime and calls fn with the session. An
// evaluation failure recorded by the session takes precedence over the
// error fn returns, since it is usually the cause.
func (p *Pool) Run(ctx context.Context, prog *Program, fn func(*Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rt, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(rt)

	s, err := rt.Bind(ctx, prog)
	if err != nil {
		return err
	}
	defer s.Close()

	err = fn(s)
	if s.Err() != nil {
		return s.Err()
	}
	return err
}

// Close closes the pool and every idle runtime
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	close(p.runtimes)

	for rt := range p.runtimes {
		rt.Close()
	}

	return nil
}

// Stats returns pool statistics
func (p *Pool) Stats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"size":      p.size,
		"available": len(p.runtimes),
		"in_use":    p.size - len(p.runtimes),
		"closed":    p.closed,
	}
}
