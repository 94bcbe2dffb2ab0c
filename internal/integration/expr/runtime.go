package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// Runtime wraps a goja VM prepared for integrand evaluation
type Runtime struct {
	vm     *goja.Runtime
	config Config
	mu     sync.Mutex
}

// New creates a runtime
func New(config Config) (*Runtime, error) {
	r := &Runtime{config: config}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runtime) init() error {
	vm := goja.New()
	if r.config.MaxCallStackSize > 0 {
		vm.SetMaxCallStackSize(r.config.MaxCallStackSize)
	}

	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}

	// Math members as globals so expressions read like formulas
	mathObj := vm.Get("Math").ToObject(vm)
	for _, name := range mathObj.GetOwnPropertyNames() {
		if err := vm.Set(name, mathObj.Get(name)); err != nil {
			return err
		}
	}
	if err := vm.Set("ln", mathObj.Get("log")); err != nil {
		return err
	}

	r.vm = vm
	return nil
}

// Bind loads p into the runtime and starts the session watchdog. The
// runtime is held until the session is closed.
func (r *Runtime) Bind(ctx context.Context, p *Program) (*Session, error) {
	r.mu.Lock()

	if r.vm == nil {
		r.mu.Unlock()
		return nil, errors.New("runtime is closed")
	}

	val, err := r.vm.RunProgram(p.prog)
	if err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	fn, ok := goja.AssertFunction(val)
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: not a function", ErrCompile)
	}

	s := &Session{
		rt:   r,
		fn:   fn,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.watch(ctx, r.config.Timeout)
	return s, nil
}

// Eval evaluates p once at a scalar x
func (r *Runtime) Eval(ctx context.Context, p *Program, x float64) (float64, error) {
	s, err := r.Bind(ctx, p)
	if err != nil {
		return math.NaN(), err
	}
	defer s.Close()

	v := s.Scalar(x)
	return v, s.Err()
}

// Reset replaces the VM, dropping anything an expression assigned
func (r *Runtime) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.init()
}

// Close releases resources
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vm = nil
	return nil
}

// Session is one compiled integrand bound to one runtime. It must be used
// from a single goroutine.
type Session struct {
	rt    *Runtime
	fn    goja.Callable
	err   error
	calls int64

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func (s *Session) watch(ctx context.Context, timeout time.Duration) {
	defer close(s.done)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-expired:
		s.rt.vm.Interrupt(ErrTimeout)
	case <-ctx.Done():
		s.rt.vm.Interrupt(ctx.Err())
	case <-s.stop:
	}
}

// Scalar evaluates the integrand at x. It has the shape of quadrature.Func.
func (s *Session) Scalar(x float64) float64 {
	if s.err != nil {
		return math.NaN()
	}
	return s.call(s.rt.vm.ToValue(x))
}

// Vector evaluates the integrand at the point x. It has the shape of
// montecarlo.Func.
func (s *Session) Vector(x []float64) float64 {
	if s.err != nil {
		return math.NaN()
	}
	return s.call(s.rt.vm.ToValue(x))
}

func (s *Session) call(arg goja.Value) float64 {
	s.calls++
	v, err := s.fn(goja.Undefined(), arg)
	if err != nil {
		s.fail(err)
		return math.NaN()
	}
	return v.ToFloat()
}

func (s *Session) fail(err error) {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			s.err = cause
			return
		}
	}
	s.err = fmt.Errorf("%w: %v", ErrRuntime, err)
}

// Err returns the first evaluation failure, if any
func (s *Session) Err() error {
	return s.err
}

// Calls returns the number of evaluations attempted
func (s *Session) Calls() int64 {
	return s.calls
}

// Close stops the watchdog and returns the runtime
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.rt.vm.ClearInterrupt()
		s.rt.mu.Unlock()
	})
}
