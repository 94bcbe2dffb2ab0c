package expr

import (
	"errors"
	"time"
)

var (
	ErrCompile    = errors.New("expression does not compile")
	ErrRuntime    = errors.New("expression evaluation failed")
	ErrTimeout    = errors.New("expression evaluation timeout exceeded")
	ErrPoolClosed = errors.New("runtime pool is closed")
	ErrAcquire    = errors.New("runtime acquisition timeout")
)

// Config defines runtime limits
type Config struct {
	Timeout          time.Duration // Wall-clock budget of one session
	MaxCallStackSize int           // goja call stack limit
	AcquireTimeout   time.Duration // Pool wait before ErrAcquire
}

// DefaultConfig returns the default runtime limits
func DefaultConfig() Config {
	return Config{
		Timeout:          10 * time.Second,
		MaxCallStackSize: 1024,
		AcquireTimeout:   5 * time.Second,
	}
}
