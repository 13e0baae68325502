package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedFunc struct {
	name string
	fn   func(context.Context) error
}

type closer struct {
	mu     sync.Mutex
	funcs  []namedFunc
	once   sync.Once
	logger Logger
}

var global = New()

func New() *closer { return &closer{logger: noopLogger{}} }

func SetLogger(l Logger)                                   { global.SetLogger(l) }
func Add(fn func(context.Context) error)                   { global.Add(fn) }
func AddNamed(name string, fn func(context.Context) error) { global.AddNamed(name, fn) }
func CloseAll(ctx context.Context) error                   { return global.CloseAll(ctx) }

func (c *closer) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *closer) Add(fn func(context.Context) error) {
	c.AddNamed("unnamed", fn)
}

func (c *closer) AddNamed(name string, fn func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: fn})
}

// CloseAll runs registered functions in reverse order. Subsequent calls are no-ops.
func (c *closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.logger
		c.mu.Unlock()

		errs := make([]error, 0)
		for i := len(funcs) - 1; i >= 0; i-- {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}

			f := funcs[i]
			if err := f.fn(ctx); err != nil {
				log.Error(ctx, "failed to close", zap.String("name", f.name), zap.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
				continue
			}
			log.Info(ctx, "closed", zap.String("name", f.name))
		}

		result = errors.Join(errs...)
	})

	return result
}

type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...zap.Field)  {}
func (noopLogger) Error(context.Context, string, ...zap.Field) {}
