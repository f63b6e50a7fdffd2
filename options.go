package chain

import "log/slog"

// Hooks are optional functions invoked around every step of a pipeline.
// Before runs before the step body starts and After once it has completed;
// both receive the shared data and the step's metadata. A nil hook is a no-op.
type Hooks[T any] struct {
	Before Func[T]
	After  Func[T]
}

// Option configures a Pipeline.
type Option[T any] func(*Pipeline[T])

// WithHooks sets the hooks invoked around every step.
func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(p *Pipeline[T]) {
		p.hooks = h
	}
}

// WithLogger sets the logger the engine reports runs to, at debug level.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(p *Pipeline[T]) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithFanOutLimit bounds the number of items in flight in each fan-out step.
// Zero or less means no limit, which is the default.
func WithFanOutLimit[T any](n int) Option[T] {
	return func(p *Pipeline[T]) {
		p.limit = max(n, 0)
	}
}

// WithIDGenerator sets the generator of step IDs.
func WithIDGenerator[T any](g IDGenerator) Option[T] {
	return func(p *Pipeline[T]) {
		if g != nil {
			p.ids = g
		}
	}
}
