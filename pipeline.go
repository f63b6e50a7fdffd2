package chain

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Pipeline is an ordered list of steps run one after another against a
// shared *T. Steps are only ever appended; register them all before the
// first call to Execute.
type Pipeline[T any] struct {
	steps  []Step[T]
	hooks  Hooks[T]
	logger *slog.Logger
	limit  int
	ids    IDGenerator
}

// New creates an empty pipeline.
func New[T any](opts ...Option[T]) *Pipeline[T] {
	p := &Pipeline[T]{
		steps:  make([]Step[T], 0),
		logger: slog.New(slog.DiscardHandler),
		ids:    RandomID{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register appends a step and returns p.
//
// def is one of:
//   - a [Func] or a func(context.Context, *T, any) error;
//   - a [Runner], including another *Pipeline[T];
//   - nil, which registers a step that does nothing.
//
// Any other value is accepted too, and fails with [ErrNotCallable] when the
// step runs. meta, when given and non-nil, is handed to the step and to the
// hooks around it. Otherwise a Runner gets itself and everything else gets an
// empty [Meta].
func (p *Pipeline[T]) Register(def any, meta ...any) *Pipeline[T] {
	p.steps = append(p.steps, normalize[T](def, meta))
	return p
}

// Steps returns a copy of the registered steps.
func (p *Pipeline[T]) Steps() []Step[T] {
	return slices.Clone(p.steps)
}

// link is one continuation of a run, tagged with the step it belongs to.
type link[T any] struct {
	step int
	next continuation[T]
}

// chain lays out the before, body and after continuations of every step.
func (p *Pipeline[T]) chain() []link[T] {
	links := make([]link[T], 0, 3*len(p.steps))
	for i, s := range p.steps {
		links = append(links,
			link[T]{i, wrap(p.hooks.Before, s.Meta)},
			link[T]{i, wrap(s.Op, s.Meta)},
			link[T]{i, wrap(p.hooks.After, s.Meta)},
		)
	}
	return links
}

// Execute runs every step in registration order and returns data once the
// last one has completed. A nil data starts the run from a fresh zero T.
//
// The returned pointer is always data itself. The run stops at the first
// error from a hook or a step, which is returned unchanged; steps that
// already ran are not undone. A done ctx stops the run before the next step.
func (p *Pipeline[T]) Execute(ctx context.Context, data *T) (*T, error) {
	if data == nil {
		data = fresh[T]()
	}
	p.logger.DebugContext(ctx, "run start", "pipeline", Name[T](p), "steps", len(p.steps))

	current := -1
	stepCtx := ctx
	for _, l := range p.chain() {
		if l.step != current {
			if ctx.Err() != nil {
				return nil, context.Cause(ctx)
			}
			current = l.step
			s := p.steps[current]
			stepCtx = withStep(ctx, StepInfo{
				ID:      p.ids.ID(),
				Index:   current,
				Name:    s.Name,
				Started: time.Now(),
			})
			p.logger.DebugContext(stepCtx, "step", "index", current, "name", s.Name)
		}
		var err error
		if data, err = l.next(stepCtx, data); err != nil {
			p.logger.DebugContext(stepCtx, "step failed", "index", current, "name", p.steps[current].Name, "err", err)
			return nil, err
		}
	}

	p.logger.DebugContext(ctx, "run done", "pipeline", Name[T](p))
	return data, nil
}

// Run executes p against a parent's data, which makes a pipeline usable as a
// step of another pipeline.
func (p *Pipeline[T]) Run(ctx context.Context, data *T, _ any) error {
	_, err := p.Execute(ctx, data)
	return err
}

// String renders the registered steps as a tree.
func (p *Pipeline[T]) String() string {
	var buf strings.Builder
	p.tree(&buf, "")
	return buf.String()
}

func (p *Pipeline[T]) tree(buf *strings.Builder, indent string) {
	buf.WriteString(Name[T](p))
	for i, s := range p.steps {
		branch, child := "├── ", "│   "
		if i == len(p.steps)-1 {
			branch, child = "└── ", "    "
		}
		buf.WriteString("\n" + indent + branch)
		if s.nested != nil {
			s.nested.tree(buf, indent+child)
			continue
		}
		buf.WriteString(s.Name)
	}
}
