package hooks

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/veggiemonk/chain"
)

// Chain composes hook pairs into one. Before hooks run in the given order and
// After hooks in reverse, so the first pair wraps all the others. The first
// error stops the composed hook.
func Chain[T any](hs ...chain.Hooks[T]) chain.Hooks[T] {
	var before, after []chain.Func[T]
	for _, h := range hs {
		if h.Before != nil {
			before = append(before, h.Before)
		}
		if h.After != nil {
			after = append(after, h.After)
		}
	}

	var out chain.Hooks[T]
	if len(before) > 0 {
		out.Before = func(ctx context.Context, data *T, meta any) error {
			for _, f := range before {
				if err := f(ctx, data, meta); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if len(after) > 0 {
		out.After = func(ctx context.Context, data *T, meta any) error {
			for _, f := range slices.Backward(after) {
				if err := f(ctx, data, meta); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return out
}

// Logger returns hooks that log the start and the end of every step.
func Logger[T any](l *slog.Logger) chain.Hooks[T] {
	return chain.Hooks[T]{
		Before: func(ctx context.Context, _ *T, _ any) error {
			step, err := chain.GetStep(ctx)
			if err != nil {
				return nil
			}
			l.InfoContext(ctx, "start", "step", step.Name, "index", step.Index, "id", step.ID)
			return nil
		},
		After: func(ctx context.Context, _ *T, _ any) error {
			step, err := chain.GetStep(ctx)
			if err != nil {
				return nil
			}
			l.InfoContext(ctx, "done", "step", step.Name, "index", step.Index, "id", step.ID,
				"duration", time.Since(step.Started))
			return nil
		},
	}
}

// Timer returns hooks that report how long each step took, hooks included,
// once it has completed. Failed steps are not reported.
func Timer[T any](observe func(context.Context, chain.StepInfo, time.Duration)) chain.Hooks[T] {
	return chain.Hooks[T]{
		After: func(ctx context.Context, _ *T, _ any) error {
			step, err := chain.GetStep(ctx)
			if err != nil {
				return nil
			}
			observe(ctx, step, time.Since(step.Started))
			return nil
		},
	}
}
