package chain

import "context"

// continuation advances a run by one link and hands the shared data on.
type continuation[T any] func(context.Context, *T) (*T, error)

// wrap turns an optional operation into a continuation that always returns
// the data it was given. A nil op costs nothing.
func wrap[T any](op Func[T], meta any) continuation[T] {
	if op == nil {
		return func(_ context.Context, data *T) (*T, error) {
			return data, nil
		}
	}
	return func(ctx context.Context, data *T) (_ *T, err error) {
		defer capturePanic(&err)
		if err = op(ctx, data, meta); err != nil {
			return nil, err
		}
		return data, nil
	}
}
