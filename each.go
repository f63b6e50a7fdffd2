package chain

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"
)

// ItemFunc is run once per item of a fan-out step. key is the item's index
// in a slice or its key in a map.
type ItemFunc[T, K, V any] func(ctx context.Context, data *T, item V, key K) error

// Each registers a step that runs op for every element of list concurrently
// and completes once all of them have. It returns p.
//
// list is captured when Each is called: elements replaced in place are seen
// by the step, elements appended afterwards are not. Use [EachSeq] over a
// sequence that reads the slice when iterated to pick those up.
func Each[T, E any](p *Pipeline[T], op ItemFunc[T, int, E], list []E, meta ...any) *Pipeline[T] {
	return EachSeq(p, op, slices.All(list), meta...)
}

// EachMap is Each over the entries of a map. The map is read when the step runs.
func EachMap[T any, K comparable, V any](p *Pipeline[T], op ItemFunc[T, K, V], list map[K]V, meta ...any) *Pipeline[T] {
	return EachSeq(p, op, maps.All(list), meta...)
}

// EachSeq registers a step that runs op for every pair yielded by list.
//
// Items run concurrently with no ordering between them. op is invoked for
// every pair list yields. The step fails with the first item error it
// observes, once list is exhausted, without waiting for the other items;
// those see their context cancelled. Under [WithFanOutLimit], pairs not yet
// started when an item fails are skipped. What the
// items return is discarded, so they report results by writing to data,
// typically into a slot of their own (see [Slots]).
//
// meta defaults to an empty [Meta].
func EachSeq[T, K, V any](p *Pipeline[T], op ItemFunc[T, K, V], list iter.Seq2[K, V], meta ...any) *Pipeline[T] {
	var z T
	s := Step[T]{
		Name: fmt.Sprintf("Each[%T]", z),
		Op: func(ctx context.Context, data *T, _ any) error {
			return fanOut(ctx, p.limit, data, op, list)
		},
		Meta: explicit(meta),
	}
	if s.Meta == nil {
		s.Meta = Meta{}
	}
	p.steps = append(p.steps, s)
	return p
}

func fanOut[T, K, V any](ctx context.Context, limit int, data *T, op ItemFunc[T, K, V], list iter.Seq2[K, V]) error {
	if list == nil {
		return nil
	}
	g, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	failed := make(chan error, 1)
	stopped := false
	for key, item := range list {
		// g.Go blocks once the limit is reached; stop feeding a failed group.
		if limit > 0 && groupCtx.Err() != nil {
			stopped = true
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if err != nil {
					select {
					case failed <- err:
					default:
					}
				}
			}()
			defer capturePanic(&err)
			return op(groupCtx, data, item, key)
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-failed:
		return err
	case err := <-done:
		if err == nil && stopped {
			err = context.Cause(groupCtx)
		}
		return err
	}
}
