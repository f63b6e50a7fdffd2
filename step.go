package chain

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Meta is the metadata a plain function step receives when none is given:
// an empty mapping.
type Meta map[string]any

// Func is the shape every registered step is normalised into. data is the
// pipeline's shared value; mutate it in place. meta is the step's metadata.
type Func[T any] func(ctx context.Context, data *T, meta any) error

// Run executes the function.
func (f Func[T]) Run(ctx context.Context, data *T, meta any) error {
	return f(ctx, data, meta)
}

// Runner is a step object. When registered without explicit metadata, the
// object itself is passed as meta so it can read its own configuration.
type Runner[T any] interface {
	Run(ctx context.Context, data *T, meta any) error
}

type typ struct{}

var (
	_ Runner[typ] = (*Pipeline[typ])(nil)
	_ Runner[typ] = Func[typ](nil)
)

// Step is a registered unit of work.
type Step[T any] struct {
	Name string
	Op   Func[T]
	Meta any

	nested *Pipeline[T]
}

// Name returns the type name of a step object, without the package path of T.
func Name[T any](r Runner[T]) string {
	t := reflect.TypeOf(r)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return fmt.Sprintf("%T", r)
	}
	var z [0]T // zero alloc
	pkg := reflect.TypeOf(z).Elem().PkgPath()
	if pkg == "" {
		return t.Name()
	}
	return strings.Replace(t.Name(), pkg+".", "", 1)
}

// normalize resolves a step definition into a Step once, at registration.
func normalize[T any](def any, meta []any) Step[T] {
	var z T
	s := Step[T]{Meta: explicit(meta)}
	switch d := def.(type) {
	case nil:
		s.Name = "Noop"
	case Func[T]:
		s.Name, s.Op = fmt.Sprintf("Func[%T]", z), d
	case func(context.Context, *T, any) error:
		s.Name, s.Op = fmt.Sprintf("Func[%T]", z), d
	case Runner[T]:
		s.Name = Name(d)
		s.Op = func(ctx context.Context, data *T, meta any) error {
			return d.Run(ctx, data, meta)
		}
		if s.Meta == nil {
			s.Meta = d
		}
		if p, ok := d.(*Pipeline[T]); ok {
			s.nested = p
		}
	default:
		s.Name = fmt.Sprintf("%T", def)
		s.Op = func(context.Context, *T, any) error {
			return notCallable(def)
		}
	}
	if s.Meta == nil {
		s.Meta = Meta{}
	}
	return s
}

// explicit returns the caller's metadata, or nil when none was given.
func explicit(meta []any) any {
	if len(meta) == 0 {
		return nil
	}
	return meta[0]
}

// fresh allocates a new zero T. Map types are made so the result is writable.
func fresh[T any]() *T {
	v := new(T)
	if rv := reflect.ValueOf(v).Elem(); rv.Kind() == reflect.Map {
		rv.Set(reflect.MakeMap(rv.Type()))
	}
	return v
}
