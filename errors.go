package chain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotCallable is returned when a step registered with a value that is
	// neither a function nor a [Runner] is executed.
	ErrNotCallable = errors.New("step is not callable")

	// ErrNoStep is returned when the context carries no step.
	ErrNoStep = errors.New("no step in context")
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PanicError is returned in place of a panic raised by a step, a hook or a
// fan-out item.
type PanicError struct {
	Value any
	err   error
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, err: errors.Errorf("panic: %v", v)}
}

func (e *PanicError) Error() string {
	return e.err.Error()
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// StackTrace returns the stack recorded where the panic was recovered.
func (e *PanicError) StackTrace() errors.StackTrace {
	if st, ok := e.err.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Format prints the stack trace with %+v.
func (e *PanicError) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.Error())
}

// capturePanic turns a recovered panic into a *PanicError stored in err.
// It must be deferred directly.
func capturePanic(err *error) {
	if r := recover(); r != nil {
		*err = newPanicError(r)
	}
}

func notCallable(def any) error {
	return errors.Wrapf(ErrNotCallable, "%T", def)
}
