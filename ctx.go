package chain

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const stepKey contextKey = "step"

// StepInfo describes the step whose hooks and body are currently running.
// The same StepInfo is seen by the before hook, the step and the after hook.
type StepInfo struct {
	ID      uuid.UUID
	Index   int
	Name    string
	Started time.Time
}

func withStep(ctx context.Context, info StepInfo) context.Context {
	return context.WithValue(ctx, stepKey, info)
}

// GetStep returns the step running under ctx.
func GetStep(ctx context.Context) (StepInfo, error) {
	info, ok := ctx.Value(stepKey).(StepInfo)
	if !ok {
		return StepInfo{}, ErrNoStep
	}
	return info, nil
}

// GetStepID returns the ID of the step running under ctx.
func GetStepID(ctx context.Context) (uuid.UUID, error) {
	info, err := GetStep(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return info.ID, nil
}

// IDGenerator produces step IDs.
type IDGenerator interface {
	ID() uuid.UUID
}

// RandomID generates random (version 4) UUIDs. It is the default.
type RandomID struct{}

func (RandomID) ID() uuid.UUID { return uuid.New() }

// StaticID generates sequential IDs starting at 1, which keeps test output stable.
type StaticID struct {
	n atomic.Uint64
}

func (s *StaticID) ID() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], s.n.Add(1))
	return id
}
