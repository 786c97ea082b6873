// Package fetch is the data-loading state machine every view shares:
// Idle → Loading → {Ready, Failed}.
package fetch

import (
	"context"
	"log/slog"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one load.
type Result[T any] struct {
	State State
	Data  T
	Err   error
}

func (r Result[T]) Ok() bool { return r.State == Ready }

// Load runs fn and records its outcome. If ctx ended while fn was running the
// data is discarded: the view that asked for it is gone.
func Load[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) Result[T] {
	if err := ctx.Err(); err != nil {
		return Result[T]{State: Failed, Err: err}
	}

	data, err := fn(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		slog.Debug("Discarding result of abandoned load", "resource", name)
		return Result[T]{State: Failed, Err: ctxErr}
	}
	if err != nil {
		slog.Error("Failed to load resource", "resource", name, "error", err)
		return Result[T]{State: Failed, Err: err}
	}
	return Result[T]{State: Ready, Data: data}
}
