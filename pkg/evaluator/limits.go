package evaluator

import (
	"context"
	"errors"
	"time"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// DefaultMaxDepth is the call depth at which RecursionError is raised.
const DefaultMaxDepth = 1000

// Limits holds the resource limits for a program execution.
// Zero MaxSteps and Timeout mean unlimited.
type Limits struct {
	MaxDepth int
	MaxSteps int64
	Timeout  time.Duration
}

// Tracker tracks resource consumption during execution.
type Tracker struct {
	Steps int64
}

func (l Limits) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.Timeout > 0 {
		return context.WithTimeout(ctx, l.Timeout)
	}
	return context.WithCancel(ctx)
}

// tick is called before every statement and loop iteration.
func (ev *evaluator) tick(span ast.Span) error {
	if err := ev.ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			ev.in.emit(TraceBudgetExceeded, &span, map[string]string{"limit": "timeout"})
			return newError(diagnostics.EBudget, "Batas waktu eksekusi terlampaui (%s)", ev.in.opts.Limits.Timeout)
		}
		return newError(diagnostics.ECancelled, "Eksekusi dibatalkan")
	}
	ev.in.tracker.Steps++
	if max := ev.in.opts.Limits.MaxSteps; max > 0 && ev.in.tracker.Steps > max {
		ev.in.emit(TraceBudgetExceeded, &span, map[string]string{"limit": "steps"})
		return newError(diagnostics.EBudget, "Batas langkah eksekusi terlampaui (maks %d)", max)
	}
	return nil
}

func (ev *evaluator) enterCall() error {
	ev.depth++
	if ev.depth > ev.in.opts.Limits.MaxDepth {
		ev.depth--
		return newError(diagnostics.ERecursion,
			"Kedalaman rekursi maksimum terlampaui (%d)", ev.in.opts.Limits.MaxDepth)
	}
	return nil
}

func (ev *evaluator) leaveCall() {
	ev.depth--
}

