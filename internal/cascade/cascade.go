// Package cascade resolves lead fields by trying an ordered list of sources
// and stopping at the first that produces a value. Source failures are
// recorded and treated as misses, never propagated.
package cascade

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Source is one strategy for resolving a value of type T for a lead. Attempt
// returns the value, whether it found one, and any error encountered. An
// error always implies found=false.
type Source[T any] interface {
	Name() string
	Attempt(ctx context.Context, lead *model.Lead) (T, bool, error)
}

// Attempt records the outcome of one source in a resolution.
type Attempt struct {
	Source string `json:"source"`
	Found  bool   `json:"found"`
	Error  string `json:"error,omitempty"`
}

// Result is the outcome of a full cascade run.
type Result[T any] struct {
	Value    T         `json:"value"`
	Found    bool      `json:"found"`
	Winner   string    `json:"winner,omitempty"`
	Attempts []Attempt `json:"attempts"`
}

// Resolve runs sources in order until one succeeds. Every source consulted
// gets an entry in the attempts ledger, including the winner.
func Resolve[T any](ctx context.Context, field string, lead *model.Lead, sources []Source[T]) Result[T] {
	var res Result[T]

	for _, src := range sources {
		if ctx.Err() != nil {
			return res
		}

		value, found, err := src.Attempt(ctx, lead)
		attempt := Attempt{Source: src.Name(), Found: found}
		if err != nil {
			attempt.Error = err.Error()
			attempt.Found = false
			res.Attempts = append(res.Attempts, attempt)
			zap.L().Debug("cascade: source failed",
				zap.String("field", field),
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		res.Attempts = append(res.Attempts, attempt)

		if found {
			res.Value = value
			res.Found = true
			res.Winner = src.Name()
			zap.L().Debug("cascade: resolved",
				zap.String("field", field),
				zap.String("source", src.Name()))
			return res
		}
	}

	zap.L().Debug("cascade: unresolved",
		zap.String("field", field),
		zap.Int("sources_tried", len(res.Attempts)))
	return res
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] struct {
	SourceName string
	Fn         func(ctx context.Context, lead *model.Lead) (T, bool, error)
}

func (s SourceFunc[T]) Name() string { return s.SourceName }

func (s SourceFunc[T]) Attempt(ctx context.Context, lead *model.Lead) (T, bool, error) {
	return s.Fn(ctx, lead)
}

// SetIfEmpty assigns value to *dst only when *dst holds the zero string.
// Returns whether the assignment happened.
func SetIfEmpty(dst *string, value string) bool {
	if *dst != "" || value == "" {
		return false
	}
	*dst = value
	return true
}

// SetIfZero assigns value to *dst only when *dst is zero.
func SetIfZero(dst *int, value int) bool {
	if *dst != 0 || value == 0 {
		return false
	}
	*dst = value
	return true
}
