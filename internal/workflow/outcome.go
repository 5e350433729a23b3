// Package workflow separates the must-succeed part of an operation from its
// best-effort side effects.
//
// A workflow produces its primary record first. Side effects such as
// notifications run afterwards through Outcome.Attempt: their failures are
// logged and recorded on the outcome but never turn the operation into a
// failure.
package workflow

import (
	"context"

	"go.uber.org/zap"

	"tigerlife/internal/pkg/logger"
)

// Effect is the result of one best-effort step.
type Effect struct {
	Name string `json:"name"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

// Outcome is a primary result plus the secondary effects that followed it.
type Outcome[T any] struct {
	Record   T        `json:"record"`
	Warnings []string `json:"warnings,omitempty"`
	Effects  []Effect `json:"effects,omitempty"`

	log *zap.Logger
}

func New[T any](record T, log *zap.Logger) *Outcome[T] {
	return &Outcome[T]{Record: record, log: logger.OrNop(log)}
}

// Warn records a degraded-mode warning surfaced to the caller.
func (o *Outcome[T]) Warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// Attempt runs a best-effort step. A failure is logged and recorded; it does
// not stop later steps.
func (o *Outcome[T]) Attempt(ctx context.Context, name string, fn func(ctx context.Context) error, fields ...zap.Field) bool {
	err := fn(ctx)
	if err != nil {
		o.log.Warn("best-effort step failed",
			append(fields, zap.String("effect", name), zap.Error(err))...,
		)
		o.Effects = append(o.Effects, Effect{Name: name, Err: err.Error()})
		return false
	}
	o.Effects = append(o.Effects, Effect{Name: name, OK: true})
	return true
}

// Failed returns the effects that did not succeed.
func (o *Outcome[T]) Failed() []Effect {
	var out []Effect
	for _, e := range o.Effects {
		if !e.OK {
			out = append(out, e)
		}
	}
	return out
}
