package remind

import (
	"context"
	"time"
)

// Source supplies the eligible record set for a run.
type Source interface {
	// EligibleMOUs returns every MOU whose validity window has not yet
	// closed relative to now, with its events attached.
	EligibleMOUs(ctx context.Context, now time.Time) ([]MOU, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, now time.Time) ([]MOU, error)

// EligibleMOUs implements Source.
func (fn SourceFunc) EligibleMOUs(ctx context.Context, now time.Time) ([]MOU, error) {
	return fn(ctx, now)
}
