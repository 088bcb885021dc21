package research

import (
	"context"
	"time"
)

// Pacer inserts a pause between sequential outbound search requests so the
// upstream provider isn't hammered. It is injected so tests run without
// real delays.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedPacer waits a fixed duration, honoring context cancellation. A zero
// or negative delay means no pause, so a configured pauseMillis of 0 is
// respected rather than replaced with a default.
type FixedPacer struct {
	delay time.Duration
}

func NewFixedPacer(delay time.Duration) *FixedPacer {
	return &FixedPacer{delay: delay}
}

func (p *FixedPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer never waits. Used in tests.
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error { return ctx.Err() }
