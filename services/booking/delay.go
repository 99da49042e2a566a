package booking

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DelayPolicy paces remote calls. Pacing is backpressure avoidance toward the
// remote, not a correctness requirement, so runs and tests may disable it.
type DelayPolicy interface {
	Wait(ctx context.Context) error
}

type limiterDelay struct {
	limiter *rate.Limiter
}

func (d limiterDelay) Wait(ctx context.Context) error {
	return d.limiter.Wait(ctx)
}

// NewFixedDelay returns a policy spacing calls at least d apart. A zero or
// negative d disables pacing.
func NewFixedDelay(d time.Duration) DelayPolicy {
	if d <= 0 {
		return NoDelay()
	}
	return limiterDelay{limiter: rate.NewLimiter(rate.Every(d), 1)}
}

// NoDelay returns a policy that never waits.
func NoDelay() DelayPolicy {
	return limiterDelay{limiter: rate.NewLimiter(rate.Inf, 1)}
}
