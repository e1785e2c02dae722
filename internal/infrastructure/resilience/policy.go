package resilience

import "time"

// RetryPolicy shapes the capped exponential backoff between attempts.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// AttemptTimeout bounds a single call; zero leaves only the caller's deadline.
	AttemptTimeout time.Duration
}

// BreakerPolicy configures the circuit breaker kept per operation.
type BreakerPolicy struct {
	Enabled          bool
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

type Config struct {
	Retry   RetryPolicy
	Breaker BreakerPolicy
}

// DefaultConfig suits the spell backend. A document waits at most the spell timeout, so
// retries are few and short, and an unhealthy server is skipped for a while instead of
// slowing every document in a batch.
func DefaultConfig() Config {
	return Config{
		Retry: RetryPolicy{
			MaxAttempts:    2,
			InitialBackoff: 150 * time.Millisecond,
			MaxBackoff:     600 * time.Millisecond,
			Multiplier:     2.0,
		},
		Breaker: BreakerPolicy{
			Enabled:          true,
			MinRequests:      5,
			FailureRatio:     0.6,
			OpenTimeout:      30 * time.Second,
			HalfOpenMaxCalls: 1,
		},
	}
}

func (c Config) normalize() Config {
	def := DefaultConfig()
	r := c.Retry
	if r.MaxAttempts <= 0 {
		r.MaxAttempts = def.Retry.MaxAttempts
	}
	if r.InitialBackoff <= 0 {
		r.InitialBackoff = def.Retry.InitialBackoff
	}
	if r.MaxBackoff <= 0 {
		r.MaxBackoff = def.Retry.MaxBackoff
	}
	r.MaxBackoff = max(r.MaxBackoff, r.InitialBackoff)
	if r.Multiplier < 1.0 {
		r.Multiplier = def.Retry.Multiplier
	}
	r.AttemptTimeout = max(r.AttemptTimeout, 0)

	b := c.Breaker
	if b.MinRequests == 0 {
		b.MinRequests = def.Breaker.MinRequests
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		b.FailureRatio = def.Breaker.FailureRatio
	}
	if b.OpenTimeout <= 0 {
		b.OpenTimeout = def.Breaker.OpenTimeout
	}
	if b.HalfOpenMaxCalls == 0 {
		b.HalfOpenMaxCalls = def.Breaker.HalfOpenMaxCalls
	}
	return Config{Retry: r, Breaker: b}
}

type backoff struct {
	next       time.Duration
	limit      time.Duration
	multiplier float64
}

func newBackoff(p RetryPolicy) *backoff {
	return &backoff{next: p.InitialBackoff, limit: p.MaxBackoff, multiplier: p.Multiplier}
}

// step returns the current wait and advances to the next one.
func (b *backoff) step() time.Duration {
	wait := min(b.next, b.limit)
	b.next = min(time.Duration(float64(b.next)*b.multiplier), b.limit)
	return wait
}
