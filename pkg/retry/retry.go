package retry

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/StackOverflowed512/flyer-agent/pkg/log"
)

type Operation = func() error

// Config describes a bounded exponential backoff.
//
// Before attempt n (0-based, n >= 1) the retrier sleeps
// InitialDelay * BackoffFactor^n, capped at MaxDelay, plus a uniform jitter in [0, Jitter).
type Config struct {
	MaxAttempts   int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxAttempts:   3,
		BackoffFactor: 2,
		InitialDelay:  time.Second,
		MaxDelay:      30 * time.Second,
		Jitter:        500 * time.Millisecond,
	}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Retrier struct {
	config    *Config
	retryable func(error) bool
	sleep     SleepFunc

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Retrier)

// WithRetryable limits retries to errors accepted by fn. Any other error is
// returned immediately after the attempt that produced it.
func WithRetryable(fn func(error) bool) Option {
	return func(r *Retrier) {
		r.retryable = fn
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(r *Retrier) {
		r.sleep = fn
	}
}

func WithRand(rnd *rand.Rand) Option {
	return func(r *Retrier) {
		r.rnd = rnd
	}
}

func NewRetrier(config *Config, opts ...Option) *Retrier {
	r := &Retrier{
		config:    config,
		retryable: func(error) bool { return true },
		sleep:     sleepCtx,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewDefaultRetrier(opts ...Option) *Retrier {
	return NewRetrier(NewDefaultConfig(), opts...)
}

// Do runs op until it succeeds, returns a non-retryable error, or the attempts
// are used up. The last error is returned unchanged.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	logger := log.FromCtx(ctx)

	attempts := r.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := r.Backoff(attempt)
			logger.Debug().
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Err(err).
				Msg("retrying after backoff")

			if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
				return sleepErr
			}
		}

		err = op()
		if err == nil {
			return nil
		}
		if !r.retryable(err) {
			return err
		}
	}
	return err
}

// Backoff returns the delay slept before the given attempt.
func (r *Retrier) Backoff(attempt int) time.Duration {
	delay := time.Duration(float64(r.config.InitialDelay) * math.Pow(r.config.BackoffFactor, float64(attempt)))
	if r.config.MaxDelay > 0 && delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter > 0 {
		r.mu.Lock()
		jitter := time.Duration(r.rnd.Float64() * float64(r.config.Jitter))
		r.mu.Unlock()
		delay += jitter
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
