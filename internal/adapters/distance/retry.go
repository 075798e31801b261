package distance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Policy retries transient failures with exponential backoff while
// respecting context cancellation. Every knob is configurable so callers
// never hard-wire attempt counts or delays at call sites.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// Sleep waits between attempts. Tests substitute a no-op.
	Sleep func(ctx context.Context, d time.Duration) error

	// Classify reports whether an error is worth retrying.
	Classify func(error) bool
}

// DefaultPolicy matches the upstream API's documented rate-limit behavior:
// a few quick attempts with doubling delays.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   200 * time.Millisecond,
		Multiplier:  2,
		Sleep:       sleepCtx,
		Classify:    IsTransient,
	}
}

// Do runs op until it succeeds, fails permanently, or attempts run out.
// The last error is returned after the final attempt.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	classify := p.Classify
	if classify == nil {
		classify = IsTransient
	}

	delay := p.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !classify(err) || attempt == attempts {
			return lastErr
		}

		if err := sleep(ctx, delay); err != nil {
			return fmt.Errorf("retry wait: %w", err)
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return lastErr
}

// IsTransient reports whether err looks like a temporary failure: a
// network error, an HTTP 429/5xx response, or a rate-limit API status.
func IsTransient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var ae *apiStatusError
	if errors.As(err, &ae) {
		switch ae.Status {
		case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "UNKNOWN_ERROR":
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
