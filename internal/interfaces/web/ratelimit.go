package web

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errThrottled = errors.New("too many requests, try again later")

// rateLimiter is a token bucket shared by every summarize request. Wait blocks
// until a permit is free, maxWait elapses or ctx ends.
type rateLimiter struct {
	mu         sync.Mutex
	permits    int
	maxPermits int
	refillRate time.Duration
	maxWait    time.Duration
	lastRefill time.Time
}

func newRateLimiter(maxPermits int, refillRate, maxWait time.Duration) *rateLimiter {
	if maxPermits <= 0 {
		maxPermits = 5
	}
	if refillRate <= 0 {
		refillRate = 10 * time.Second
	}
	if maxWait <= 0 {
		maxWait = 30 * time.Second
	}
	return &rateLimiter{
		permits:    maxPermits,
		maxPermits: maxPermits,
		refillRate: refillRate,
		maxWait:    maxWait,
		lastRefill: time.Now(),
	}
}

func (rl *rateLimiter) Wait(ctx context.Context) error {
	deadline := time.Now().Add(rl.maxWait)
	for {
		rl.mu.Lock()
		rl.refill(time.Now())
		if rl.permits > 0 {
			rl.permits--
			rl.mu.Unlock()
			return nil
		}
		waitTime := rl.refillRate - time.Since(rl.lastRefill)
		rl.mu.Unlock()

		if waitTime > time.Until(deadline) {
			return errThrottled
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (rl *rateLimiter) refill(now time.Time) {
	elapsed := now.Sub(rl.lastRefill)
	permitsToAdd := int(elapsed / rl.refillRate)
	if permitsToAdd > 0 {
		rl.permits = min(rl.permits+permitsToAdd, rl.maxPermits)
		rl.lastRefill = rl.lastRefill.Add(time.Duration(permitsToAdd) * rl.refillRate)
	}
}
