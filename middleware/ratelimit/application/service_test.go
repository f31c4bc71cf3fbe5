package application

import (
	"testing"
	"time"

	"meme-survey/middleware/ratelimit/domain"

	"github.com/stretchr/testify/assert"
)

type fakeLimiter struct {
	res  domain.Reservation
	keys []domain.Key
}

func (f *fakeLimiter) Reserve(k domain.Key) domain.Reservation {
	f.keys = append(f.keys, k)
	return f.res
}

func TestService_Decide_AllowsWhenNoLimiter(t *testing.T) {
	svc := Service{Limit: 15}
	dec := svc.Decide("k")
	assert.True(t, dec.Allowed)
	assert.Equal(t, 15, dec.Remaining)
	assert.Zero(t, dec.RetryAfter)
}

func TestService_Decide_AllowedComputesRemaining(t *testing.T) {
	lim := &fakeLimiter{res: domain.Reservation{OK: true, Count: 4}}
	svc := Service{Limiter: lim, Limit: 15}

	dec := svc.Decide("10.0.0.1")
	assert.True(t, dec.Allowed)
	assert.Equal(t, 11, dec.Remaining)
	assert.Equal(t, []domain.Key{"10.0.0.1"}, lim.keys)
}

func TestService_Decide_BlockedUsesLimiterRetryAfter(t *testing.T) {
	lim := &fakeLimiter{res: domain.Reservation{OK: false, Count: 15, RetryAfter: 42 * time.Second}}
	svc := Service{Limiter: lim, Limit: 15}

	dec := svc.Decide("k")
	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, dec.Remaining)
	assert.Equal(t, 42*time.Second, dec.RetryAfter)
}

func TestService_Decide_BlockedFallsBackToDefaultRetryAfter(t *testing.T) {
	lim := &fakeLimiter{res: domain.Reservation{OK: false, Count: 15}}

	dec := Service{Limiter: lim, Limit: 15}.Decide("k")
	assert.Equal(t, 1*time.Second, dec.RetryAfter)

	dec = Service{Limiter: lim, Limit: 15, RetryAfter: 2500 * time.Millisecond}.Decide("k")
	assert.Equal(t, 2500*time.Millisecond, dec.RetryAfter)
}
