package application

import (
	"time"

	"meme-survey/middleware/ratelimit/domain"
)

// Service concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
type Service struct {
	Limiter domain.Limiter
	// Limit é o teto por janela, usado só para calcular Remaining.
	Limit int
	// RetryAfter é o fallback quando o limiter não sabe quanto falta.
	RetryAfter time.Duration
}

func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Limiter == nil {
		return domain.Decision{Allowed: true, Limit: s.Limit, Remaining: s.Limit}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	res := s.Limiter.Reserve(key)
	remaining := s.Limit - res.Count
	if remaining < 0 {
		remaining = 0
	}
	if res.OK {
		return domain.Decision{Allowed: true, Limit: s.Limit, Remaining: remaining}
	}

	retry := res.RetryAfter
	if retry <= 0 {
		retry = s.RetryAfter
	}
	return domain.Decision{Allowed: false, Limit: s.Limit, Remaining: 0, RetryAfter: retry}
}
