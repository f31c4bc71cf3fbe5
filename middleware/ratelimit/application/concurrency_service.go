package application

import (
	"context"
	"time"

	"meme-survey/middleware/ratelimit/domain"
)

// ConcurrencyService limita quantos requests ficam em voo ao mesmo tempo.
//
// Como o webhook e o lookup de MX podem travar indefinidamente, é isso que
// segura o número de goroutines presas em chamadas externas.
type ConcurrencyService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma vaga.
// Com AcquireTimeout <= 0 espera até o ctx cancelar; senão espera até o timeout.
// Se ok=false, nenhuma vaga foi adquirida.
func (s ConcurrencyService) Acquire(ctx context.Context) (func(), bool) {
	if s.Pool == nil {
		return func() {}, true
	}

	if s.AcquireTimeout <= 0 {
		return s.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return s.Pool.Acquire(acqCtx)
}

func (s ConcurrencyService) InFlight() int {
	if s.Pool == nil {
		return 0
	}
	return s.Pool.InUse()
}
