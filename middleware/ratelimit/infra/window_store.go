package infra

import (
	"sync"
	"time"

	"meme-survey/middleware/ratelimit/domain"

	"code.cloudfoundry.org/clock"
)

// WindowStore guarda, por chave, os instantes das tentativas dentro da janela.
//
// A poda acontece a cada uso (Reserve), não num timer. Chaves nunca são
// removidas, a não ser que Sweep/StartJanitor sejam usados.
type WindowStore struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	clock   clock.Clock
	max     int
	window  time.Duration
}

type WindowOption func(*WindowStore)

func WithClock(c clock.Clock) WindowOption {
	return func(s *WindowStore) { s.clock = c }
}

func NewWindowStore(max int, window time.Duration, opts ...WindowOption) *WindowStore {
	s := &WindowStore{
		entries: make(map[string][]time.Time),
		clock:   clock.NewClock(),
		max:     max,
		window:  window,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WindowStore) Max() int              { return s.max }
func (s *WindowStore) Window() time.Duration { return s.window }

// Reserve implementa domain.Limiter.
//
// Filtra os timestamps com idade < window; se sobrarem max ou mais, bloqueia.
// Senão registra agora. O slice filtrado é gravado de volta nos dois casos.
//
// O relógio é lido com o lock tomado: assim os instantes de uma chave ficam
// em ordem de processamento.
func (s *WindowStore) Reserve(key domain.Key) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	recent := s.prune(string(key), now)
	if len(recent) >= s.max {
		s.entries[string(key)] = recent
		var retry time.Duration
		if len(recent) > 0 {
			retry = s.window - now.Sub(recent[0])
		}
		return domain.Reservation{OK: false, Count: len(recent), RetryAfter: retry}
	}

	recent = append(recent, now)
	s.entries[string(key)] = recent
	return domain.Reservation{OK: true, Count: len(recent)}
}

func (s *WindowStore) prune(key string, now time.Time) []time.Time {
	times := s.entries[key]
	recent := make([]time.Time, 0, len(times))
	for _, t := range times {
		if now.Sub(t) < s.window {
			recent = append(recent, t)
		}
	}
	return recent
}

// Timestamps devolve uma cópia do que está gravado para a chave, sem podar.
func (s *WindowStore) Timestamps(key domain.Key) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	times := s.entries[string(key)]
	out := make([]time.Time, len(times))
	copy(out, times)
	return out
}

// Len é o número de chaves conhecidas.
func (s *WindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep remove chaves cujo acesso mais recente já saiu da janela.
// Retorna quantas foram removidas.
func (s *WindowStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	removed := 0
	for k, times := range s.entries {
		if len(times) == 0 || now.Sub(times[len(times)-1]) >= s.window {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// StartJanitor inicia uma goroutine que chama Sweep a cada `every`.
// Pare cancelando o contexto. every <= 0 não faz nada.
func (s *WindowStore) StartJanitor(ctx DoneContext, every time.Duration) {
	if every <= 0 {
		return
	}

	t := s.clock.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				s.Sweep()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
type DoneContext interface {
	Done() <-chan struct{}
}
