package domain

import "time"

// Key identifica o cliente (ex: IP de origem).
type Key string

// Reservation é o resultado de uma tentativa de registrar um acesso na janela.
type Reservation struct {
	OK bool
	// Count é quantos acessos ficaram na janela depois da tentativa.
	Count int
	// RetryAfter é quanto falta para o acesso mais antigo sair da janela.
	// Só é preenchido quando OK=false.
	RetryAfter time.Duration
}

// Limiter decide e registra acessos por chave.
//
// Reserve deve podar os timestamps fora da janela, decidir, e (se permitido)
// registrar o instante atual, tudo numa única operação atômica por chave.
type Limiter interface {
	Reserve(Key) Reservation
}

type Decision struct {
	Allowed bool
	Limit   int
	// Remaining é quantos acessos ainda cabem na janela atual.
	Remaining int
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
