// Package domain define contratos e tipos de domínio para rate limit e concorrência.
//
// Este pacote não depende de net/http nem de implementações concretas.
// O rate limit aqui é uma janela deslizante (log de timestamps por chave),
// não um token bucket: cada chave guarda os instantes das tentativas recentes.
package domain
