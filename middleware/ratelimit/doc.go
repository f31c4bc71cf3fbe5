// Package ratelimit fornece adapters HTTP (net/http) para rate limit e limite de concorrência.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (decisão allow/deny, acquire/timeout) sem net/http
//   - infra: implementações concretas (janela deslizante, semáforo, estatísticas)
//   - ratelimit (este pacote): middlewares HTTP + extração de chave + tradução para status/headers
//
// Fluxo no POST /submit:
//
//  1. Extrai a chave do cliente (primeiro valor do X-Forwarded-For, senão o peer, senão "unknown")
//  2. Chama a camada application, que registra a tentativa antes de qualquer validação
//  3. Se bloqueado, delega a resposta para Options.OnReject (429 por padrão)
//  4. Se permitido, chama o próximo handler
package ratelimit
