// Package infra implementa os contratos de application: consulta de MX via DNS
// e entrega da mensagem num webhook HTTP (Discord).
package infra
