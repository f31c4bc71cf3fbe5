// Package application contém o caso de uso de envio de uma Submission:
// saneamento, validação, checagem de MX, composição e entrega.
//
// Não conhece net/http: o rate limit e a tradução para status HTTP ficam no
// adapter (pacote submission).
package application
