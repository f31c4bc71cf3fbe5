// Package domain define a Submission da pesquisa, suas regras de saneamento e
// validação, o resultado da checagem de MX e a mensagem enviada ao webhook.
//
// Não depende de net/http. É usado tanto pelo servidor quanto pelo cliente
// (pacote client), que aplica as mesmas regras antes de enviar.
package domain
