package domain

import (
	"fmt"
	"strings"
)

const (
	messageHeader = "📨 Nova resposta — Pesquisa Meme Favorito"
	notProvided   = "(não informado)"
)

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}

// ComposeMessage monta o texto enviado ao webhook.
func ComposeMessage(s Submission, mxVerified bool) string {
	mx := "não"
	if mxVerified {
		mx = "sim"
	}

	lines := []string{
		messageHeader,
		fmt.Sprintf("Nome: %s", orNotProvided(s.Name)),
		fmt.Sprintf("E-mail: %s", orNotProvided(s.Email)),
		fmt.Sprintf("Meme favorito: %s", s.Favorite),
		fmt.Sprintf("Por que: %s", orNotProvided(s.Why)),
		fmt.Sprintf("Verificação MX: %s", mx),
	}
	return strings.Join(lines, "\n")
}
