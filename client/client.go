// Package client é o formulário da pesquisa do lado de quem envia: saneia e
// pré-valida os campos, faz um único POST /submit e traduz a resposta num
// Status para exibir. A validação aqui é só conveniência; o servidor refaz tudo.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"meme-survey/submission/domain"
)

// Mensagens exibidas ao usuário.
const (
	MsgFavoriteRequired = "Por favor, informe seu meme favorito."
	MsgInvalidEmail     = "Formato de e-mail inválido."
	MsgSending          = "Enviando..."
	MsgReceived         = "Resposta recebida."
	msgServerError      = "Erro no servidor"
	msgUnknownError     = "erro desconhecido"
)

type Form struct {
	Name     string
	Email    string
	Favorite string
	Why      string
}

type Status struct {
	Text    string
	IsError bool
}

// Result é o estado final de um envio. Reset indica que o formulário deve ser limpo.
type Result struct {
	Status Status
	Reset  bool
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit envia o formulário. show recebe cada mudança de status, na ordem:
// limpa (""), eventualmente "Enviando...", e o status final (também devolvido).
// Não há retry.
func (c *Client) Submit(ctx context.Context, form Form, show func(Status)) Result {
	if show == nil {
		show = func(Status) {}
	}
	finish := func(st Status, reset bool) Result {
		show(st)
		return Result{Status: st, Reset: reset}
	}

	show(Status{})

	sub := domain.Submission{
		Name:     form.Name,
		Email:    form.Email,
		Favorite: form.Favorite,
		Why:      form.Why,
	}.Sanitized()

	if sub.Favorite == "" {
		return finish(Status{Text: MsgFavoriteRequired, IsError: true}, false)
	}
	if sub.Email != "" && !domain.ValidEmailFormat(sub.Email) {
		return finish(Status{Text: MsgInvalidEmail, IsError: true}, false)
	}

	show(Status{Text: MsgSending})

	resp, err := c.post(ctx, sub)
	if err != nil {
		return finish(networkFailure(err), false)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return finish(Status{Text: "Erro: " + errorMessage(resp), IsError: true}, false)
	}

	var body struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return finish(networkFailure(err), false)
	}
	if !body.OK {
		msg := body.Message
		if msg == "" {
			msg = msgUnknownError
		}
		return finish(Status{Text: "Não foi possível enviar: " + msg, IsError: true}, false)
	}
	return finish(Status{Text: MsgReceived}, true)
}

func (c *Client) post(ctx context.Context, sub domain.Submission) (*http.Response, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func networkFailure(err error) Status {
	return Status{Text: fmt.Sprintf("Falha de rede: %v", err), IsError: true}
}

// errorMessage tenta o "message" do corpo JSON; sem JSON cai na mensagem
// genérica, com JSON sem message cai no texto do status.
func errorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return msgServerError
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return msgServerError
	}
	if body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}
