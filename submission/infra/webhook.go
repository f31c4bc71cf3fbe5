package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meme-survey/submission/domain"

	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

// WebhookNotifier posta {"content": ...} numa URL de webhook (formato do Discord).
type WebhookNotifier struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

type WebhookOption func(*WebhookNotifier)

func WithHTTPClient(c *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		if c != nil {
			n.client = c
		}
	}
}

// WithTimeout define o timeout total da chamada. 0 mantém o padrão do transporte.
func WithTimeout(d time.Duration) WebhookOption {
	return func(n *WebhookNotifier) {
		c := *n.client
		c.Timeout = d
		n.client = &c
	}
}

// WithRate espaça as chamadas de saída (o Discord limita por webhook).
// rps <= 0 desliga.
func WithRate(rps float64, burst int) WebhookOption {
	return func(n *WebhookNotifier) {
		if rps <= 0 {
			n.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		n.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewWebhookNotifier(webhookURL string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    webhookURL,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Notify faz uma única tentativa. Status fora de 2xx vira *domain.DeliveryError
// com o corpo da resposta (truncado) para log.
func (n *WebhookNotifier) Notify(ctx context.Context, content string) error {
	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return &domain.DeliveryError{Err: fmt.Errorf("waiting for webhook pacing: %w", err)}
		}
	}

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return &domain.DeliveryError{Err: redactURL(err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &domain.DeliveryError{Err: redactURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// redactURL tira a URL do erro: a URL do webhook carrega o token e não deve ir para log.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
