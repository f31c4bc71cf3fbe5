package domain

import "fmt"

// DeliveryError descreve uma falha ao entregar a mensagem no webhook.
// StatusCode é 0 quando nem houve resposta (erro de transporte).
// Body e StatusCode são para log; nunca vão para o cliente.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("webhook delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("webhook responded with status %d", e.StatusCode)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
