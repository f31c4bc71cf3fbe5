package application

import (
	"context"

	"meme-survey/submission/domain"
)

// MXChecker consulta os registros MX de um domínio. Nunca falha: qualquer
// problema vira domain.MXLookupFailed.
type MXChecker interface {
	CheckMX(ctx context.Context, host string) domain.MXResult
}

// Notifier entrega o texto composto no destino (webhook).
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

type Service struct {
	MX       MXChecker
	Notifier Notifier
}

// Receipt resume o que foi enviado.
type Receipt struct {
	Submission domain.Submission
	MX         domain.MXResult
	Content    string
}

// Submit executa o pipeline na ordem: saneia, valida (favorite, depois e-mail),
// checa MX se houver e-mail, compõe e entrega. Nada é repetido em caso de falha.
//
// Erros de validação são *domain.ValidationError; falhas de entrega vêm do
// Notifier (normalmente *domain.DeliveryError).
func (s Service) Submit(ctx context.Context, sub domain.Submission) (Receipt, error) {
	sub = sub.Sanitized()
	if err := sub.Validate(); err != nil {
		return Receipt{Submission: sub}, err
	}

	mx := domain.MXLookupFailed
	if sub.Email != "" && s.MX != nil {
		mx = s.MX.CheckMX(ctx, domain.EmailDomain(sub.Email))
	}

	rcpt := Receipt{
		Submission: sub,
		MX:         mx,
		Content:    domain.ComposeMessage(sub, mx.Verified()),
	}

	if err := s.Notifier.Notify(ctx, rcpt.Content); err != nil {
		return rcpt, err
	}
	return rcpt, nil
}
