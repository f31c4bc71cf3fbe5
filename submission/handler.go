package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"meme-survey/logging"
	"meme-survey/middleware/ratelimit"
	"meme-survey/submission/application"
	"meme-survey/submission/domain"
)

const defaultMaxBodyBytes = 100 << 10

type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) (application.Receipt, error)
}

type Handler struct {
	svc          Submitter
	log          *logging.Logger
	maxBodyBytes int64
}

func NewHandler(svc Submitter, log *logging.Logger, maxBodyBytes int64) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{svc: svc, log: log, maxBodyBytes: maxBodyBytes}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub := h.decode(w, r)

	rcpt, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.Debug("submission relayed request_id=%s client=%s mx=%s", RequestIDFromContext(r.Context()), clientKey(r), rcpt.MX)
	writeJSON(w, http.StatusOK, Response{OK: true})
}

// decode nunca falha: corpo vazio, grande demais ou que não seja um objeto
// JSON vira uma Submission vazia, que depois cai na validação de favorite.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) domain.Submission {
	if r.Body == nil {
		return domain.Submission{}
	}
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var fields map[string]any
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		h.log.Debug("unreadable submission body request_id=%s: %v", RequestIDFromContext(r.Context()), err)
		return domain.Submission{}
	}
	return domain.FromFields(fields)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := RequestIDFromContext(r.Context())

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}

	var derr *domain.DeliveryError
	if errors.As(err, &derr) {
		if derr.StatusCode != 0 {
			h.log.Error("Erro ao postar no webhook: request_id=%s status=%d body=%q", reqID, derr.StatusCode, derr.Body)
		} else {
			h.log.Error("Erro ao postar no webhook: request_id=%s %v", reqID, derr.Err)
		}
		writeError(w, http.StatusInternalServerError, MsgDeliveryFailed)
		return
	}

	h.log.Error("Erro no /submit: request_id=%s %v", reqID, err)
	writeError(w, http.StatusInternalServerError, MsgInternal)
}

func clientKey(r *http.Request) string {
	if k, ok := ratelimit.KeyFromContext(r.Context()); ok {
		return k
	}
	return ratelimit.DefaultKeyFunc(true)(r)
}
