package submission

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meme-survey/logging"
	"meme-survey/submission/application"
	"meme-survey/submission/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitterFunc func(ctx context.Context, sub domain.Submission) (application.Receipt, error)

func (f submitterFunc) Submit(ctx context.Context, sub domain.Submission) (application.Receipt, error) {
	return f(ctx, sub)
}

func serve(h http.Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler_PassesCoercedSubmission(t *testing.T) {
	var got domain.Submission
	h := NewHandler(submitterFunc(func(_ context.Context, sub domain.Submission) (application.Receipt, error) {
		got = sub
		return application.Receipt{}, nil
	}), nil, 0)

	w := serve(h, `{"name":" Ana ","email":"ana@ex.com","favorite":"doge","why":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, domain.Submission{Name: " Ana ", Email: "ana@ex.com", Favorite: "doge"}, got)
}

func TestHandler_TransportFailureIsDeliveryFailed(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(submitterFunc(func(context.Context, domain.Submission) (application.Receipt, error) {
		return application.Receipt{}, &domain.DeliveryError{Err: errors.New("dial tcp: connection refused")}
	}), logging.NewWriter(&logs, logging.LevelInfo), 0)

	w := serve(h, `{"favorite":"doge"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Falha ao enviar ao webhook."}`, w.Body.String())
	assert.Contains(t, logs.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandler_UnexpectedErrorIsGenericInternal(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(submitterFunc(func(context.Context, domain.Submission) (application.Receipt, error) {
		return application.Receipt{}, errors.New("something odd: secret detail")
	}), logging.NewWriter(&logs, logging.LevelInfo), 0)

	w := serve(h, `{"favorite":"doge"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Erro interno no servidor."}`, w.Body.String())
	assert.Contains(t, logs.String(), "secret detail")
}

func TestHandler_ValidationErrorsAreNotLoggedAsErrors(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(submitterFunc(func(context.Context, domain.Submission) (application.Receipt, error) {
		return application.Receipt{}, domain.ErrInvalidEmail
	}), logging.NewWriter(&logs, logging.LevelInfo), 0)

	w := serve(h, `{"favorite":"doge","email":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, logs.String(), "[ERROR]")
}

func TestHandler_OversizedBodyIsTreatedAsEmpty(t *testing.T) {
	var got domain.Submission
	called := false
	h := NewHandler(submitterFunc(func(_ context.Context, sub domain.Submission) (application.Receipt, error) {
		called = true
		got = sub
		return application.Receipt{}, sub.Sanitized().Validate()
	}), nil, 16)

	w := serve(h, `{"favorite":"`+strings.Repeat("d", 64)+`"}`)
	require.True(t, called)
	assert.Equal(t, domain.Submission{}, got)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecoverer_PanicBecomesGeneric500(t *testing.T) {
	var logs bytes.Buffer
	log := logging.NewWriter(&logs, logging.LevelInfo)

	h := RequestID(Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write in handler")
	})))

	w := serve(h, `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Erro interno no servidor."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "nil map")
	assert.Contains(t, logs.String(), "nil map write in handler")
	assert.Contains(t, logs.String(), w.Header().Get(RequestIDHeader))
}

func TestRecoverer_RepanicsAbortHandler(t *testing.T) {
	h := Recoverer(logging.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { serve(h, `{}`) })
}
