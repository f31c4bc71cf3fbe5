// Comando fake-webhook imita um webhook do Discord para testar o memesurvey
// localmente: imprime o "content" recebido e responde 204.
//
//	FAKE_WEBHOOK_ADDR=:8081 go run ./cmd/fake-webhook
//	DISCORD_WEBHOOK_URL=http://localhost:8081/webhook go run ./cmd/memesurvey
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meme-survey/logging"
	"meme-survey/middleware/ratelimit"
	"meme-survey/middleware/ratelimit/domain"
	"meme-survey/middleware/ratelimit/infra"

	"github.com/caarlos0/env/v10"
)

type config struct {
	Addr string `env:"FAKE_WEBHOOK_ADDR" envDefault:":8081"`
	// Limite parecido com o do Discord por webhook.
	RateMax    int           `env:"FAKE_WEBHOOK_RATE_MAX" envDefault:"30"`
	RateWindow time.Duration `env:"FAKE_WEBHOOK_RATE_WINDOW" envDefault:"60s"`
	// Resposta lenta, para ver o request do memesurvey esperando.
	Delay time.Duration `env:"FAKE_WEBHOOK_DELAY" envDefault:"0"`
	// Se != 0, toda chamada falha com esse status.
	FailStatus int `env:"FAKE_WEBHOOK_FAIL_STATUS" envDefault:"0"`
}

type payload struct {
	Content string `json:"content"`
}

func main() {
	log := logging.NewWriter(os.Stdout, logging.LevelInfo)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config error: %v", err)
	}

	store := infra.NewWindowStore(cfg.RateMax, cfg.RateWindow)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	store.StartJanitor(ctx, cfg.RateWindow)

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, `{"message": "Cannot send an empty message", "code": 50006}`, http.StatusBadRequest)
			return
		}
		if cfg.Delay > 0 {
			select {
			case <-time.After(cfg.Delay):
			case <-r.Context().Done():
				return
			}
		}
		log.Info("mensagem recebida de %s:\n%s", r.RemoteAddr, p.Content)
		if cfg.FailStatus != 0 {
			http.Error(w, `{"message": "fake failure"}`, cfg.FailStatus)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	h := ratelimit.Middleware(ratelimit.Options{
		Limiter:             store,
		Limit:               cfg.RateMax,
		AddRateLimitHeaders: true,
		OnReject: func(w http.ResponseWriter, _ *http.Request, _ domain.Decision) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message": "You are being rate limited.", "global": false}`))
		},
	})(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("fake webhook ouvindo em %s (POST /webhook)", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
