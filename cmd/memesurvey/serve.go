package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"meme-survey/config"
	"meme-survey/logging"
	"meme-survey/middleware/ratelimit"
	"meme-survey/middleware/ratelimit/domain"
	"meme-survey/middleware/ratelimit/infra"
	"meme-survey/submission"
	"meme-survey/submission/application"
	subinfra "meme-survey/submission/infra"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sobe o servidor HTTP (POST /submit + arquivos estáticos)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *envFile)
		},
	}
}

func runServe(parent context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	log, err := logging.New(cfg.Log.Logging())
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer func() { _ = log.Close() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := infra.NewWindowStore(cfg.RateMax, cfg.RateWindow)
	store.StartJanitor(ctx, cfg.RateSweepEvery)

	stats, closeStats, err := newStatsStore(ctx, cfg.Stats, log)
	if err != nil {
		return err
	}
	defer closeStats()

	svc := application.Service{
		MX: subinfra.NewMXResolver(subinfra.WithLookupTimeout(cfg.MXLookupTimeout)),
		Notifier: subinfra.NewWebhookNotifier(cfg.WebhookURL,
			subinfra.WithTimeout(cfg.WebhookTimeout),
			subinfra.WithRate(cfg.WebhookRPS, cfg.WebhookBurst),
		),
	}

	h := submission.NewRouter(submission.RouterConfig{
		Handler: submission.NewHandler(svc, log, cfg.MaxBodyBytes),
		RateLimit: ratelimit.Options{
			Limiter:             store,
			Limit:               cfg.RateMax,
			Stats:               stats,
			TrustXForwardedFor:  cfg.TrustXFF,
			AddRateLimitHeaders: cfg.AddRateHeaders,
		},
		Concurrency: ratelimit.ConcurrencyOptions{
			Max:            cfg.ConcurrencyMax,
			AcquireTimeout: cfg.ConcurrencyTimeout,
		},
		PublicDir:   cfg.PublicDir,
		LogRequests: cfg.LogRequests,
		Log:         log,
	})

	// Sem WriteTimeout: webhook e MX não têm timeout por padrão e o request
	// fica aberto enquanto eles não respondem.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Servidor rodando na porta %d. Abra http://localhost:%d/", cfg.Port, cfg.Port)
	log.Info("rate: max=%d window=%s trustXFF=%v sweepEvery=%s", cfg.RateMax, cfg.RateWindow, cfg.TrustXFF, cfg.RateSweepEvery)
	log.Info("rate-stats: enabled=%v backend=%s redisAddr=%q bucket=%q ttl=%s trackKeys=%v", cfg.Stats.Enabled, cfg.Stats.Backend, cfg.Stats.RedisAddr, cfg.Stats.Bucket, cfg.Stats.TTL, cfg.Stats.TrackKeys)
	log.Info("concurrency: max=%d acquireTimeout=%s", cfg.ConcurrencyMax, cfg.ConcurrencyTimeout)
	log.Info("webhook: timeout=%s rps=%g burst=%d", cfg.WebhookTimeout, cfg.WebhookRPS, cfg.WebhookBurst)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// newStatsStore monta o destino das estatísticas do rate limit. O retorno de
// fechamento sempre pode ser chamado.
func newStatsStore(ctx context.Context, cfg config.StatsConfig, log *logging.Logger) (domain.StatsStore, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	if cfg.Backend == config.StatsBackendMemory {
		mem := infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.TrackKeys))
		return mem, func() {
			t := mem.Total()
			log.Info("rate-stats: allowed=%d denied=%d", t.Allowed, t.Denied)
			for route, c := range mem.ByRoute() {
				log.Info("rate-stats: route=%q allowed=%d denied=%d", route, c.Allowed, c.Denied)
			}
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	_, err := rdb.Ping(pingCtx).Result()
	cancel()
	if err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis stats ping error: %w", err)
	}

	store := infra.NewRedisStatsStore(
		rdb,
		infra.WithStatsPrefix(cfg.Prefix),
		infra.WithStatsTTL(cfg.TTL),
		infra.WithStatsBucket(cfg.Bucket),
		infra.WithStatsTrackKeys(cfg.TrackKeys),
	)
	return store, func() { _ = rdb.Close() }, nil
}
