package submission

import (
	"net/http"

	"meme-survey/logging"
	"meme-survey/middleware/ratelimit"
	"meme-survey/middleware/ratelimit/domain"

	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	Handler     http.Handler
	RateLimit   ratelimit.Options
	Concurrency ratelimit.ConcurrencyOptions
	PublicDir   string
	LogRequests bool
	Log         *logging.Logger
}

// NewRouter monta o POST /submit (com concorrência e rate limit) e o
// fallback estático. As rejeições saem no mesmo formato JSON do handler.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}

	rl := cfg.RateLimit
	if rl.OnReject == nil {
		rl.OnReject = func(w http.ResponseWriter, _ *http.Request, _ domain.Decision) {
			writeError(w, http.StatusTooManyRequests, MsgTooManyRequests)
		}
	}
	if rl.OnStatsError == nil {
		rl.OnStatsError = func(r *http.Request, err error) {
			cfg.Log.Warn("rate stats record failed request_id=%s: %v", RequestIDFromContext(r.Context()), err)
		}
	}

	cc := cfg.Concurrency
	if cc.OnReject == nil {
		cc.OnReject = func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusServiceUnavailable, MsgBusy)
		}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	if cfg.LogRequests {
		r.Use(RequestLogger(cfg.Log))
	}
	r.Use(Recoverer(cfg.Log))

	r.With(
		ratelimit.Middleware(rl),
		ratelimit.ConcurrencyMiddleware(cc),
	).Method(http.MethodPost, "/submit", cfg.Handler)

	if cfg.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
	}
	return r
}
