// Package config carrega a configuração do processo a partir de variáveis de
// ambiente (opcionalmente de um arquivo .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"meme-survey/logging"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile é lido se existir; a ausência não é erro.
const DefaultEnvFile = ".env"

type Config struct {
	// Não exponha esta URL ao cliente.
	WebhookURL string `env:"DISCORD_WEBHOOK_URL,required,notEmpty"`
	Port       int    `env:"PORT" envDefault:"3000"`
	PublicDir  string `env:"PUBLIC_DIR" envDefault:"public"`

	TrustXFF           bool          `env:"TRUST_XFF" envDefault:"true"`
	RateMax            int           `env:"RATE_MAX" envDefault:"15"`
	RateWindow         time.Duration `env:"RATE_WINDOW" envDefault:"60s"`
	RateSweepEvery     time.Duration `env:"RATE_SWEEP_EVERY" envDefault:"0"`
	AddRateHeaders     bool          `env:"ADD_RATELIMIT_HEADERS" envDefault:"false"`
	ConcurrencyMax     int           `env:"CONCURRENCY_MAX" envDefault:"100"`
	ConcurrencyTimeout time.Duration `env:"CONCURRENCY_TIMEOUT" envDefault:"0"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"102400"`

	WebhookTimeout  time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"0"`
	WebhookRPS      float64       `env:"WEBHOOK_RPS" envDefault:"0"`
	WebhookBurst    int           `env:"WEBHOOK_BURST" envDefault:"1"`
	MXLookupTimeout time.Duration `env:"MX_LOOKUP_TIMEOUT" envDefault:"0"`

	Log         LogConfig `envPrefix:"LOG_"`
	LogRequests bool      `env:"LOG_REQUESTS" envDefault:"false"`

	Stats StatsConfig `envPrefix:"RATE_STATS_"`
}

type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	File       string `env:"FILE"`
	MaxSize    int    `env:"MAX_SIZE" envDefault:"10"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"28"`
}

func (c LogConfig) Logging() logging.Config {
	return logging.Config{
		Level:      c.Level,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
	}
}

const (
	StatsBackendRedis  = "redis"
	StatsBackendMemory = "memory"
)

type StatsConfig struct {
	Enabled       bool          `env:"ENABLED" envDefault:"false"`
	Backend       string        `env:"BACKEND" envDefault:"redis"` // redis | memory
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	Prefix        string        `env:"PREFIX" envDefault:"memesurvey:ratelimit"`
	TTL           time.Duration `env:"TTL" envDefault:"24h"`
	Bucket        string        `env:"BUCKET" envDefault:"minute"`
	TrackKeys     bool          `env:"TRACK_KEYS" envDefault:"false"`
}

// Addr é o endereço de escuta do servidor HTTP.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Load lê envFile (se existir) para o ambiente do processo e então faz o parse.
// Variáveis já definidas no ambiente não são sobrescritas pelo arquivo.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !(envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}
	return Parse(nil)
}

// Parse lê a configuração de environ; nil usa o ambiente do processo.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("DISCORD_WEBHOOK_URL must be an absolute http(s) URL")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}
	if c.RateMax <= 0 {
		return errors.New("RATE_MAX must be > 0")
	}
	if c.RateWindow <= 0 {
		return errors.New("RATE_WINDOW must be > 0")
	}
	if c.ConcurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be > 0")
	}
	if c.WebhookRPS < 0 {
		return errors.New("WEBHOOK_RPS must be >= 0")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.Stats.Enabled {
		switch c.Stats.Backend {
		case StatsBackendRedis:
			if strings.TrimSpace(c.Stats.RedisAddr) == "" {
				return errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
			}
		case StatsBackendMemory:
		default:
			return fmt.Errorf("RATE_STATS_BACKEND must be %q or %q", StatsBackendRedis, StatsBackendMemory)
		}
	}
	return nil
}
