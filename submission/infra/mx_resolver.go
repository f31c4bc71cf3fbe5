package infra

import (
	"context"
	"errors"
	"net"
	"time"

	"meme-survey/submission/domain"
)

type mxLookuper interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// MXResolver consulta registros MX. Qualquer erro é absorvido no resultado.
type MXResolver struct {
	lookup  mxLookuper
	timeout time.Duration
}

type MXOption func(*MXResolver)

// WithLookuper troca o resolver (ex: net.Resolver apontando para outro DNS, ou fake em teste).
func WithLookuper(l mxLookuper) MXOption {
	return func(r *MXResolver) { r.lookup = l }
}

// WithLookupTimeout limita a consulta. 0 deixa só o timeout do próprio resolver.
func WithLookupTimeout(d time.Duration) MXOption {
	return func(r *MXResolver) { r.timeout = d }
}

func NewMXResolver(opts ...MXOption) *MXResolver {
	r := &MXResolver{lookup: net.DefaultResolver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MXResolver) CheckMX(ctx context.Context, host string) domain.MXResult {
	if host == "" {
		return domain.MXLookupFailed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	records, err := r.lookup.LookupMX(ctx, host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return domain.MXNotFound
		}
		return domain.MXLookupFailed
	}
	if len(records) == 0 {
		return domain.MXNotFound
	}
	return domain.MXVerified
}
