package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const UnknownKey = "unknown"

type KeyFunc func(r *http.Request) string

// DefaultKeyFunc identifica o cliente.
//
// Com trustXFF, o primeiro valor do X-Forwarded-For ganha (cliente original).
// Depois vem o host do RemoteAddr e, por último, "unknown".
func DefaultKeyFunc(trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		addr := strings.TrimSpace(r.RemoteAddr)
		host, _, err := net.SplitHostPort(addr)
		if err == nil && host != "" {
			return host
		}
		if addr != "" {
			return addr
		}
		return UnknownKey
	}
}

type keyCtxKey struct{}

func withKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, keyCtxKey{}, key)
}

// KeyFromContext devolve a chave que o middleware usou para este request.
func KeyFromContext(ctx context.Context) (string, bool) {
	k, ok := ctx.Value(keyCtxKey{}).(string)
	return k, ok
}
