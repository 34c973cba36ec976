package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/amaclone/storefront/api/responses"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

// FixedWindowLimiter reports whether scope is still under limit in the current window.
type FixedWindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// SessionRateLimit caps requests per session (or client IP when no session is attached)
// within a fixed window. Limiter failures let the request through.
func SessionRateLimit(name string, limit int64, window time.Duration, limiter FixedWindowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || limit <= 0 || window <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			subject := SessionIDFromContext(ctx)
			if subject == "" {
				subject = "ip:" + clientIP(r)
			}

			allowed, count, err := limiter.FixedWindowAllow(ctx, name+":"+subject, limit, window)
			if err != nil {
				if logg != nil {
					logg.WarnErr(ctx, "rate_limit.unavailable", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"policy": name, "attempts": count, "limit": limit}), "rate_limit.blocked")
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
