package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/pkg/config"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

const authRateLimitNamespace = "sf:rate_limit:auth"

// RateCounter increments a counter that expires after ttl.
type RateCounter interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy caps attempts per client IP and per submitted email inside one
// window. A zero limit turns that dimension off.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return authPolicy("login", cfg.LoginWindow, cfg.LoginIPLimit, cfg.LoginEmailLimit)
}

func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return authPolicy("register", cfg.RegisterWindow, cfg.RegisterIPLimit, cfg.RegisterEmailLimit)
}

func authPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{name: name, window: window, ipLimit: ipLimit, emailLimit: emailLimit}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// attemptCounter is one dimension an auth request is counted under.
type attemptCounter struct {
	dimension string
	subject   string
	limit     int
}

func (p AuthRateLimitPolicy) key(c attemptCounter) string {
	return strings.Join([]string{authRateLimitNamespace, p.name, c.dimension, c.subject}, ":")
}

// AuthRateLimit throttles credential endpoints. Emails are counted by their SHA-256 so raw
// addresses never reach redis or the logs.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateCounter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var counters []attemptCounter
			if ip := clientIP(r); policy.ipLimit > 0 && ip != "" {
				counters = append(counters, attemptCounter{dimension: "ip", subject: ip, limit: policy.ipLimit})
			}
			if policy.emailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if email := submittedEmail(body); email != "" {
					counters = append(counters, attemptCounter{dimension: "email", subject: hashValue(email), limit: policy.emailLimit})
				}
			}

			for _, c := range counters {
				count, err := store.IncrWithTTL(ctx, policy.key(c), policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(c.limit) {
					rejectAttempt(ctx, logg, w, policy, c, count)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectAttempt(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, c attemptCounter, count int64) {
	retryAfter := int(policy.window.Seconds())
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"policy":         policy.name,
			"dimension":      c.dimension,
			"subject":        c.subject,
			"attempts":       count,
			"limit":          c.limit,
			"window_seconds": retryAfter,
		}), "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// submittedEmail is the lower-cased email field of a JSON credential body, if any.
func submittedEmail(body []byte) string {
	var creds struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(body, &creds) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(creds.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
