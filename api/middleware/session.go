package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/amaclone/storefront/pkg/logger"
)

// SessionHeader carries the anonymous browser session the cart and locale belong to.
const SessionHeader = "X-Session-Id"

// Session reads the session id from SessionHeader, issuing a fresh one when it is missing
// or not a UUID. The effective id is always echoed back in the response header.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if parsed, err := uuid.Parse(sessionID); err == nil {
				sessionID = parsed.String()
			} else {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
