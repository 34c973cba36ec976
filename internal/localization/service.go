package localization

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

// Service opens the locale Resolver belonging to a session.
type Service struct {
	tables   Tables
	sessions *kv.Sessions
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	fallback string
}

// NewService builds a localization service. fallback is used when neither the session nor
// the client's Accept-Language header selects a supported locale.
func NewService(tables Tables, sessions *kv.Sessions, logg *logger.Logger, m *metrics.StorefrontMetrics, fallback string) (*Service, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("locale tables required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	if !tables.Supports(fallback) {
		return nil, fmt.Errorf("fallback locale %q has no table", fallback)
	}
	return &Service{tables: tables, sessions: sessions, logg: logg, metrics: m, fallback: fallback}, nil
}

// Tables returns the loaded locale tables.
func (s *Service) Tables() Tables {
	return s.tables
}

// Open restores the Resolver for sessionID. A session with no stored locale starts on the
// locale negotiated from acceptLanguage.
func (s *Service) Open(ctx context.Context, sessionID, acceptLanguage string, opts ...Option) (*Resolver, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	base := []Option{
		WithFallback(s.tables.Negotiate(acceptLanguage, s.fallback)),
		WithLogger(s.logg),
		WithMetrics(s.metrics),
	}
	return NewResolver(ctx, s.tables, s.sessions.ForSession(sessionID), append(base, opts...)...)
}
