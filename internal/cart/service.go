package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

// Service opens the cart Store belonging to a session.
type Service struct {
	sessions *kv.Sessions
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds a cart service over the session-scoped key-value stores.
func NewService(sessions *kv.Sessions, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{sessions: sessions, logg: logg, metrics: m}, nil
}

// Open restores the cart for sessionID.
func (s *Service) Open(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	store := Open(ctx, s.sessions.ForSession(sessionID), s.logg, WithObserver(s.record))
	if store.Recovered() {
		s.metrics.IncCartRecovered()
	}
	return store, nil
}

func (s *Service) record(op string, err error) {
	if err != nil {
		s.metrics.IncCartPersistFailure(op)
		return
	}
	s.metrics.IncCartMutation(op)
}
