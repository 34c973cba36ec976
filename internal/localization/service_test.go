package localization

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

func newTestLocaleService(t *testing.T) (*Service, *kv.Memory) {
	t.Helper()
	tables, err := DefaultTables()
	if err != nil {
		t.Fatalf("default tables: %v", err)
	}
	base := kv.NewMemory()
	svc, err := NewService(tables, kv.NewSessions(base, "sf:session"), logger.Nop(), metrics.NewStorefrontMetrics(prometheus.NewRegistry()), "")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, base
}

func TestServiceOpenNegotiatesForNewSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLocaleService(t)

	r, err := svc.Open(ctx, "s1", "ar-EG,ar;q=0.9,en;q=0.5")
	if err != nil {
		t.Fatalf("open s1: %v", err)
	}
	if r.Locale() != LocaleArabic {
		t.Errorf("expected negotiated ar, got %s", r.Locale())
	}

	r, err = svc.Open(ctx, "s2", "")
	if err != nil {
		t.Fatalf("open s2: %v", err)
	}
	if r.Locale() != LocaleEnglish {
		t.Errorf("expected default en, got %s", r.Locale())
	}
}

func TestServiceOpenPrefersStoredLocale(t *testing.T) {
	ctx := context.Background()
	svc, base := newTestLocaleService(t)

	r, err := svc.Open(ctx, "s1", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	changed, err := r.SetLocale(ctx, LocaleArabic)
	if err != nil || !changed {
		t.Fatalf("switch to ar: changed=%v err=%v", changed, err)
	}

	raw, ok, err := base.Get(ctx, "sf:session:s1:locale")
	if err != nil || !ok || raw != LocaleArabic {
		t.Fatalf("expected ar under the session key, got %q ok=%v err=%v", raw, ok, err)
	}

	reopened, err := svc.Open(ctx, "s1", "en-US")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Locale() != LocaleArabic {
		t.Errorf("stored locale should beat Accept-Language, got %s", reopened.Locale())
	}
}

func TestServiceRequiresSessionAndValidFallback(t *testing.T) {
	svc, _ := newTestLocaleService(t)
	_, err := svc.Open(context.Background(), " ", "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	tables, err := DefaultTables()
	if err != nil {
		t.Fatalf("default tables: %v", err)
	}
	if _, err := NewService(tables, kv.NewSessions(kv.NewMemory(), "x"), logger.Nop(), nil, "fr"); err == nil {
		t.Error("expected error for unsupported fallback")
	}
}
