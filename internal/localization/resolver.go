package localization

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

// Document receives the language and direction attributes whenever the locale is applied.
type Document interface {
	SetAttributes(lang, dir string)
}

// Refresher re-renders already produced text after a locale switch.
type Refresher interface {
	Refresh(ctx context.Context)
}

type noopDocument struct{}

func (noopDocument) SetAttributes(string, string) {}

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context) {}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithFallback sets the locale used when nothing usable is persisted.
func WithFallback(locale string) Option {
	return func(r *Resolver) {
		r.fallback = locale
	}
}

// WithDocument sets the sink that receives lang and dir on every locale change.
func WithDocument(doc Document) Option {
	return func(r *Resolver) {
		if doc != nil {
			r.doc = doc
		}
	}
}

// WithRefresher sets the hook invoked after a locale change is applied.
func WithRefresher(refresher Refresher) Option {
	return func(r *Resolver) {
		if refresher != nil {
			r.refresher = refresher
		}
	}
}

// WithLogger sets the logger for restore and persist failures.
func WithLogger(logg *logger.Logger) Option {
	return func(r *Resolver) {
		if logg != nil {
			r.logg = logg
		}
	}
}

// WithMetrics counts locale switches and rejected locales. Nil disables recording.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// Resolver holds the active locale of one session. Translations are resolved from the
// live tables on every call; nothing resolved is cached.
type Resolver struct {
	mu        sync.RWMutex
	tables    Tables
	store     kv.Store
	locale    string
	fallback  string
	doc       Document
	refresher Refresher
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewResolver restores the locale persisted in store when it is supported and otherwise
// starts on the fallback. The document attributes are applied for the starting locale.
func NewResolver(ctx context.Context, tables Tables, store kv.Store, opts ...Option) (*Resolver, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("locale tables required")
	}
	if store == nil {
		store = kv.NewMemory()
	}

	r := &Resolver{
		tables:    tables,
		store:     store,
		fallback:  DefaultLocale,
		doc:       noopDocument{},
		refresher: noopRefresher{},
		logg:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if !tables.Supports(r.fallback) {
		return nil, fmt.Errorf("fallback locale %q has no table", r.fallback)
	}

	r.locale = r.restore(ctx)
	r.doc.SetAttributes(r.locale, Direction(r.locale))
	return r, nil
}

func (r *Resolver) restore(ctx context.Context) string {
	stored, ok, err := r.store.Get(ctx, StorageKey)
	switch {
	case err != nil:
		r.logg.WarnErr(ctx, "locale restore failed, using fallback", err)
		return r.fallback
	case !ok:
		return r.fallback
	case !r.tables.Supports(stored):
		r.logg.Warn(r.logg.WithField(ctx, "stored_locale", stored), "ignoring unsupported stored locale")
		return r.fallback
	default:
		return stored
	}
}

// T resolves key in the active locale, substituting params. Missing keys return key.
func (r *Resolver) T(key string, params map[string]any) string {
	return r.tables.Translate(r.Locale(), key, params)
}

// Locale returns the active locale identifier.
func (r *Resolver) Locale() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

// Direction returns the text direction of the active locale.
func (r *Resolver) Direction() string {
	return Direction(r.Locale())
}

// Supported returns the locales this resolver accepts.
func (r *Resolver) Supported() []string {
	return r.tables.Locales()
}

// SetLocale switches to locale, persists it, updates the document attributes and triggers
// a refresh. Unsupported locales are ignored and report false with no error. A persist
// failure is returned after the switch has taken effect.
func (r *Resolver) SetLocale(ctx context.Context, locale string) (bool, error) {
	if !r.tables.Supports(locale) {
		r.metrics.IncLocaleRejected()
		return false, nil
	}

	r.mu.Lock()
	r.locale = locale
	r.mu.Unlock()

	var persistErr error
	if err := r.store.Set(ctx, StorageKey, locale); err != nil {
		r.logg.Error(ctx, "persist locale", err)
		persistErr = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist locale")
	}

	r.doc.SetAttributes(locale, Direction(locale))
	r.refresher.Refresh(ctx)
	r.metrics.IncLocaleChange(locale)
	return true, persistErr
}
