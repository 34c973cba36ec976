package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/amaclone/storefront/api/middleware"
	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/api/validators"
	"github.com/amaclone/storefront/internal/localization"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

// LocaleOpener restores the locale resolver of a session.
type LocaleOpener interface {
	Open(ctx context.Context, sessionID, acceptLanguage string, opts ...localization.Option) (*localization.Resolver, error)
}

// localeResponse mirrors the resolver state. Refresh tells the client to re-render text it
// already produced.
type localeResponse struct {
	Locale    string   `json:"locale"`
	Dir       string   `json:"dir"`
	Supported []string `json:"supported"`
	Refresh   bool     `json:"refresh"`
}

type setLocaleRequest struct {
	Locale string `json:"locale" validate:"required"`
}

type translationResponse struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// headerDocument reflects the document language and direction onto the response.
type headerDocument struct {
	w http.ResponseWriter
}

func (d headerDocument) SetAttributes(lang, dir string) {
	d.w.Header().Set("Content-Language", lang)
	d.w.Header().Set("X-Text-Direction", dir)
}

type refreshFlag struct {
	requested bool
}

func (f *refreshFlag) Refresh(context.Context) {
	f.requested = true
}

func openSessionLocale(w http.ResponseWriter, r *http.Request, locales LocaleOpener, refresher localization.Refresher) (*localization.Resolver, error) {
	if locales == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "locale service unavailable")
	}
	opts := []localization.Option{localization.WithDocument(headerDocument{w: w})}
	if refresher != nil {
		opts = append(opts, localization.WithRefresher(refresher))
	}
	return locales.Open(r.Context(), middleware.SessionIDFromContext(r.Context()), r.Header.Get("Accept-Language"), opts...)
}

func GetLocale(locales LocaleOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolver, err := openSessionLocale(w, r, locales, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, localeResponse{
			Locale:    resolver.Locale(),
			Dir:       resolver.Direction(),
			Supported: resolver.Supported(),
		})
	}
}

// SetLocale switches the session locale. Unsupported locales leave the state unchanged and
// are answered with the current locale and refresh=false.
func SetLocale(locales LocaleOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setLocaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flag := &refreshFlag{}
		resolver, err := openSessionLocale(w, r, locales, flag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := resolver.SetLocale(r.Context(), strings.TrimSpace(payload.Locale)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, localeResponse{
			Locale:    resolver.Locale(),
			Dir:       resolver.Direction(),
			Supported: resolver.Supported(),
			Refresh:   flag.requested,
		})
	}
}

// Translate resolves ?key= in the session locale. Every other query parameter is an
// interpolation value.
func Translate(locales LocaleOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := strings.TrimSpace(query.Get("key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "key is required"))
			return
		}

		resolver, err := openSessionLocale(w, r, locales, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var params map[string]any
		for name, values := range query {
			if name == "key" || len(values) == 0 {
				continue
			}
			if params == nil {
				params = make(map[string]any, len(query))
			}
			params[name] = values[0]
		}

		responses.WriteSuccess(w, translationResponse{
			Key:    key,
			Locale: resolver.Locale(),
			Text:   resolver.T(key, params),
		})
	}
}
