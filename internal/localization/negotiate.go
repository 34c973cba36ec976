package localization

import (
	"golang.org/x/text/language"
)

// Negotiate picks the supported locale that best matches an Accept-Language header,
// falling back to DefaultLocale.
func Negotiate(acceptLanguage string) string {
	return Tables{LocaleEnglish: Table(nil), LocaleArabic: Table(nil)}.Negotiate(acceptLanguage, DefaultLocale)
}

// Negotiate picks the locale of t that best matches an Accept-Language header. fallback
// is returned when the header is empty, malformed or matches nothing.
func (t Tables) Negotiate(acceptLanguage, fallback string) string {
	if acceptLanguage == "" || len(t) == 0 {
		return fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return fallback
	}

	locales := t.Locales()
	supported := make([]language.Tag, 0, len(locales)+1)
	if fb, err := language.Parse(fallback); err == nil {
		supported = append(supported, fb)
	}
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
	}
	if len(supported) == 0 {
		return fallback
	}

	_, idx, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return fallback
	}
	base, _ := supported[idx].Base()
	if !t.Supports(base.String()) {
		return fallback
	}
	return base.String()
}
