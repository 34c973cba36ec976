package localization

import (
	"fmt"
	"strings"
)

// Translate resolves key in locale's table and substitutes params. Unresolvable keys,
// including keys that land on a nested table, come back unchanged.
func (t Tables) Translate(locale, key string, params map[string]any) string {
	root, ok := t[locale]
	if !ok {
		return key
	}
	text, ok := root.Lookup(strings.Split(key, "."))
	if !ok {
		return key
	}
	return Interpolate(text, params)
}

// Interpolate replaces every "{name}" in text with the string form of params[name].
func Interpolate(text string, params map[string]any) string {
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
	}
	return text
}
