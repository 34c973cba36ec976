package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"

	// DefaultLocale is used when a session has no stored or negotiable preference.
	DefaultLocale = LocaleEnglish

	// StorageKey is the session key the active locale is persisted under.
	StorageKey = "locale"

	DirLTR = "ltr"
	DirRTL = "rtl"
)

//go:embed locales/*.json
var bundled embed.FS

// Tables maps a locale identifier to the root of its string table.
type Tables map[string]Node

// LoadTables reads every <locale>.json file at the root of fsys.
func LoadTables(fsys fs.FS) (Tables, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read locale dir: %w", err)
	}

	tables := Tables{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		locale := strings.TrimSuffix(name, ".json")

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", locale, err)
		}
		var root Node
		if err := json.Unmarshal(raw, &root); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", locale, err)
		}
		if root.IsLeaf() {
			return nil, fmt.Errorf("locale %s: root must be an object", locale)
		}
		tables[locale] = root
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no locale tables found")
	}
	return tables, nil
}

// DefaultTables loads the English and Arabic tables compiled into the binary.
func DefaultTables() (Tables, error) {
	sub, err := fs.Sub(bundled, "locales")
	if err != nil {
		return nil, fmt.Errorf("open bundled locales: %w", err)
	}
	return LoadTables(sub)
}

// Supports reports whether locale has a table.
func (t Tables) Supports(locale string) bool {
	_, ok := t[locale]
	return ok
}

// Locales returns the supported identifiers in sorted order.
func (t Tables) Locales() []string {
	out := make([]string, 0, len(t))
	for locale := range t {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Direction is the text direction for locale: rtl for Arabic, ltr for everything else.
func Direction(locale string) string {
	if locale == LocaleArabic {
		return DirRTL
	}
	return DirLTR
}
