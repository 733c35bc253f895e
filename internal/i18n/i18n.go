// Package i18n holds the user-facing message catalogue for English and Russian.
package i18n

import "strings"

// Language is a supported interface language code.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"

	// Default is used when no valid language is stored.
	Default = English
)

// Languages lists the supported languages.
var Languages = []Language{English, Russian}

// IsSupported reports whether l has a catalogue.
func (l Language) IsSupported() bool {
	_, ok := catalogue[l]
	return ok
}

// ParseLanguage normalizes s and reports whether it names a supported language.
func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	return l, l.IsSupported()
}

// T returns the message for key in lang. Missing entries fall back to
// English, then to the key itself.
func T(lang Language, key string) string {
	if msg, ok := catalogue[lang][key]; ok {
		return msg
	}
	if msg, ok := catalogue[English][key]; ok {
		return msg
	}
	return key
}

// Keys returns every key defined for English.
func Keys() []string {
	keys := make([]string, 0, len(catalogue[English]))
	for k := range catalogue[English] {
		keys = append(keys, k)
	}
	return keys
}
