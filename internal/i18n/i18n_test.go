package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"en", English, true},
		{"RU", Russian, true},
		{" ru ", Russian, true},
		{"de", Language("de"), false},
		{"", Language(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Task created!", T(English, "tasks.taskCreated"))
	assert.Equal(t, "Задача создана!", T(Russian, "tasks.taskCreated"))
	assert.Equal(t, "Task created!", T(Language("de"), "tasks.taskCreated"))
	assert.Equal(t, "no.such.key", T(Russian, "no.such.key"))
}

func TestCataloguesComplete(t *testing.T) {
	for _, lang := range Languages {
		for _, key := range Keys() {
			_, ok := catalogue[lang][key]
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}
