package storage

import (
	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/model"
)

// LanguageRepo persists the interface language as a bare language code.
type LanguageRepo struct {
	store BlobStore
}

// NewLanguageRepo creates a new language repository.
func NewLanguageRepo(store BlobStore) *LanguageRepo {
	return &LanguageRepo{store: store}
}

// Get returns the stored language, or the default when it is missing or
// unsupported.
func (r *LanguageRepo) Get() (i18n.Language, error) {
	raw, ok, err := r.store.Get(model.KeyLanguage)
	if err != nil {
		return i18n.Default, err
	}
	lang, supported := i18n.ParseLanguage(raw)
	if !ok || !supported {
		return i18n.Default, nil
	}
	return lang, nil
}

// Set stores lang.
func (r *LanguageRepo) Set(lang i18n.Language) error {
	return r.store.Set(model.KeyLanguage, string(lang))
}
