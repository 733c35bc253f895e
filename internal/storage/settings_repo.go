package storage

import (
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// SettingsRepo persists pomodoro settings.
type SettingsRepo struct {
	store BlobStore
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(store BlobStore) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// Get returns the stored settings merged over the defaults field by field.
// An unreadable blob yields the defaults.
func (r *SettingsRepo) Get() (model.PomodoroSettings, error) {
	settings := model.DefaultPomodoroSettings()
	var stored model.SettingsPatch
	ok, err := readJSON(r.store, model.KeyPomodoroSettings, &stored)
	if err != nil {
		return settings, err
	}
	if ok {
		stored.Apply(&settings)
	}
	return settings, nil
}

// Save merges patch into the current settings and writes the whole object.
func (r *SettingsRepo) Save(patch model.SettingsPatch) (model.PomodoroSettings, error) {
	settings, err := r.Get()
	if err != nil {
		return settings, err
	}
	patch.Apply(&settings)
	if err := writeJSON(r.store, model.KeyPomodoroSettings, settings); err != nil {
		return settings, err
	}
	logging.LogOperation("settings.save",
		"work", settings.WorkInterval,
		"break", settings.BreakInterval,
		logging.KeyCount, settings.IntervalCount)
	return settings, nil
}
