// Package model defines the domain models for Tasksync.
package model

// Storage keys. Each key holds one JSON blob; collections are always read
// and written whole.
const (
	KeyTasks            = "task-sync-tasks"
	KeyUsers            = "task-sync-users"
	KeyCurrentUser      = "task-sync-current-user"
	KeyPomodoroSettings = "task-sync-pomodoro-settings"
	KeyLanguage         = "task-sync-language"
	KeyAuthToken        = "task-sync-auth-token"
)
