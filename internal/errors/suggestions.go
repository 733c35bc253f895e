package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrTaskNotFound:       "Use 'tasksync task list' to see task IDs.",
	ErrTitleRequired:      "Give the task a title, e.g. tasksync task add \"Buy milk\".",
	ErrInvalidTime:        "Use 24-hour 'HH:MM' (14:30) or 12-hour 'H:MM AM/PM' (2:30 PM).",
	ErrInvalidDate:        "Use 'YYYY-MM-DD' or words like 'today', 'tomorrow', 'next friday'.",
	ErrInvalidPriority:    "Priority must be Low, Medium or High.",
	ErrInvalidStatus:      "Status must be pending or completed.",
	ErrInvalidEmail:       "Please enter a valid email.",
	ErrPasswordTooShort:   "Password must be at least 6 characters.",
	ErrUserExists:         "Log in with 'tasksync login' or register a different email.",
	ErrInvalidCredentials: "Check your email and password and try again.",
	ErrNotLoggedIn:        "Use 'tasksync login' to sign in.",
	ErrIntervalOutOfRange: "Work 1-60 min, break 1-30 min, count 1-10.",
	ErrInvalidLanguage:    "Supported languages: en, ru.",

	// System errors
	ErrDiskFull:            "Free up disk space and try again.",
	ErrDatabaseCorrupted:   "Run 'tasksync doctor --repair' to drop unreadable data.",
	ErrDatabaseLocked:      "Close the other tasksync window (a running pomodoro) and try again.",
	ErrNetworkUnavailable:  "Check your internet connection and the configured api_url.",
	ErrTimeout:             "The auth server took too long. Try again.",
	ErrPermissionDenied:    "Check file permissions in your data directory (~/.local/share/tasksync/).",
	ErrRemoteAuthDisabled:  "Set api_url in config.yaml or TASKSYNC_API_URL.",
	ErrRemoteRequestFailed: "The auth server rejected the request.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
