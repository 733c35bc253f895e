// Package validate provides input validation helpers for the Tasksync CLI.
// The stores accept anything; these rules apply at the command boundary.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
)

const (
	// MaxTitleLength is the maximum length for a task title.
	MaxTitleLength = 256
	// MaxDescriptionLength is the maximum length for a task description.
	MaxDescriptionLength = 4096
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6
	// MaxURLLength is the maximum length for a remote avatar URL.
	MaxURLLength = 2048
	// MaxAvatarDataSize is the largest accepted inline avatar (5 MB).
	MaxAvatarDataSize = 5 * 1024 * 1024
)

// Pomodoro setting bounds, in minutes or intervals.
const (
	MinWorkInterval  = 1
	MaxWorkInterval  = 60
	MinBreakInterval = 1
	MaxBreakInterval = 30
	MinIntervalCount = 1
	MaxIntervalCount = 10
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Title validates a task title.
func Title(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.UserErrorFor(errors.ErrTitleRequired, "", "")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", TruncateString(title, 32),
			"Title too long",
			fmt.Sprintf("Titles must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Description validates a task description.
func Description(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return errors.NewUserError(
			"Description too long",
			fmt.Sprintf("Descriptions must be %d characters or fewer", MaxDescriptionLength))
	}
	return nil
}

// Priority parses and validates a priority name.
func Priority(s string) (model.Priority, error) {
	p, ok := model.ParsePriority(s)
	if !ok {
		return "", errors.UserErrorFor(errors.ErrInvalidPriority, "priority", s)
	}
	return p, nil
}

// Status parses and validates a status name.
func Status(s string) (model.Status, error) {
	switch model.Status(strings.ToLower(strings.TrimSpace(s))) {
	case model.StatusPending:
		return model.StatusPending, nil
	case model.StatusCompleted:
		return model.StatusCompleted, nil
	}
	return "", errors.UserErrorFor(errors.ErrInvalidStatus, "status", s)
}

// Credentials checks that both fields are filled and well formed.
func Credentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.NewUserError("Please fill in all fields", "Provide both --email and a password.")
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}

// Email validates an email address.
func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.UserErrorFor(errors.ErrInvalidEmail, "email", email)
	}
	return nil
}

// Password validates a new password.
func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return errors.UserErrorFor(errors.ErrPasswordTooShort, "", "")
	}
	return nil
}

// Name validates a display name.
func Name(name string) error {
	return NonEmpty("name", name)
}

// AvatarURL validates an avatar reference: an http(s) URL or an inline
// data:image URI.
func AvatarURL(raw string) error {
	if strings.HasPrefix(raw, "data:image/") {
		if len(raw) > MaxAvatarDataSize {
			return errors.NewUserError("Avatar too large", "File size should not exceed 5 MB")
		}
		return nil
	}
	if len(raw) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Hostname() == "" {
		return errors.NewUserErrorWithField("avatar", raw,
			"Invalid avatar URL",
			"Provide an http(s) URL like https://example.com/me.png")
	}
	return nil
}

// PomodoroSettings validates settings against the accepted ranges.
func PomodoroSettings(s model.PomodoroSettings) error {
	checks := []struct {
		field    string
		value    int
		min, max int
		message  string
	}{
		{"work", s.WorkInterval, MinWorkInterval, MaxWorkInterval, "Work interval must be between 1 and 60 minutes"},
		{"break", s.BreakInterval, MinBreakInterval, MaxBreakInterval, "Break interval must be between 1 and 30 minutes"},
		{"count", s.IntervalCount, MinIntervalCount, MaxIntervalCount, "Number of intervals must be between 1 and 10"},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &errors.UserError{
				Message:    c.message,
				Field:      c.field,
				Value:      fmt.Sprint(c.value),
				Suggestion: errors.Suggestions[errors.ErrIntervalOutOfRange],
				Cause:      errors.ErrIntervalOutOfRange,
			}
		}
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}
