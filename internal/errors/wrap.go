package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Wrap prefixes err with op. A nil err stays nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Wrapf is Wrap with a formatted prefix.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Chain lists the message of every error in err's Unwrap chain, outermost first.
func Chain(err error) []string {
	var chain []string
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, err.Error())
	}
	return chain
}

// RootCause returns the innermost error of the chain.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// FormatDebugError renders err for --debug output: the message, every
// wrapping layer, the root cause type, the category and a hint.
func FormatDebugError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)

	if chain := Chain(err); len(chain) > 1 {
		b.WriteString("\nError chain:\n")
		for i, msg := range chain {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
		}
	}

	fmt.Fprintf(&b, "\nRoot cause: %T\n", RootCause(err))
	fmt.Fprintf(&b, "Category: %s\n", GetCategory(err))
	if hint := GetSuggestion(err); hint != "" {
		fmt.Fprintf(&b, "Suggestion: %s\n", hint)
	}
	return b.String()
}
