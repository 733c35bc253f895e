package validate

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeTitle trims a title, folds it to NFC so visually equal titles
// compare equal, and drops control characters.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, norm.NFC.String(strings.TrimSpace(title)))
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SanitizeDescription is SanitizeTitle for multi-line text: line endings
// become \n, and newlines and tabs survive.
func SanitizeDescription(desc string) string {
	desc = newlines.Replace(strings.TrimSpace(desc))
	return StripControlChars(norm.NFC.String(desc))
}

// StripControlChars removes control characters other than \n and \t.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// TruncateString cuts s to maxLen runes, marking the cut with "..." when
// there is room for it.
func TruncateString(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(s)
	switch {
	case len(runes) <= maxLen:
		return s
	case maxLen <= 3:
		return string(runes[:maxLen])
	default:
		return string(runes[:maxLen-3]) + "..."
	}
}

const maxFilenameLength = 200

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", "@", "_at_", "\x00", "",
)

// SafeFilename turns s, typically an email or date, into a name that is
// valid on every supported filesystem.
func SafeFilename(s string) string {
	s = strings.Trim(filenameReplacer.Replace(s), " .")
	if runes := []rune(s); len(runes) > maxFilenameLength {
		s = string(runes[:maxFilenameLength])
	}
	return s
}
