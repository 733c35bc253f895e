package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clock24Regex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clock12Regex = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?$`)
)

// ParseClock normalizes a time of day to 24-hour "HH:MM". It accepts
// "14:30", "9:05", "2:30 PM", "2:30pm" and "9am".
func ParseClock(input string) (string, error) {
	s := strings.TrimSpace(input)

	if m := clock24Regex.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h > 23 || min > 59 {
			return "", NewClockError(input)
		}
		return fmt.Sprintf("%02d:%02d", h, min), nil
	}

	if m := clock12Regex.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if h < 1 || h > 12 || min > 59 {
			return "", NewClockError(input)
		}
		h %= 12
		if strings.EqualFold(m[3], "p") {
			h += 12
		}
		return fmt.Sprintf("%02d:%02d", h, min), nil
	}

	return "", NewClockError(input)
}
