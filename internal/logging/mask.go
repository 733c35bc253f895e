package logging

import (
	"net/url"
	"regexp"
	"strings"
)

// MaskChar is the character used for masking.
const MaskChar = "*"

const maskTail = "***"

// sensitiveKeywords mark a log key as secret when the key contains one.
var sensitiveKeywords = []string{
	"password", "token", "secret", "authorization", "bearer",
	"api_key", "apikey", "credential", "private_key",
}

// partialKeys are logged with only their first characters.
var partialKeys = map[string]bool{
	KeyEmail: true,
}

var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

// MaskURL keeps the scheme, host and first path segment of a URL and hides
// the rest. Chat webhooks carry their secret in the path, and auth URLs in
// the query. Input that does not parse as an absolute URL is cut after 30
// bytes.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if len(raw) <= 30 {
			return raw
		}
		return raw[:30] + maskTail
	}

	segments := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	masked := u.Scheme + "://" + u.Host
	if segments[0] != "" {
		masked += "/" + segments[0]
	}
	if len(segments) > 1 || u.RawQuery != "" || u.User != nil {
		masked += "/" + maskTail
	}
	return masked
}

// MaskValue hides a secret completely, keeping at most eight mask
// characters as a length hint.
func MaskValue(value string) string {
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// MaskPartial shows the first showChars bytes of value.
func MaskPartial(value string, showChars int) string {
	if len(value) <= showChars {
		return strings.Repeat(MaskChar, len(value))
	}
	return value[:showChars] + maskTail
}

// IsSensitiveField reports whether a log key names a secret.
func IsSensitiveField(key string) bool {
	lower := strings.ToLower(key)
	if lower == "key" || lower == "auth" {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// MaskString masks every non-local URL inside s.
func MaskString(s string) string {
	return urlPattern.ReplaceAllStringFunc(s, func(raw string) string {
		if strings.Contains(raw, "localhost") || strings.Contains(raw, "127.0.0.1") {
			return raw
		}
		return MaskURL(raw)
	})
}

// MaskArgs masks secrets in slog key-value pairs. Secret keys are hidden,
// emails shortened and URL values reduced by MaskString.
func MaskArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		str, isString := result[i+1].(string)

		switch {
		case IsSensitiveField(key):
			if isString {
				result[i+1] = MaskValue(str)
			} else {
				result[i+1] = strings.Repeat(MaskChar, 8)
			}
		case !isString:
		case partialKeys[strings.ToLower(key)]:
			result[i+1] = MaskPartial(str, 3)
		case key == KeyURL:
			result[i+1] = MaskString(str)
		}
	}

	return result
}

// SanitizeLogMessage masks URLs inside a free-form message.
func SanitizeLogMessage(msg string) string {
	return MaskString(msg)
}
