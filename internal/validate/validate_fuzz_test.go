package validate

import (
	"testing"
	"unicode/utf8"
)

// Run with: go test ./internal/validate -fuzz=FuzzSanitizeTitle -fuzztime=30s
func FuzzSanitizeTitle(f *testing.F) {
	for _, seed := range []string{
		"normal text", "hello\x00world", "test\x1b[31mred", "café résumé",
		"日本語テスト", "'; DROP TABLE users;--", "   ", "", string(make([]byte, 10000)),
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := SanitizeTitle(input)
		if utf8.ValidString(input) && !utf8.ValidString(out) {
			t.Fatalf("SanitizeTitle produced invalid UTF-8 from %q", input)
		}
		for _, r := range out {
			if r < 0x20 || r == 0x7f {
				t.Fatalf("SanitizeTitle kept control char %U in %q", r, out)
			}
		}
	})
}

// Run with: go test ./internal/validate -fuzz=FuzzSafeFilename -fuzztime=30s
func FuzzSafeFilename(f *testing.F) {
	for _, seed := range []string{"report.csv", "../../etc/passwd", "a/b\\c", "", "con"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := SafeFilename(input)
		for _, r := range out {
			if r == '/' || r == '\\' {
				t.Fatalf("SafeFilename(%q) kept a path separator: %q", input, out)
			}
		}
	})
}
