package nlp

import (
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	wordRe     = regexp.MustCompile(`[a-z]+`)
)

// keepRune сохраняет + и #, чтобы не терять c++ и c#.
func keepRune(r rune) bool {
	return r == '+' || r == '#' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}

// Normalize lowercases s and replaces everything except [a-z0-9+#] with single spaces.
func Normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !keepRune(r) }), " ")
}

// Tokens returns the set of words in already normalized text.
func Tokens(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	out := make(map[string]struct{}, len(fields))
	for _, t := range fields {
		out[t] = struct{}{}
	}
	return out
}

// ContainsPhrase matches a normalized phrase on word boundaries: "rest api"
// is found in "a rest api here" but not in "rest apis".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}

// Words returns the lowercase [a-z]+ runs of s.
func Words(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}

// CollapseSpaces trims s and folds whitespace runs into single spaces.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
