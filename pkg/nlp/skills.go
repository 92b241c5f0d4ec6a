package nlp

import "strings"

// aliases maps a normalized skill to the other spellings found in resumes.
var aliases = map[string][]string{
	"javascript":       {"js", "java script"},
	"js":               {"javascript"},
	"postgres":         {"postgresql"},
	"postgresql":       {"postgres"},
	"mysql":            {"my sql"},
	"react":            {"reactjs", "react js"},
	"machine learning": {"ml"},
	"data science":     {"data scientist"},
	"aws":              {"amazon web services"},
	"golang":           {"go"},
	"k8s":              {"kubernetes"},
	"kubernetes":       {"k8s"},
	"html":             {"html5"},
	"css":              {"css3"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
func SkillVariants(skill string) []string {
	base := Normalize(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = Normalize(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	for _, a := range aliases[base] {
		add(a)
	}
	// "machine-learning" and "machine_learning" normalize the same way; also try the joined form
	if strings.Contains(base, " ") {
		add(strings.ReplaceAll(base, " ", ""))
	}
	return out
}

// MentionsSkill reports whether normalized text mentions skill in any known spelling.
func MentionsSkill(normalizedText, skill string) bool {
	for _, v := range SkillVariants(skill) {
		if ContainsPhrase(normalizedText, v) {
			return true
		}
	}
	return false
}
