package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// InputKind is the rough category of free text a user typed as a summary.
type InputKind string

const (
	KindExperience InputKind = "experience"
	KindSkill      InputKind = "skill"
	KindInterest   InputKind = "interest"
	KindNeutral    InputKind = "neutral"
)

var metaPhrases = []string{
	"here is",
	"here's",
	"rewritten resume summary",
	"based on the provided text",
	"below is",
	"following is",
}

// VariationStyles are the tones a rewritten summary may be asked to take.
var VariationStyles = []string{
	"professional and concise",
	"calm and neutral",
	"confident but simple",
	"reflective and academic",
	"straightforward and ATS-friendly",
}

var forbiddenTerms = []string{
	"results-driven", "business growth", "high-pressure",
	"stakeholders", "driving success", "competitive edge",
	"industry", "organization", "company", "leader", "outstanding",
	"expert",
}

var softSkillKeywords = set(
	"communication", "teamwork", "leadership", "problem solving",
	"time management", "adaptability", "critical thinking",
	"creativity", "collaboration", "work ethic", "flexibility",
	"decision making", "emotional intelligence", "interpersonal",
	"project management", "public relations",
)

var positiveTraits = set(
	"brilliant", "smart", "hardworking", "dedicated", "motivated",
	"passionate", "focused", "quick", "learner", "creative",
	"disciplined", "confident", "adaptable", "responsible",
)

var junkWords = set(
	"ok", "okay", "good", "fine", "nice", "great",
	"yes", "no", "cool", "awesome", "nothing", "i am good",
)

var bannedWords = []string{
	"skilled", "experience", "experienced", "expert", "expertise",
	"proven", "ability", "abilities", "capable", "talented",
	"versatile", "dedicated", "strong", "excellent",
	"strategic", "strategy", "team", "coordination",
	"competitive", "performance", "adapt", "excel",
}

var (
	forbiddenRes  = compileWholeWords(forbiddenTerms)
	selfReference = []string{"i am", "i'm", "iam"}
)

var classifyKeywords = []struct {
	kind     InputKind
	keywords []string
}{
	{KindExperience, []string{"years", "worked", "experience", "responsible for"}},
	{KindSkill, []string{"skill", "knowledge of", "trained in", "proficient in"}},
	{KindInterest, []string{"like", "enjoy", "interest", "hobby", "good in"}},
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func compileWholeWords(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(t)+`\b`))
	}
	return out
}

// RemoveMetaText drops lines in which the model talks about its own output
// ("Here is your summary:") and joins what is left into one line.
func RemoveMetaText(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		meta := false
		for _, p := range metaPhrases {
			if strings.Contains(lower, p) {
				meta = true
				break
			}
		}
		if !meta {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// SanitizeSummary removes buzzwords the summaries must not contain.
func SanitizeSummary(text string) string {
	for _, re := range forbiddenRes {
		text = re.ReplaceAllString(text, "")
	}
	return CollapseSpaces(text)
}

// IsIntentBased reports short self-descriptions like "i am hardworking".
func IsIntentBased(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	hasSelf := false
	for _, p := range selfReference {
		if strings.Contains(text, p) {
			hasSelf = true
			break
		}
	}
	if !hasSelf {
		return false
	}
	for _, w := range Words(text) {
		if _, ok := positiveTraits[w]; ok {
			return true
		}
	}
	return false
}

// IsLowQuality reports input too thin to rewrite ("ok", "good good good").
func IsLowQuality(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}
	words := Words(text)
	if len(text) < 20 || len(words) < 4 {
		return true
	}
	allJunk := true
	unique := map[string]struct{}{}
	for _, w := range words {
		unique[w] = struct{}{}
		if _, ok := junkWords[w]; !ok {
			allJunk = false
		}
	}
	return allJunk || len(unique) <= 2
}

// IsInvalidSummary rejects very short or broken model output.
func IsInvalidSummary(text string) bool {
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) < 12 {
		return true
	}
	first := []rune(text)[0]
	if !unicode.IsUpper(first) {
		return true
	}
	return !strings.Contains(text, ".")
}

// ClassifyInput buckets summary input by keyword; the first matching bucket wins.
func ClassifyInput(text string) InputKind {
	text = strings.ToLower(text)
	for _, c := range classifyKeywords {
		for _, k := range c.keywords {
			if strings.Contains(text, k) {
				return c.kind
			}
		}
	}
	return KindNeutral
}

// IsSoftSkill reports whether a skill name is a known soft skill.
func IsSoftSkill(name string) bool {
	_, ok := softSkillKeywords[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// BannedWords lists overused resume words present in text, in list order.
func BannedWords(text string) []string {
	tokens := Tokens(Normalize(text))
	var out []string
	for _, w := range bannedWords {
		if _, ok := tokens[w]; ok {
			out = append(out, w)
		}
	}
	return out
}
