package interview

import "github.com/artem13815/resumebuilder/pkg/nlp"

// TechSkills is the fixed vocabulary interviews are generated for.
var TechSkills = []string{
	"python", "java", "mysql", "sql", "django", "flask",
	"html", "css", "javascript", "react",
	"aws", "docker", "git",
	"machine learning", "data science",
}

// ExtractSkills returns the TechSkills mentioned in text, in list order.
// Matching is on whole words, so "java" is not found inside "javascript".
func ExtractSkills(text string) []string {
	norm := nlp.Normalize(text)
	var out []string
	for _, s := range TechSkills {
		if nlp.MentionsSkill(norm, s) {
			out = append(out, s)
		}
	}
	return out
}
