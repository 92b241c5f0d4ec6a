package interview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/artem13815/resumebuilder/pkg/llm"
)

const (
	questionsPerSkill = 3
	maxScore          = 10
)

var reDigits = regexp.MustCompile(`\d+`)

// FallbackQuestions are asked when the model gives nothing usable.
func FallbackQuestions(skill string) []string {
	return []string{
		fmt.Sprintf("What is %s?", skill),
		fmt.Sprintf("Explain a project where you used %s.", skill),
		fmt.Sprintf("What challenges did you face using %s?", skill),
	}
}

// GenerateQuestions asks the model for 3 questions on skill. Model errors and
// empty replies fall back to FallbackQuestions; the bool reports that.
func GenerateQuestions(ctx context.Context, m llm.ChatModel, skill string) ([]string, bool) {
	prompt := fmt.Sprintf(`
You are a technical interviewer.

Generate exactly 3 interview questions for the skill %q.

Rules:
- Output ONLY the questions
- NO headings
- NO explanations
- NO introductory text
- Each question must be on a new line
- Questions must be practical and technical
`, skill)
	raw, err := m.Ask(ctx, "", prompt)
	if err != nil {
		return FallbackQuestions(skill), true
	}
	qs := ParseQuestions(raw)
	if len(qs) == 0 {
		return FallbackQuestions(skill), true
	}
	return qs, false
}

// ParseQuestions keeps the first 3 non-empty lines, stripped of list markers.
func ParseQuestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		q := strings.Trim(line, "-•0123456789. \t\r")
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == questionsPerSkill {
			break
		}
	}
	return out
}

// Evaluate scores one answer on a 0..10 scale.
func Evaluate(ctx context.Context, m llm.ChatModel, skill, question, answer string) (Evaluation, error) {
	prompt := fmt.Sprintf(`
You are a technical interviewer.

Skill: %s
Question: %s
Candidate Answer: %s

Evaluate the answer honestly.

Give:
- Score between 0 and 10
- One-line feedback

Format:
Score: X
Feedback: ...
`, skill, question, answer)
	raw, err := m.Ask(ctx, "", prompt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	score, feedback := ParseEvaluation(raw)
	return Evaluation{
		Skill:    skill,
		Question: question,
		Answer:   answer,
		Raw:      strings.TrimSpace(raw),
		Score:    score,
		Feedback: feedback,
	}, nil
}

// ParseEvaluation reads "Score: X" and "Feedback: ..." lines. The score is the
// first integer after the colon of the first line mentioning "Score", clamped
// to 0..10; a missing or unreadable score is 0.
func ParseEvaluation(raw string) (score int, feedback string) {
	scoreFound, feedbackFound := false, false
	for _, line := range strings.Split(raw, "\n") {
		if !scoreFound && strings.Contains(line, "Score") {
			scoreFound = true
			if _, after, ok := strings.Cut(line, ":"); ok {
				if d := reDigits.FindString(after); d != "" {
					score, _ = strconv.Atoi(d)
				}
			}
			continue
		}
		if !feedbackFound && strings.Contains(line, "Feedback") {
			if _, after, ok := strings.Cut(line, ":"); ok {
				feedback = strings.TrimSpace(after)
				feedbackFound = true
			}
		}
	}
	score = min(max(score, 0), maxScore)
	return score, feedback
}

// Band classifies a percentage.
func Band(percentage float64) string {
	switch {
	case percentage >= 75:
		return "Excellent Performance"
	case percentage >= 50:
		return "Good Performance"
	default:
		return "Needs Improvement"
	}
}

// Score totals evaluations against every question shown, answered or not.
func Score(questions int, evals []Evaluation) Result {
	res := Result{Max: maxScore * questions, Evaluations: evals}
	for _, e := range evals {
		res.Total += e.Score
	}
	if res.Max > 0 {
		res.Percentage = float64(res.Total) / float64(res.Max) * 100
	}
	res.Band = Band(res.Percentage)
	return res
}
