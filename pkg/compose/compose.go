package compose

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/nlp"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

var (
	ErrTemplateInput = errors.New("template-style input detected: replace placeholders like [job title] with your own words")
	ErrEmptyInput    = errors.New("summary input is required")
	ErrGeneration    = errors.New("content generation failed")
)

const (
	DefaultSystemPrompt = "You are an expert resume writer. Provide ONLY the requested content. No conversational filler like 'Here is your summary'."
	summarySystemPrompt = "You generate factual resume summaries without assumptions."
)

var (
	templateMarkers = []string{"[job title]", "[number", "[industry"}
	reListMarker    = regexp.MustCompile(`^\s*(?:[-*]|\d{1,2}[.)])\s+`)
)

// ExperienceInput is what the experience step collected.
type ExperienceInput struct {
	Fresher bool   `json:"fresher"`
	Years   int    `json:"years"`
	Text    string `json:"text"`
}

// Service пишет и переписывает текстовые разделы резюме через LLM.
type Service interface {
	Summary(ctx context.Context, rec resume.Record, userSummary string) (string, error)
	RewriteSummary(ctx context.Context, input string) (string, error)
	TechnicalSkills(ctx context.Context, rec resume.Record) (string, error)
	Experience(ctx context.Context, rec resume.Record, in ExperienceInput) (string, error)
	Projects(ctx context.Context, rec resume.Record, text string) (string, error)
	Declaration(ctx context.Context, text string) (string, error)
}

type Option func(*service)

// WithChooser replaces the random pick of a variation style.
func WithChooser(choose func(n int) int) Option {
	return func(s *service) { s.choose = choose }
}

type service struct {
	llm    llm.ChatModel
	choose func(n int) int
}

func NewService(model llm.ChatModel, opts ...Option) Service {
	s := &service{llm: model, choose: rand.IntN}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Summary(ctx context.Context, rec resume.Record, userSummary string) (string, error) {
	lower := strings.ToLower(userSummary)
	for _, m := range templateMarkers {
		if strings.Contains(lower, m) {
			return "", ErrTemplateInput
		}
	}

	var prompt string
	switch {
	case strings.TrimSpace(userSummary) == "":
		prompt = fmt.Sprintf(`
Write a professional, ATS-friendly resume summary.

Rules:
- Do NOT add headings
- Do NOT use bullet points
- Avoid generic phrases
- Do NOT invent experience
- Return ONLY the summary text

Candidate Information:
Skills: %s
Experience: %s
`, strings.Join(rec.SkillsList, ", "), rec.Experience)
	case nlp.IsIntentBased(userSummary):
		prompt = fmt.Sprintf(`
Professionally expand the following self-description into a resume summary.

STRICT RULES:
- Use ONLY the meaning of the user text
- Do NOT add years of experience
- Do NOT add a job title or experience
- Do NOT add areas of skill
- Do NOT add bracketed placeholder words
- Do NOT add skills, tools, or industries
- Do NOT add achievements or results
- Keep it neutral and fresher-safe
- ATS-friendly, plain sentences
- Return ONLY the summary text

User Text:
"%s"
`, userSummary)
	case nlp.IsLowQuality(userSummary):
		prompt = `
Write a professional, ATS-friendly resume summary.

Rules:
- Neutral tone
- Fresher-safe
- No invented experience
- Do NOT add years of experience
- Do NOT add a job title or experience
- Do NOT add areas of skill
- Do NOT add bracketed placeholder words
- Return ONLY the summary text
`
	default:
		prompt = fmt.Sprintf(`
Rewrite and professionally improve the following resume summary.

Rules:
- Preserve original meaning
- Do NOT invent experience, skills, or achievements
- ATS-friendly
- Do NOT add a job title or experience
- Do NOT add areas of skill
- Do NOT add bracketed placeholder words
- Return ONLY the rewritten summary

User Summary:
"%s"
`, userSummary)
	}
	return s.prose(ctx, DefaultSystemPrompt, prompt)
}

func (s *service) RewriteSummary(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	style := nlp.VariationStyles[s.choose(len(nlp.VariationStyles))]
	prompt := fmt.Sprintf(`
Rewrite the following content into a PROFESSIONAL RESUME SUMMARY.

INPUT TYPE:
- %s

STRICT RULES:
- Use ONLY information explicitly stated by the user
- Do NOT invent achievements, metrics, or responsibilities
- Do NOT add personality traits or motivation
- Keep tone professional and resume-appropriate
- Expand naturally to 3–4 lines
- ATS-safe wording
- Output must be unique on every generation
- Do NOT add job titles unless user mentions them

STYLE:
- %s

User Content:
"%s"

Return ONLY the resume summary.
`, nlp.ClassifyInput(input), style, input)

	out, err := s.prose(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return nlp.SanitizeSummary(out), nil
}

func (s *service) TechnicalSkills(ctx context.Context, rec resume.Record) (string, error) {
	if len(rec.SkillsList) == 0 {
		return "", nil
	}
	prompt := "For each skill, add a 1-line professional description.\n" +
		"Rules:\n" +
		"- Use bullet points only (•)\n" +
		"- One line per skill\n" +
		"- Return ONLY the bulleted list\n" +
		"Skills: " + strings.Join(rec.SkillsList, ", ")
	return s.bullets(ctx, prompt)
}

func (s *service) Experience(ctx context.Context, rec resume.Record, in ExperienceInput) (string, error) {
	var prompt string
	text := strings.TrimSpace(in.Text)
	switch {
	case in.Fresher:
		prompt = "Generate 3 resume bullet points for a fresher based on internships, part-time jobs, or practical exposure.\n" +
			"Do NOT include academic or personal projects.\n" +
			"Use bullet points only (•)\n" +
			"No company names\n" +
			"No years of experience\n" +
			"ATS-friendly\n" +
			"Return ONLY bullet points"
	case in.Years > 0 && in.Years <= 3:
		prompt = fmt.Sprintf("Generate 3 resume bullet points for a candidate with %d years of IT experience.\n", in.Years) +
			"Use bullet points only (•)\n" +
			"Focus on skills, tools, teamwork\n" +
			"ATS-friendly\n" +
			"Return ONLY bullet points"
	case text != "":
		prompt = "Rewrite the following experience into 3 ATS-optimized resume bullet points.\n" +
			"Use bullet points only (•)\n" +
			"Return ONLY bullet points\n\n" + text
	default:
		prompt = "Generate exactly 3 resume bullet points based on technical skills and academic exposure.\n" +
			"Rules:\n" +
			"- Use bullet points only (•)\n" +
			"- ATS-friendly\n" +
			"- Return ONLY bullet points"
		if len(rec.SkillsList) > 0 {
			prompt += "\nSkills: " + strings.Join(rec.SkillsList, ", ")
		}
	}
	return s.bullets(ctx, prompt)
}

func (s *service) Projects(ctx context.Context, rec resume.Record, text string) (string, error) {
	var prompt string
	if t := strings.TrimSpace(text); t != "" {
		prompt = "Rewrite the following into exactly 2 professional resume bullet points.\n" +
			"Rules:\n" +
			"- Use bullet points only (•)\n" +
			"- Focus on tools, technologies and impact\n" +
			"- Do not mix with experience\n" +
			"- Return ONLY bullet points\n\n" + t
	} else {
		prompt = "Generate exactly 2 resume project bullet points.\n" +
			"Rules:\n" +
			"- Use bullet points only (•)\n" +
			"- ATS-friendly\n" +
			"- Return ONLY bullet points\n" +
			"Skills: " + strings.Join(rec.SkillsList, ", ")
	}
	return s.bullets(ctx, prompt)
}

func (s *service) Declaration(ctx context.Context, text string) (string, error) {
	var prompt string
	if t := strings.TrimSpace(text); t != "" {
		prompt = "Rewrite the following resume declaration professionally.\n" +
			"1–2 lines only\n" +
			"Formal tone\n" +
			"Return ONLY the declaration text\n\n" + t
	} else {
		prompt = "Write a professional resume declaration.\n" +
			"1–2 lines only\n" +
			"Formal tone\n" +
			"Return ONLY the declaration text"
	}
	return s.prose(ctx, DefaultSystemPrompt, prompt)
}

func (s *service) ask(ctx context.Context, system, prompt string) (string, error) {
	out, err := s.llm.Ask(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return strings.TrimSpace(out), nil
}

// prose returns a single paragraph without meta lines.
func (s *service) prose(ctx context.Context, system, prompt string) (string, error) {
	out, err := s.ask(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	return nlp.RemoveMetaText(out), nil
}

func (s *service) bullets(ctx context.Context, prompt string) (string, error) {
	out, err := s.ask(ctx, DefaultSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return Bullets(out), nil
}

// Bullets rewrites model output as one "• item" per line. Meta lines are
// dropped and "-", "*" or numbered markers become "•".
func Bullets(text string) string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if nlp.RemoveMetaText(line) == "" {
			continue
		}
		for _, part := range resume.SplitBullets(line) {
			if item := strings.TrimSpace(reListMarker.ReplaceAllString(part, "")); item != "" {
				items = append(items, "• "+item)
			}
		}
	}
	return strings.Join(items, "\n")
}
