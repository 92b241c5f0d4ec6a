package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/nlp"
	"github.com/artem13815/resumebuilder/pkg/resume"
)

type call struct{ system, user string }

func recorder(reply string, calls *[]call) llm.ChatModel {
	return llm.Func(func(_ context.Context, system, user string) (string, error) {
		*calls = append(*calls, call{system, user})
		return reply, nil
	})
}

func TestSummaryCases(t *testing.T) {
	rec := resume.Record{SkillsList: []string{"Go", "SQL"}, Experience: "• Built APIs"}
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "  ", "Write a professional, ATS-friendly resume summary.\n\nRules:\n- Do NOT add headings"},
		{"intent", "i am hardworking and quick", "Professionally expand the following self-description"},
		{"low quality", "ok good", "- Neutral tone"},
		{"improve", "Backend developer who enjoys building reliable services for small teams.", "Rewrite and professionally improve"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls []call
			svc := NewService(recorder("Here is your summary:\nFocused engineer.", &calls))
			out, err := svc.Summary(context.Background(), rec, tc.input)
			require.NoError(t, err)
			assert.Equal(t, "Focused engineer.", out)
			require.Len(t, calls, 1)
			assert.Equal(t, DefaultSystemPrompt, calls[0].system)
			assert.Contains(t, calls[0].user, tc.want)
		})
	}
}

func TestSummaryEmptyIncludesSkills(t *testing.T) {
	var calls []call
	svc := NewService(recorder("x", &calls))
	_, err := svc.Summary(context.Background(), resume.Record{SkillsList: []string{"Go", "SQL"}, Experience: "• Built APIs"}, "")
	require.NoError(t, err)
	assert.Contains(t, calls[0].user, "Skills: Go, SQL\nExperience: • Built APIs")
}

func TestSummaryRejectsTemplateInput(t *testing.T) {
	var calls []call
	svc := NewService(recorder("x", &calls))
	_, err := svc.Summary(context.Background(), resume.Record{}, "Experienced [Job Title] with [number] years")
	assert.ErrorIs(t, err, ErrTemplateInput)
	assert.Empty(t, calls)
}

func TestRewriteSummary(t *testing.T) {
	var calls []call
	svc := NewService(
		recorder("An expert engineer who helped the company grow.", &calls),
		WithChooser(func(n int) int { return n - 1 }),
	)
	out, err := svc.RewriteSummary(context.Background(), "I worked two years on billing systems")
	require.NoError(t, err)
	assert.Equal(t, "An engineer who helped the grow.", out)
	assert.Equal(t, "You generate factual resume summaries without assumptions.", calls[0].system)
	assert.Contains(t, calls[0].user, "- "+string(nlp.KindExperience))
	assert.Contains(t, calls[0].user, nlp.VariationStyles[len(nlp.VariationStyles)-1])

	_, err = svc.RewriteSummary(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTechnicalSkills(t *testing.T) {
	var calls []call
	svc := NewService(recorder("Here is the list:\n• Go: services\n• SQL: queries", &calls))

	out, err := svc.TechnicalSkills(context.Background(), resume.Record{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, calls)

	out, err = svc.TechnicalSkills(context.Background(), resume.Record{SkillsList: []string{"Go", "SQL"}})
	require.NoError(t, err)
	assert.Equal(t, "• Go: services\n• SQL: queries", out)
	assert.Contains(t, calls[0].user, "Skills: Go, SQL")
}

func TestExperiencePromptSelection(t *testing.T) {
	cases := []struct {
		name string
		in   ExperienceInput
		want string
	}{
		{"fresher wins", ExperienceInput{Fresher: true, Years: 2, Text: "x"}, "for a fresher"},
		{"years", ExperienceInput{Years: 2}, "with 2 years of IT experience"},
		{"years out of range uses text", ExperienceInput{Years: 7, Text: "Led a team"}, "Rewrite the following experience"},
		{"fallback", ExperienceInput{}, "based on technical skills"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls []call
			svc := NewService(recorder("- one\n- two\n3. three", &calls))
			out, err := svc.Experience(context.Background(), resume.Record{}, tc.in)
			require.NoError(t, err)
			assert.Equal(t, "• one\n• two\n• three", out)
			assert.Contains(t, calls[0].user, tc.want)
		})
	}
}

func TestProjectsAndDeclaration(t *testing.T) {
	var calls []call
	svc := NewService(recorder("• a • b", &calls))

	out, err := svc.Projects(context.Background(), resume.Record{SkillsList: []string{"Go"}}, "")
	require.NoError(t, err)
	assert.Equal(t, "• a\n• b", out)
	assert.Contains(t, calls[0].user, "Skills: Go")

	_, err = svc.Projects(context.Background(), resume.Record{}, "chat app in Go")
	require.NoError(t, err)
	assert.Contains(t, calls[1].user, "exactly 2 professional resume bullet points")
	assert.Contains(t, calls[1].user, "chat app in Go")

	_, err = svc.Declaration(context.Background(), "all true")
	require.NoError(t, err)
	assert.Contains(t, calls[2].user, "all true")

	_, err = svc.Declaration(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, calls[3].user, "Write a professional resume declaration.")
}

func TestGenerationErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(llm.Func(func(context.Context, string, string) (string, error) { return "", boom }))
	_, err := svc.Declaration(context.Background(), "")
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, boom)
}

func TestBullets(t *testing.T) {
	assert.Equal(t, "• 3D modelling in Blender\n• Go", Bullets("3D modelling in Blender\n\n* Go\n"))
	assert.Equal(t, "", Bullets("Here's the list:"))
}

func TestReview(t *testing.T) {
	r := Review("ok")
	assert.True(t, r.LowQuality)
	assert.True(t, r.Invalid)
	assert.Equal(t, nlp.KindNeutral, r.Kind)
	assert.Equal(t, []string{}, r.BannedWords)

	r = Review("I am a dedicated and strong learner with experience in teams.")
	assert.True(t, r.IntentBased)
	assert.Equal(t, nlp.KindExperience, r.Kind)
	assert.Equal(t, []string{"experience", "dedicated", "strong"}, r.BannedWords)
}
