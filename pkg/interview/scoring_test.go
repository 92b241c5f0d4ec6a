package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/llm"
)

func TestExtractSkills(t *testing.T) {
	text := "Built REST APIs in Python/Django, deployed with Docker on AWS. JS and React on the front. Some Machine-Learning."
	assert.Equal(t,
		[]string{"python", "django", "javascript", "react", "aws", "docker", "machine learning"},
		ExtractSkills(text))
}

func TestExtractSkillsWholeWords(t *testing.T) {
	assert.Equal(t, []string{"javascript"}, ExtractSkills("javascript developer"))
	assert.Equal(t, []string{"mysql"}, ExtractSkills("MySQL admin"))
	assert.Empty(t, ExtractSkills("Sales manager, excellent communicator"))
}

func TestParseQuestions(t *testing.T) {
	raw := "1. What is a decorator?\n\n- How does the GIL affect threads?\n• Explain list comprehensions\n4. Extra question?"
	assert.Equal(t, []string{
		"What is a decorator?",
		"How does the GIL affect threads?",
		"Explain list comprehensions",
	}, ParseQuestions(raw))
	assert.Empty(t, ParseQuestions("\n 1. \n--\n"))
}

func TestGenerateQuestionsFallback(t *testing.T) {
	failing := llm.Func(func(context.Context, string, string) (string, error) {
		return "", errors.New("offline")
	})
	qs, fallback := GenerateQuestions(context.Background(), failing, "docker")
	assert.True(t, fallback)
	assert.Equal(t, FallbackQuestions("docker"), qs)

	empty := llm.Func(func(context.Context, string, string) (string, error) { return "  \n", nil })
	qs, fallback = GenerateQuestions(context.Background(), empty, "git")
	assert.True(t, fallback)
	assert.Equal(t, "What is git?", qs[0])
}

func TestParseEvaluation(t *testing.T) {
	cases := []struct {
		raw      string
		score    int
		feedback string
	}{
		{"Score: 7\nFeedback: Good grasp of basics.", 7, "Good grasp of basics."},
		{"Score: 8/10\nFeedback: Solid", 8, "Solid"},
		{"**Score:** 12\nFeedback: generous", 10, "generous"},
		{"Score: -3", 3, ""},
		{"Score: excellent\nFeedback: n/a", 0, "n/a"},
		{"I think it is fine", 0, ""},
		{"Feedback: short\nScore: 5", 5, "short"},
	}
	for _, tc := range cases {
		score, feedback := ParseEvaluation(tc.raw)
		assert.Equal(t, tc.score, score, tc.raw)
		assert.Equal(t, tc.feedback, feedback, tc.raw)
	}
}

func TestEvaluateWrapsModelErrors(t *testing.T) {
	m := llm.Func(func(context.Context, string, string) (string, error) { return "", errors.New("timeout") })
	_, err := Evaluate(context.Background(), m, "sql", "What is a join?", "Combines rows")
	require.ErrorIs(t, err, ErrEvaluation)
}

func TestScoreAndBand(t *testing.T) {
	res := Score(6, []Evaluation{{Score: 8}, {Score: 7}})
	assert.Equal(t, 15, res.Total)
	assert.Equal(t, 60, res.Max)
	assert.InDelta(t, 25.0, res.Percentage, 0.001)
	assert.Equal(t, "Needs Improvement", res.Band)

	assert.Equal(t, "Excellent Performance", Band(75))
	assert.Equal(t, "Good Performance", Band(50))
	assert.Equal(t, "Needs Improvement", Band(49.9))
	assert.Equal(t, 0, Score(0, nil).Max)
}
