package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/logger"
)

const sampleResume = `Jane Doe
Los Angeles, CA | jane@example.com | 9876543210
Software engineer with five years of backend work in Go and Python, building APIs,
data pipelines and internal tools for logistics teams. Comfortable with Docker and AWS.
Education: BSc Computer Science, 2015 - 2019`

func TestAutofillMergesModelAndRegex(t *testing.T) {
	var prompt string
	model := llm.Func(func(_ context.Context, system, user string) (string, error) {
		prompt = user
		return "```json\n{\"name\": \"\", \"email\": \"work@example.com\", \"location\": \"Remote\", " +
			"\"skills_list\": [\"Go\", \"Teamwork\"], \"education\": [{\"course\": \"BSc\"}],}\n```", nil
	})

	res, err := NewAutofillService(model, logger.Discard()).Autofill(context.Background(), "cv.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Contains(t, prompt, "Return ONLY valid JSON.")
	assert.Contains(t, prompt, "Jane Doe")
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Excerpted)

	rec := res.Record
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "work@example.com", rec.Email)
	assert.Equal(t, "9876543210", rec.Phone)
	assert.Equal(t, "Los Angeles, CA", rec.Location)
	assert.Equal(t, []string{"Go"}, rec.SkillsList)
	assert.Equal(t, []string{"Teamwork"}, rec.SoftOptions)
	assert.Len(t, rec.Education, 1)
}

func TestAutofillDegradesOnModelFailure(t *testing.T) {
	model := llm.Func(func(context.Context, string, string) (string, error) {
		return "", errors.New("connection refused")
	})
	res, err := NewAutofillService(model, logger.Discard()).Autofill(context.Background(), "cv.txt", []byte(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, []string{WarnModelFailed}, res.Warnings)
	assert.Equal(t, "jane@example.com", res.Record.Email)
	assert.Equal(t, []string{}, res.Record.SkillsList)
}

func TestAutofillShortTextAndTruncation(t *testing.T) {
	calls := 0
	model := llm.Func(func(_ context.Context, _, user string) (string, error) {
		calls++
		return "not json at all", nil
	})
	svc := NewAutofillService(model, logger.Discard())

	res, err := svc.Autofill(context.Background(), "cv.txt", []byte("Jane\n9876543210"))
	require.NoError(t, err)
	assert.Equal(t, []string{WarnScanned, WarnBadJSON}, res.Warnings)
	assert.Equal(t, "Jane", res.Record.Name)

	long := strings.Repeat("word ", 2000)
	res, err = svc.Autofill(context.Background(), "cv.txt", []byte(long))
	require.NoError(t, err)
	assert.True(t, res.Excerpted)
	assert.Equal(t, 6000, res.CharsUsed)
	assert.Equal(t, 2, calls)
}

func TestAutofillEmptyTextSkipsModel(t *testing.T) {
	model := llm.Func(func(context.Context, string, string) (string, error) {
		t.Fatal("model must not be called")
		return "", nil
	})
	res, err := NewAutofillService(model, logger.Discard()).Autofill(context.Background(), "cv.txt", []byte("   "))
	require.NoError(t, err)
	assert.Equal(t, []string{WarnScanned}, res.Warnings)
	assert.Equal(t, NewRecord(), res.Record)
}

func TestAutofillUnsupported(t *testing.T) {
	_, err := NewAutofillService(nil, logger.Discard()).Autofill(context.Background(), "cv.png", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
