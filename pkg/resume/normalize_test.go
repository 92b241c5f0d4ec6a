package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLooseJSON(t *testing.T) {
	cases := map[string]string{
		"plain":     `{"name": "Jane"}`,
		"fenced":    "```json\n{\"name\": \"Jane\"}\n```",
		"prose":     "Sure! Here is the data:\n{\"name\": \"Jane\"}\nHope it helps.",
		"trailing":  `{"name": "Jane", "skills_list": ["Go",],}`,
		"smart":     `{“name”: “Jane”}`,
		"truncated": `{"name": "Jane", "skills_list": ["Go", "SQL"`,
		"single":    `{'name': 'Jane'}`,
		"unquoted":  `{name: "Jane"}`,
		"no comma":  `{"name": "Jane" "phone": "9876543210"}`,
		"nested":    "```json\n{\"education\": [{\"course\": \"BSc\"}], \"name\": \"Jane\"}\n```\nLet me know!",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := DecodeLooseJSON(raw)
			require.NoError(t, err)
			m, ok := v.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "Jane", m["name"])
		})
	}

	_, err := DecodeLooseJSON("I could not read that resume.")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecodeLooseJSONKeepsCurlyQuotesInValues(t *testing.T) {
	v, err := DecodeLooseJSON(`{"name": "Jane Doe", "summary": "Known as “JJ” by peers",}`)
	require.NoError(t, err)

	rec := NormalizeParsed(v)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "Known as “JJ” by peers", rec.Summary)
}

func TestDecodeLooseJSONNoObject(t *testing.T) {
	_, err := DecodeLooseJSON("")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestNormalizeParsedNonObject(t *testing.T) {
	for _, v := range []any{nil, []any{"a"}, "text", 3.0} {
		rec := NormalizeParsed(v)
		assert.Equal(t, NewRecord(), rec)
	}
}

func TestNormalizeParsedSkillsAndLanguages(t *testing.T) {
	rec := NormalizeParsed(map[string]any{
		"name":         "Jane",
		"phone":        9876543210.0,
		"soft_options": "Creativity, ",
		"skills_list": []any{
			"Python",
			map[string]any{"skill": "Teamwork", "type": "Hard"},
			map[string]any{"skill": "Negotiation", "type": "SOFT"},
			" Python ",
			"",
			"Docker",
		},
		"languages": []any{"Hindi", map[string]any{"language": "English"}, map[string]any{"name": "Hindi"}, 5.0},
		"education": []any{
			map[string]any{"course": "BSc", "startyear": 2019.0, "sgpa": 8.5},
			"junk",
		},
		"experience_raw": "Intern at X",
	})

	assert.Equal(t, "Jane", rec.Name)
	assert.Equal(t, "9876543210", rec.Phone)
	assert.Equal(t, []string{"Docker", "Python"}, rec.SkillsList)
	assert.Equal(t, []string{"Creativity", "Negotiation", "Teamwork"}, rec.SoftOptions)
	assert.Equal(t, []string{"5", "English", "Hindi"}, rec.Languages)
	assert.Equal(t, []Education{{Course: "BSc", StartYear: "2019", SGPA: "8.5"}}, rec.Education)
	assert.Equal(t, "Intern at X", rec.ExperienceRaw)
}

func TestNormalizeParsedSummary(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
		want string
	}{
		{"string", map[string]any{"summary": "Hi"}, "Hi"},
		{"object", map[string]any{"summary": map[string]any{"text": "From obj"}}, "From obj"},
		{"list", map[string]any{"summary": []any{"a", "b", 1.0}}, "a b 1"},
		{"profile string", map[string]any{"summary": "", "profile": "Profile text"}, "Profile text"},
		{"profile object", map[string]any{"profile": map[string]any{"text": "P"}}, "P"},
		{"null", map[string]any{"summary": nil}, ""},
		{"number", map[string]any{"summary": 42.0}, "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeParsed(tc.in).Summary)
		})
	}
}

func TestDecodeLooseJSONTruncatedAfterNestedObject(t *testing.T) {
	v, err := DecodeLooseJSON(`{"name": "Jane", "education": [{"course": "BSc"}], "skills_list": ["Go", "SQL"`)
	require.NoError(t, err)

	rec := NormalizeParsed(v)
	assert.Equal(t, "Jane", rec.Name)
	assert.Equal(t, []string{"Go", "SQL"}, rec.SkillsList)
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "BSc", rec.Education[0].Course)
}
