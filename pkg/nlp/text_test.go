package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "machine learning c++ and c#", Normalize("Machine-Learning, C++ and C#!"))
	assert.Equal(t, "", Normalize("  --  "))
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Built REST API services; REST APIs documented")
	assert.True(t, ContainsPhrase(text, "rest api"))
	assert.False(t, ContainsPhrase(text, "api services docs"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestSkillVariants(t *testing.T) {
	assert.Equal(t, []string{"javascript", "js", "java script"}, SkillVariants("JavaScript"))
	assert.Equal(t, []string{"machine learning", "ml", "machinelearning"}, SkillVariants("machine learning"))
	assert.Empty(t, SkillVariants("  "))
}

func TestMentionsSkill(t *testing.T) {
	text := Normalize("Frontend in JS and ReactJS, backend in Java")
	assert.True(t, MentionsSkill(text, "javascript"))
	assert.True(t, MentionsSkill(text, "react"))
	assert.True(t, MentionsSkill(text, "java"))
	assert.False(t, MentionsSkill(Normalize("JavaScript only"), "java"))
	assert.False(t, MentionsSkill(Normalize("MySQL"), "sql"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, map[string]struct{}{"go": {}, "sql": {}}, Tokens("go sql go"))
	assert.Empty(t, Tokens(""))
}
