package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveMetaText(t *testing.T) {
	in := "Here is your rewritten summary:\nMotivated graduate with Python skills.\nBelow is the text\nEager to learn."
	assert.Equal(t, "Motivated graduate with Python skills. Eager to learn.", RemoveMetaText(in))
	assert.Equal(t, "", RemoveMetaText("Here's the summary"))
}

func TestSanitizeSummary(t *testing.T) {
	in := "Results-driven engineer who helped the Company reach business growth in a high-pressure industry."
	got := SanitizeSummary(in)
	assert.Equal(t, "engineer who helped the reach in a .", got)
	// whole words only
	assert.Equal(t, "industrial design student", SanitizeSummary("industrial design student"))
	// removed terms leave no stray line breaks or double spaces
	assert.Equal(t, "Go developer with years of backend work", SanitizeSummary("Go developer\nwith  outstanding years of\tbackend work "))
}

func TestIsIntentBased(t *testing.T) {
	cases := map[string]bool{
		"i am brilliant":              true,
		"I'm a quick learner":         true,
		"iam hardworking and focused": true,
		"I am a student":              false,
		"hardworking developer":       false,
		"":                            false,
		"   ":                         false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsIntentBased(in), in)
	}
}

func TestIsLowQuality(t *testing.T) {
	assert.True(t, IsLowQuality(""))
	assert.True(t, IsLowQuality("ok"))
	assert.True(t, IsLowQuality("good good good good good"))
	assert.True(t, IsLowQuality("ok okay fine nice great cool"))
	assert.True(t, IsLowQuality("python python python java"))
	assert.False(t, IsLowQuality("I build web apps with Django and React"))
}

func TestIsInvalidSummary(t *testing.T) {
	valid := "Computer science graduate with hands-on practice in Python, SQL and web development projects."
	assert.False(t, IsInvalidSummary(valid))
	assert.True(t, IsInvalidSummary("Too short."))
	assert.True(t, IsInvalidSummary("computer science graduate with hands-on practice in Python, SQL and web development projects."))
	assert.True(t, IsInvalidSummary("Computer science graduate with hands-on practice in Python SQL and web development projects"))
}

func TestClassifyInput(t *testing.T) {
	assert.Equal(t, KindExperience, ClassifyInput("I worked 2 years at a bank"))
	assert.Equal(t, KindSkill, ClassifyInput("Proficient in SQL"))
	assert.Equal(t, KindInterest, ClassifyInput("I enjoy building robots"))
	assert.Equal(t, KindNeutral, ClassifyInput("Computer science graduate"))
	// experience keywords win over skill keywords
	assert.Equal(t, KindExperience, ClassifyInput("skill gained over 3 years"))
}

func TestIsSoftSkill(t *testing.T) {
	assert.True(t, IsSoftSkill(" Problem Solving "))
	assert.True(t, IsSoftSkill("teamwork"))
	assert.False(t, IsSoftSkill("Python"))
}

func TestBannedWords(t *testing.T) {
	got := BannedWords("Experienced, skilled team player with strong expertise.")
	assert.Equal(t, []string{"skilled", "experienced", "expertise", "strong", "team"}, got)
	assert.Empty(t, BannedWords("Built a REST API in Go"))
}
