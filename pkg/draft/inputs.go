package draft

import "github.com/artem13815/resumebuilder/pkg/resume"

type PersonalInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type SummaryInput struct {
	Text string `json:"text"`
	Skip bool   `json:"skip"`
}

type EducationInput struct {
	Rows []resume.Education `json:"rows"`
	Skip bool               `json:"skip"`
}

// SkillsInput carries the comma separated list as typed.
type SkillsInput struct {
	Skills string `json:"skills"`
}

type LanguagesInput struct {
	Languages []string `json:"languages"`
}

type SoftSkillsInput struct {
	Skills []string `json:"skills"`
	Skip   bool     `json:"skip"`
}

type ExperienceInput struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Skip  bool   `json:"skip"`
}

type TextInput struct {
	Text string `json:"text"`
	Skip bool   `json:"skip"`
}
