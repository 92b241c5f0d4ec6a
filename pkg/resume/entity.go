package resume

import "strings"

// Education описывает одну строку образования в форме.
type Education struct {
	Course    string `json:"course"`
	School    string `json:"school"`
	Board     string `json:"board"`
	StartYear string `json:"startyear"`
	StopYear  string `json:"stopyear"`
	SGPA      string `json:"sgpa"`
}

// IsBlank reports whether every field is empty or whitespace.
func (e Education) IsBlank() bool {
	for _, v := range []string{e.Course, e.School, e.Board, e.StartYear, e.StopYear, e.SGPA} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Years renders "(start – stop)", "(year)" or "" depending on what is filled.
func (e Education) Years() string {
	start, stop := strings.TrimSpace(e.StartYear), strings.TrimSpace(e.StopYear)
	switch {
	case start != "" && stop != "":
		return "(" + start + " – " + stop + ")"
	case start != "":
		return "(" + start + ")"
	case stop != "":
		return "(" + stop + ")"
	}
	return ""
}

// Line is the one-line form used by every document template.
func (e Education) Line() string {
	return e.Course + " " + e.Years() + " | " + e.School + " | " + e.Board + " | SGPA: " + e.SGPA
}

// Record хранит плоскую запись анкеты, которая передаётся между шагами мастера.
type Record struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	Summary string `json:"summary"`

	Education []Education `json:"education"`

	SkillsList        []string `json:"skills_list"`
	TechnicalSkillsAI string   `json:"technical_skills_ai"`
	Languages         []string `json:"languages"`
	SoftOptions       []string `json:"soft_options"`

	ExperienceLevel string `json:"experience_level"`
	ExperienceRaw   string `json:"experience_raw"`
	Experience      string `json:"experience"`
	ProjectsRaw     string `json:"projects_raw"`
	Projects        string `json:"projects"`
	DeclarationRaw  string `json:"declaration_raw"`
	Declaration     string `json:"declaration"`
}

// NewRecord returns an empty record whose lists encode as [] rather than null.
func NewRecord() Record {
	var r Record
	r.EnsureSlices()
	return r
}

// EnsureSlices replaces nil slices with empty ones.
func (r *Record) EnsureSlices() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.SkillsList == nil {
		r.SkillsList = []string{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
	if r.SoftOptions == nil {
		r.SoftOptions = []string{}
	}
}

// SplitBullets splits model output on "•" and drops empty pieces.
func SplitBullets(text string) []string {
	var out []string
	for _, part := range strings.Split(text, "•") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
