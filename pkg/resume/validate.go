package resume

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError describes one rejected form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string { return e.Message }

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidatePersonal checks the personal details step.
func ValidatePersonal(r Record) error {
	var errs ValidationErrors
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, ValidationError{"name", "Enter your name. It is compulsory"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, ValidationError{"email", "Enter your email. It is compulsory"})
	}
	phone := strings.TrimSpace(r.Phone)
	switch {
	case phone == "":
		errs = append(errs, ValidationError{"phone", "Enter your phone number"})
	case !isDigits(phone, 10):
		errs = append(errs, ValidationError{"phone", "Phone number must be exactly 10 digits"})
	}
	return errs.orNil()
}

// CleanEducation drops blank rows and validates the years of the rest.
func CleanEducation(rows []Education) ([]Education, error) {
	out := make([]Education, 0, len(rows))
	var errs ValidationErrors
	for _, e := range rows {
		if e.IsBlank() {
			continue
		}
		e = Education{
			Course:    strings.TrimSpace(e.Course),
			School:    strings.TrimSpace(e.School),
			Board:     strings.TrimSpace(e.Board),
			StartYear: strings.TrimSpace(e.StartYear),
			StopYear:  strings.TrimSpace(e.StopYear),
			SGPA:      strings.TrimSpace(e.SGPA),
		}
		label := e.Course
		if label == "" {
			label = "Education"
		}
		startOK := e.StartYear == "" || isDigits(e.StartYear, 4)
		stopOK := e.StopYear == "" || isDigits(e.StopYear, 4)
		if !startOK {
			errs = append(errs, ValidationError{"education", "Invalid start year for " + label})
		}
		if !stopOK {
			errs = append(errs, ValidationError{"education", "Invalid stop year for " + label})
		}
		if startOK && stopOK && e.StartYear != "" && e.StopYear != "" {
			start, _ := strconv.Atoi(e.StartYear)
			stop, _ := strconv.Atoi(e.StopYear)
			if stop < start {
				errs = append(errs, ValidationError{"education", "End year cannot be before start year for " + label})
			}
		}
		out = append(out, e)
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseSkills splits a comma separated list; at least one skill is required.
func ParseSkills(s string) ([]string, error) {
	skills := SplitList(s)
	if len(skills) == 0 {
		return nil, ValidationErrors{{"skills_list", "At least one technical skill is required"}}
	}
	return skills, nil
}

// SplitList splits on commas, trims and drops empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateForPreview checks the fields every template needs.
func ValidateForPreview(r Record) error {
	var errs ValidationErrors
	required := []struct {
		field string
		ok    bool
	}{
		{"name", strings.TrimSpace(r.Name) != ""},
		{"email", strings.TrimSpace(r.Email) != ""},
		{"phone", strings.TrimSpace(r.Phone) != ""},
		{"skills_list", len(r.SkillsList) > 0},
	}
	for _, f := range required {
		if !f.ok {
			errs = append(errs, ValidationError{f.field, fmt.Sprintf("Missing required field: %s", f.field)})
		}
	}
	return errs.orNil()
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
