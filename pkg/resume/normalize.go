package resume

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/artem13815/resumebuilder/pkg/nlp"
)

// NormalizeParsed coerces whatever the model returned into a Record. Anything
// that is not a JSON object yields the empty record.
func NormalizeParsed(v any) Record {
	rec := NewRecord()
	p, ok := v.(map[string]any)
	if !ok {
		return rec
	}

	rec.Name = strings.TrimSpace(str(p["name"]))
	rec.Email = strings.TrimSpace(str(p["email"]))
	rec.Phone = strings.TrimSpace(str(p["phone"]))
	rec.Location = strings.TrimSpace(str(p["location"]))
	rec.Summary = normalizeSummary(p)

	soft := map[string]struct{}{}
	for _, s := range asList(p["soft_options"]) {
		if name := strings.TrimSpace(itemName(s, "skill", "name")); name != "" {
			soft[name] = struct{}{}
		}
	}
	tech := map[string]struct{}{}
	for _, s := range asList(p["skills_list"]) {
		var name, kind string
		if m, ok := s.(map[string]any); ok {
			name = str(m["skill"])
			if name == "" {
				name = str(m["name"])
			}
			kind = strings.ToLower(str(m["type"]))
		} else {
			name = str(s)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if nlp.IsSoftSkill(name) || kind == "soft" {
			soft[name] = struct{}{}
		} else {
			tech[name] = struct{}{}
		}
	}
	rec.SkillsList = sortedKeys(tech)
	rec.SoftOptions = sortedKeys(soft)

	langs := map[string]struct{}{}
	for _, l := range asList(p["languages"]) {
		if name := strings.TrimSpace(itemName(l, "language", "name")); name != "" {
			langs[name] = struct{}{}
		}
	}
	rec.Languages = sortedKeys(langs)

	if rows, ok := p["education"].([]any); ok {
		for _, row := range rows {
			e, ok := row.(map[string]any)
			if !ok {
				continue
			}
			rec.Education = append(rec.Education, Education{
				Course:    str(e["course"]),
				School:    str(e["school"]),
				Board:     str(e["board"]),
				StartYear: str(e["startyear"]),
				StopYear:  str(e["stopyear"]),
				SGPA:      str(e["sgpa"]),
			})
		}
	}

	rec.ExperienceRaw = str(p["experience_raw"])
	rec.ProjectsRaw = str(p["projects_raw"])
	rec.DeclarationRaw = str(p["declaration_raw"])
	return rec
}

// profile заполняет отсутствующий summary
func normalizeSummary(p map[string]any) string {
	summary := p["summary"]
	if isEmpty(summary) {
		switch prof := p["profile"].(type) {
		case string:
			if prof != "" {
				summary = prof
			}
		case map[string]any:
			summary = str(prof["text"])
		}
	}
	switch s := summary.(type) {
	case map[string]any:
		return str(s["text"])
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			parts = append(parts, str(item))
		}
		return strings.Join(parts, " ")
	default:
		return str(s)
	}
}

// asList accepts a JSON list or a comma separated string.
func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case string:
		parts := SplitList(t)
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out
	}
	return nil
}

func itemName(v any, keys ...string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}
	for _, k := range keys {
		if s := str(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
