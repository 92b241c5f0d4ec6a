package resume

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/artem13815/resumebuilder/pkg/llm"
	"github.com/artem13815/resumebuilder/pkg/nlp"
)

const (
	WarnScanned     = "This resume appears to be scanned or image-based. Autofill may be limited. Please review manually."
	WarnModelFailed = "The language model was unavailable; fields were filled from the resume text only."
	WarnBadJSON     = "The language model returned malformed data; fields were filled from the resume text only."

	scannedThreshold = 200
)

// AutofillResult is the pre-filled record plus everything the UI should tell the user.
type AutofillResult struct {
	Record    Record   `json:"record"`
	Warnings  []string `json:"warnings"`
	Excerpted bool     `json:"excerpted"`
	CharsUsed int      `json:"chars_used"`
	Model     string   `json:"model"`
}

// AutofillService заполняет анкету по загруженному резюме.
type AutofillService interface {
	Autofill(ctx context.Context, filename string, data []byte) (AutofillResult, error)
}

type autofillService struct {
	llm      llm.ChatModel
	log      *slog.Logger
	maxChars int
}

func NewAutofillService(model llm.ChatModel, log *slog.Logger) AutofillService {
	return &autofillService{
		llm:      model,
		log:      log,
		maxChars: 6000,
	}
}

func (s *autofillService) Autofill(ctx context.Context, filename string, data []byte) (AutofillResult, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return AutofillResult{}, err
	}
	res := AutofillResult{Warnings: []string{}, Model: llm.ModelName(s.llm)}
	if len(strings.TrimSpace(text)) < scannedThreshold {
		res.Warnings = append(res.Warnings, WarnScanned)
	}

	excerpt := text
	if r := []rune(excerpt); len(r) > s.maxChars {
		excerpt = string(r[:s.maxChars])
		res.Excerpted = true
	}
	res.CharsUsed = len([]rune(excerpt))

	rec := NewRecord()
	if strings.TrimSpace(excerpt) != "" && s.llm != nil {
		raw, err := s.llm.Ask(ctx, "", autofillPrompt(excerpt))
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return AutofillResult{}, ctx.Err()
			}
			s.log.Warn("autofill: model call failed", "file", filename, "err", err)
			res.Warnings = append(res.Warnings, WarnModelFailed)
		default:
			parsed, perr := DecodeLooseJSON(raw)
			if perr != nil {
				s.log.Warn("autofill: unparsable model output", "file", filename, "err", perr)
				res.Warnings = append(res.Warnings, WarnBadJSON)
			}
			rec = NormalizeParsed(parsed)
		}
	}

	res.Record = mergeContact(rec, text)
	return res, nil
}

// mergeContact fills gaps from regex heuristics. The model wins for name, email
// and phone; the regex wins for location.
func mergeContact(rec Record, text string) Record {
	c := nlp.ExtractContact(text)
	if rec.Email == "" {
		rec.Email = c.Email
	}
	if rec.Phone == "" {
		rec.Phone = c.Phone
	}
	if rec.Name == "" {
		rec.Name = c.Name
	}
	if loc := nlp.ExtractLocation(text); loc != "" {
		rec.Location = loc
	}
	return rec
}

func autofillPrompt(text string) string {
	return fmt.Sprintf(`
Return ONLY valid JSON.

Schema:
{
  "name": "",
  "email": "",
  "phone": "",
  "location": "",
  "summary": "",

  "education": [
    {
      "course": "",
      "school": "",
      "board": "",
      "startyear": "",
      "stopyear": "",
      "sgpa": ""
    }
  ],

  "skills_list": [],
  "languages": [],
  "soft_options": [],

  "experience_raw": "",
  "projects_raw": "",
  "declaration_raw": ""
}

Resume:
"""%s"""
`, text)
}
