package render

import (
	"strings"

	"github.com/artem13815/resumebuilder/pkg/resume"
)

const (
	ContentType     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	DefaultFilename = "resume.docx"
)

type Template string

const (
	Simple  Template = "simple"
	Sidebar Template = "sidebar"
	Modern  Template = "modern"
)

// TemplateInfo describes a template for the options endpoint.
type TemplateInfo struct {
	ID          Template `json:"id"`
	Description string   `json:"description"`
}

var Templates = []TemplateInfo{
	{Simple, "Single column with centered header"},
	{Sidebar, "Dark left sidebar with contact and skills"},
	{Modern, "Main column with a light right sidebar"},
}

// ParseTemplate maps unknown names to Simple.
func ParseTemplate(s string) Template {
	switch t := Template(strings.ToLower(strings.TrimSpace(s))); t {
	case Sidebar, Modern:
		return t
	}
	return Simple
}

// Render builds the .docx for a record.
func Render(t Template, rec resume.Record) ([]byte, error) {
	d, err := newDocument()
	if err != nil {
		return nil, err
	}
	switch ParseTemplate(string(t)) {
	case Sidebar:
		renderSidebar(d, rec)
	case Modern:
		renderModern(d, rec)
	default:
		renderSimple(d, rec)
	}
	return d.bytes()
}

func renderSimple(d *document, rec resume.Record) {
	d.add(para{Text: rec.Name, Style: "Title", Center: true})
	d.add(para{Text: rec.Email + " | " + rec.Phone + " | " + rec.Location, Center: true})

	heading := func(text string) {
		d.add(para{Text: text, Style: "Heading1", Size: 22, Before: 240})
	}
	line := func(text string) {
		d.add(para{Text: text, After: 20})
	}

	if rec.Summary != "" {
		heading("Summary")
		d.add(para{Text: rec.Summary, After: 40})
	}
	if edu := educationLines(rec); len(edu) > 0 {
		heading("Education")
		for _, l := range edu {
			d.add(para{Text: l, After: 40})
		}
	}
	heading("Technical Skills")
	for _, l := range skillLines(rec) {
		line(l)
	}
	if rec.Experience != "" {
		heading("Experience")
		for _, l := range bullets(rec.Experience) {
			line(l)
		}
	}
	if rec.Projects != "" {
		heading("Projects")
		for _, l := range bullets(rec.Projects) {
			line(l)
		}
	}
	if rec.Declaration != "" {
		heading("Declaration")
		d.add(para{Text: rec.Declaration})
	}
}

// column collects the paragraphs of one table cell.
type column struct {
	paras []para
	size  int
	color string
}

func (c *column) heading(text string) {
	c.paras = append(c.paras, para{Text: text, Bold: true, Size: 22, Color: c.color, Before: 200})
}

func (c *column) text(text string) {
	c.paras = append(c.paras, para{Text: text, Size: c.size, Color: c.color, Before: 20, After: 20})
}

func (c *column) label(text string) {
	c.paras = append(c.paras, para{Text: text, Bold: true, Size: c.size, Color: c.color, Before: 200, After: 20})
}

func renderSidebar(d *document, rec resume.Record) {
	left := column{size: 18, color: "FFFFFF"}
	left.paras = append(left.paras, para{Text: strings.ToUpper(rec.Name), Bold: true, Size: 24, Color: left.color})
	left.label("CONTACT")
	left.text(rec.Location)
	left.text(rec.Phone)
	left.text(rec.Email)
	left.label("SKILLS")
	for _, l := range skillLines(rec) {
		left.text(l)
	}
	if len(rec.Languages) > 0 {
		left.label("LANGUAGES")
		for _, l := range first(rec.Languages, 4) {
			left.text("• " + l)
		}
	}
	if len(rec.SoftOptions) > 0 {
		left.label("SOFT SKILLS")
		for _, s := range first(rec.SoftOptions, 6) {
			left.text("• " + s)
		}
	}

	right := column{size: 19}
	mainSections(&right, rec)
	if edu := educationLines(rec); len(edu) > 0 {
		right.heading("EDUCATION")
		for _, l := range edu {
			right.text(l)
		}
	}
	if rec.Declaration != "" {
		right.heading("DECLARATION")
		right.text(rec.Declaration)
	}

	d.table(
		cell{Width: narrowCol, Fill: "2F3A40", Paras: left.paras},
		cell{Width: wideCol, Paras: right.paras},
	)
}

func renderModern(d *document, rec resume.Record) {
	left := column{size: 19}
	left.paras = append(left.paras, para{Text: strings.ToUpper(rec.Name), Bold: true, Size: 36})
	mainSections(&left, rec)
	if rec.Declaration != "" {
		left.heading("DECLARATION")
		left.text(rec.Declaration)
	}

	right := column{size: 18}
	right.heading("CONTACT")
	right.text(rec.Location)
	right.text(rec.Phone)
	right.text(rec.Email)
	right.heading("SKILLS")
	for _, l := range skillLines(rec) {
		right.text(l)
	}
	if len(rec.SoftOptions) > 0 {
		right.heading("SOFT SKILLS")
		for _, s := range first(rec.SoftOptions, 6) {
			right.text("• " + s)
		}
	}
	if len(rec.Languages) > 0 {
		right.heading("LANGUAGES")
		for _, l := range first(rec.Languages, 4) {
			right.text("• " + l)
		}
	}
	if edu := educationLines(rec); len(edu) > 0 {
		right.heading("EDUCATION")
		for _, l := range edu {
			right.text(l)
		}
	}

	d.table(
		cell{Width: wideCol, Paras: left.paras},
		cell{Width: narrowCol, Fill: "E9CBF2", Paras: right.paras},
	)
}

// mainSections writes summary, experience and projects, shared by both sidebar layouts.
func mainSections(c *column, rec resume.Record) {
	if rec.Summary != "" {
		c.heading("PROFESSIONAL SUMMARY")
		c.text(rec.Summary)
	}
	if rec.Experience != "" {
		c.heading("EXPERIENCE")
		for _, l := range bullets(rec.Experience) {
			c.text(l)
		}
	}
	if rec.Projects != "" {
		c.heading("PROJECTS")
		for _, l := range bullets(rec.Projects) {
			c.text(l)
		}
	}
}

// skillLines prefers the generated descriptions and falls back to the first 8 skills.
func skillLines(rec resume.Record) []string {
	if rec.TechnicalSkillsAI != "" {
		return bullets(rec.TechnicalSkillsAI)
	}
	out := make([]string, 0, 8)
	for _, s := range first(rec.SkillsList, 8) {
		out = append(out, "• "+s)
	}
	return out
}

func educationLines(rec resume.Record) []string {
	var out []string
	for _, e := range rec.Education {
		if e.IsBlank() {
			continue
		}
		out = append(out, e.Line())
	}
	return out
}

func bullets(text string) []string {
	items := resume.SplitBullets(text)
	for i, it := range items {
		items[i] = "• " + it
	}
	return items
}

func first(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
