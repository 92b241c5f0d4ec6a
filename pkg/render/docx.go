package render

import (
	"bytes"
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// Page geometry in twips (1in = 1440).
const (
	pageWidth  = 11906 // A4 8.27in
	pageHeight = 16838 // A4 11.69in
	margin     = 720   // 0.5in
	narrowCol  = 3456  // 2.4in
	wideCol    = 6624  // 4.6in
)

// para is one paragraph with a single run. Size is in half-points, spacing in
// twentieths of a point.
type para struct {
	Text   string
	Style  string
	Bold   bool
	Size   int
	Color  string
	Center bool
	Before int
	After  int
}

type cell struct {
	Width int
	Fill  string
	Paras []para
}

type document struct {
	root *docx.RootDoc
}

func newDocument() (*document, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new docx: %w", err)
	}
	body := root.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	w, h := uint64(pageWidth), uint64(pageHeight)
	body.SectPr.PageSize = &ctypes.PageSize{Width: &w, Height: &h, Orient: stypes.PageOrientPortrait}
	m, zero := margin, 0
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top: &m, Right: &m, Bottom: &m, Left: &m,
		Header: &m, Footer: &m, Gutter: &zero,
	}
	return &document{root: root}, nil
}

func (d *document) add(p para) {
	format(d.root.AddEmptyParagraph(), p)
}

func (d *document) table(cells ...cell) {
	widths := make([]uint64, len(cells))
	total := 0
	for i, c := range cells {
		widths[i] = uint64(c.Width)
		total += c.Width
	}
	t := d.root.AddTable()
	t.Width(total, stypes.TableWidthDxa).Layout(stypes.TableLayoutFixed).Grid(widths...)
	row := t.AddRow()
	for _, c := range cells {
		tc := row.AddCell().Width(c.Width, stypes.TableWidthDxa)
		if c.Fill != "" {
			tc.BackgroundColor(c.Fill)
		}
		if len(c.Paras) == 0 {
			// a cell needs at least one paragraph
			tc.AddEmptyPara()
		}
		for _, p := range c.Paras {
			format(tc.AddEmptyPara(), p)
		}
	}
}

func format(dp *docx.Paragraph, p para) {
	if p.Style != "" {
		dp.Style(p.Style)
	}
	dp.Spacing(uint64(p.Before), uint64(p.After))
	if p.Center {
		dp.Justification(stypes.JustificationCenter)
	}
	r := dp.AddText(p.Text)
	if p.Bold {
		r.Bold(true)
	}
	if p.Color != "" {
		r.Color(p.Color)
	}
	if p.Size > 0 {
		// Run.Size takes whole points; 9.5pt needs half-points
		children := dp.GetCT().Children
		run := children[len(children)-1].Run
		if run.Property == nil {
			run.Property = &ctypes.RunProperty{}
		}
		run.Property.Size = ctypes.NewFontSize(uint64(p.Size))
		run.Property.SizeCs = ctypes.NewFontSizeCS(uint64(p.Size))
	}
}

// bytes packages the document as a .docx file.
func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.root.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}
