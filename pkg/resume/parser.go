package resume

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and txt are allowed")
	ErrUnreadable        = errors.New("file could not be read")

	reTags   = regexp.MustCompile(`<[^>]+>`)
	reBlanks = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines  = regexp.MustCompile(`\s*\n\s*`)
)

// SupportedExt reports whether the file extension can be extracted.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// ExtractText extracts plain text from supported resume formats, one line per
// paragraph, table cell or PDF text row.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	case ".txt":
		return normalizeWhitespace(string(data)), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// extractTextFromPDF turns a panic inside the pdf reader (truncated xref,
// broken object streams) into ErrUnreadable. Pages whose text cannot be read
// are skipped; the file is unreadable only if no page yields text.
func extractTextFromPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %w", ErrUnreadable, err)
	}
	var (
		sb      strings.Builder
		pageErr error
	)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// fall back to the flat text of the page
			txt, err := page.GetPlainText(nil)
			if err != nil {
				pageErr = errors.Join(pageErr, fmt.Errorf("page %d: %w", i, err))
				continue
			}
			sb.WriteString(txt)
			sb.WriteString("\n")
			continue
		}
		for _, row := range rows {
			sb.WriteString(joinRow(row.Content))
			sb.WriteString("\n")
		}
	}
	text = normalizeWhitespace(sb.String())
	if text == "" && pageErr != nil {
		return "", fmt.Errorf("%w: pdf: %w", ErrUnreadable, pageErr)
	}
	return text, nil
}

// joinRow glues the text runs of one row, adding a space where runs are visibly apart.
func joinRow(items pdf.TextHorizontal) string {
	var sb strings.Builder
	for i, t := range items {
		if i > 0 {
			prev := items[i-1]
			if t.X-(prev.X+prev.W) > prev.FontSize*0.15 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %w", ErrUnreadable, err)
	}
	defer doc.Close()
	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns WordprocessingML into lines: paragraphs (including the
// ones inside table cells) end with a newline, tabs and breaks are kept.
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	txt := reTags.ReplaceAllString(xml, "")
	return normalizeWhitespace(html.UnescapeString(txt))
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reBlanks.ReplaceAllString(s, " ")
	// Preserve newlines but collapse runs
	s = reLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
