package nlp

import (
	"regexp"
	"strings"
)

// Contact holds what the regex pass can find without a model.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\b\d{10}\b`)

	locationRes = []*regexp.Regexp{
		regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+,\s*[A-Z]{2}`), // Los Angeles, CA
		regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}`),               // Austin, TX
		regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z][a-z]+`),            // Pune, Maharashtra
	}
)

const locationHeaderLines = 15

// ExtractContact takes the first email, the first 10-digit number and the first
// non-empty line (as the name).
func ExtractContact(text string) Contact {
	var c Contact
	c.Email = emailRe.FindString(text)
	c.Phone = phoneRe.FindString(text)
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			c.Name = l
			break
		}
	}
	return c
}

// ExtractLocation looks for a "City, ST" style location in the resume header.
func ExtractLocation(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > locationHeaderLines {
		lines = lines[:locationHeaderLines]
	}
	for _, re := range locationRes {
		for _, l := range lines {
			if m := re.FindString(l); m != "" {
				return m
			}
		}
	}
	return ""
}
