package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// FormatResponse renders bot text for the web page: newlines become <br>
// and **bold** spans become <strong>bold</strong>. Text without such markers
// is returned unchanged, so the transform is idempotent.
func FormatResponse(text string) string {
	if text == "" {
		return ""
	}
	html := strings.ReplaceAll(text, "\n", "<br>")
	return boldRe.ReplaceAllString(html, "<strong>$1</strong>")
}

// TitleCase upper-cases the first letter of every word (French rules)
func TitleCase(s string) string {
	return cases.Title(language.French).String(s)
}
