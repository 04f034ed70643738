package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlCharRe   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	fencedJSONRe    = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
)

// ParseLenientJSON parses JSON that may be fenced in a markdown block,
// surrounded by text, or slightly malformed (trailing commas, bare keys,
// single-quoted strings as written by Python's repr).
func ParseLenientJSON(input string, target interface{}) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("empty input")
	}

	candidates := []string{input}
	if m := fencedJSONRe.FindStringSubmatch(input); len(m) > 1 {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if extracted := extractJSONFromText(input); extracted != "" {
		candidates = append(candidates, extracted)
	}

	for _, c := range candidates {
		if err := json.Unmarshal([]byte(c), target); err == nil {
			return nil
		}
	}
	for _, c := range candidates {
		if err := json.Unmarshal([]byte(repairJSON(c)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

// ParseStoredList decodes a serialized list column.
// Anything that cannot be read as a list yields an empty, non-nil slice.
func ParseStoredList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var items []interface{}
	if err := ParseLenientJSON(raw, &items); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// extractJSONFromText finds the first JSON object or array in surrounding text
func extractJSONFromText(input string) string {
	start := strings.IndexAny(input, "[{")
	if start < 0 {
		return ""
	}
	open := rune(input[start])
	close := ']'
	if open == '{' {
		close = '}'
	}
	return extractBalancedBraces(input[start:], open, close)
}

// extractBalancedBraces extracts content with balanced braces
func extractBalancedBraces(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// repairJSON fixes the usual breakages of hand-written or repr'd JSON
func repairJSON(input string) string {
	s := controlCharRe.ReplaceAllString(input, "")
	s = fixSingleQuotes(s)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	return s
}

// fixSingleQuotes rewrites single-quoted strings to double-quoted ones.
// Apostrophes inside words ("l'eau") are left alone.
func fixSingleQuotes(input string) string {
	runes := []rune(input)
	var b strings.Builder
	inDouble, inSingle, escape := false, false, false

	for i, ch := range runes {
		if escape {
			b.WriteRune(ch)
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			b.WriteRune(ch)
			escape = true
		case ch == '"' && inSingle:
			b.WriteString(`\"`)
		case ch == '"':
			inDouble = !inDouble
			b.WriteRune(ch)
		case ch == '\'' && !inDouble && !inSingle && opensString(runes, i):
			inSingle = true
			b.WriteRune('"')
		case ch == '\'' && inSingle && closesString(runes, i):
			inSingle = false
			b.WriteRune('"')
		default:
			b.WriteRune(ch)
		}
	}

	return b.String()
}

func opensString(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' {
			continue
		}
		return strings.ContainsRune("[{,:", runes[j])
	}
	return true
}

func closesString(runes []rune, i int) bool {
	for j := i + 1; j < len(runes); j++ {
		if runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' {
			continue
		}
		return strings.ContainsRune("]},:", runes[j])
	}
	return true
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
