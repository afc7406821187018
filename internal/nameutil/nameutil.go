package nameutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey produces the canonical lookup form of a schedule name:
// whitespace collapsed, periods and commas stripped, uppercased. Word order
// is preserved, so "Smith, John A." and "smith john a" share a key but
// "John A Smith" does not.
func NormalizeKey(name string) string {
	norm := NormalizeWhitespace(name)
	norm = strings.ReplaceAll(norm, ".", "")
	norm = strings.ReplaceAll(norm, ",", "")
	return strings.ToUpper(norm)
}

// Split breaks a free-text schedule name into first and last components.
// A single token is treated as a last name only. With multiple tokens the
// first token is the first name and the final token the last name; middle
// names and initials are ignored.
func Split(name string) (first, last string) {
	norm := strings.ReplaceAll(NormalizeWhitespace(name), ",", "")
	parts := strings.Fields(norm)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[0], parts[len(parts)-1]
	}
}

// DisplayName joins name parts into a presentable title-cased form for CLI
// output. Empty parts are skipped.
func DisplayName(first, last string) string {
	joined := NormalizeWhitespace(first + " " + last)
	if joined == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(joined))
}
