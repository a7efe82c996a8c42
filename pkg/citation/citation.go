// Package citation validates CSL-JSON citation payloads and derives
// the display fields (title, author, year) that are denormalized onto
// Reference records.
//
// The citation payload is the single source of truth: Derive runs on
// every save of a Reference, and its results always overwrite whatever
// display values a caller supplied. The payload itself is produced
// upstream (by the historical citation mining tool) and is consumed
// here unchanged.
package citation

import (
	"fmt"
	"strings"
)

// Display carries the derived display fields of a Reference.
type Display struct {
	Title  string
	Author string
	Year   int
}

// InvalidError reports a citation payload that failed validation.
// Reason names the specific missing or malformed part.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return "invalid citation data: " + e.Reason
}

func invalid(format string, args ...any) error {
	return &InvalidError{Reason: fmt.Sprintf(format, args...)}
}

// Derive validates a CSL-JSON payload and computes the display fields.
// It fails with *InvalidError when the payload is empty, has no
// non-empty 'title', no non-empty 'author' list, or no usable
// 'issued.date-parts' entry with a positive integer year.
func Derive(data map[string]any) (Display, error) {
	var res Display

	if len(data) == 0 {
		return res, invalid("csl_data is required and cannot be empty")
	}

	title, _ := data["title"].(string)
	if strings.TrimSpace(title) == "" {
		return res, invalid("csl_data must contain a non-empty 'title' field")
	}

	authors, ok := data["author"].([]any)
	if !ok || len(authors) == 0 {
		return res, invalid("csl_data must contain a non-empty 'author' field")
	}

	year, err := issuedYear(data)
	if err != nil {
		return res, err
	}

	res.Title = title
	res.Author = displayAuthor(authors)
	res.Year = year
	return res, nil
}

// issuedYear digs the publication year out of issued.date-parts.
// The CSL shape is issued: {date-parts: [[year, month, day], ...]};
// only the first entry's first element matters here.
func issuedYear(data map[string]any) (int, error) {
	issued, ok := data["issued"].(map[string]any)
	if !ok {
		return 0, invalid(
			"csl_data must contain a valid 'issued' field with 'date-parts'",
		)
	}
	dateParts, ok := issued["date-parts"].([]any)
	if !ok || len(dateParts) == 0 {
		return 0, invalid(
			"csl_data must contain a valid 'issued' field with 'date-parts'",
		)
	}
	first, ok := dateParts[0].([]any)
	if !ok || len(first) == 0 {
		return 0, invalid(
			"csl_data must contain a valid 'issued' field with 'date-parts'",
		)
	}

	year, ok := asInt(first[0])
	if !ok || year <= 0 {
		return 0, invalid(
			"csl_data 'issued' year must be a positive integer, got %v", first[0],
		)
	}
	return year, nil
}

// asInt accepts the numeric shapes a JSON decoder can produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// displayAuthor builds the author display string from the ordered
// author list. Family names are collected (a literal name contributes
// its last whitespace-separated token); entries with neither are
// skipped.
func displayAuthor(authors []any) string {
	var families []string
	for _, a := range authors {
		entry, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if family, _ := entry["family"].(string); family != "" {
			families = append(families, family)
			continue
		}
		if literal, _ := entry["literal"].(string); literal != "" {
			tokens := strings.Fields(literal)
			if len(tokens) > 0 {
				families = append(families, tokens[len(tokens)-1])
			}
		}
	}

	switch len(families) {
	case 0:
		return ""
	case 1:
		return families[0]
	case 2:
		return families[0] + " and " + families[1]
	default:
		return families[0] + " et al."
	}
}
