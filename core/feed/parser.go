package feed

import (
	"regexp"
	"strings"
)

// Record maps a header name to the cell value of one feed row. Every header
// present in the document has an entry; missing trailing cells are "".
type Record map[string]string

// Document is one parsed CSV payload. Headers preserves the column order of
// the feed so re-serialization keeps the original layout.
type Document struct {
	Headers []string
	Records []Record
}

var edgeQuotes = regexp.MustCompile(`^"|"$`)

// ParseDocument tokenizes a raw CSV payload. Splitting is line-first: the
// text is cut on physical newlines before any quote handling, so a quoted
// field containing a literal newline is corrupted. The upstream sheet never
// emits such fields and the behavior is pinned by tests.
func ParseDocument(text string) *Document {
	lines := splitLines(text)
	if len(lines) == 0 {
		return &Document{}
	}
	headers := splitFields(lines[0])
	for i := range headers {
		headers[i] = cleanCell(headers[i])
	}
	doc := &Document{Headers: headers}
	for _, line := range lines[1:] {
		cells := splitFields(line)
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				rec[h] = cleanCell(cells[i])
			} else {
				rec[h] = ""
			}
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var lines []string
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// splitFields cuts one physical line on commas, toggling an in-quotes flag on
// every double quote so commas inside quoted fields do not separate.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// cleanCell strips one layer of leading/trailing double quotes, then trims.
func cleanCell(cell string) string {
	return strings.TrimSpace(edgeQuotes.ReplaceAllString(cell, ""))
}
