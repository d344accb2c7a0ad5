package feed

import "strings"

// WriteDocument serializes records back to CSV using the document's header
// order, RFC4180-style escaping and CRLF row endings.
func WriteDocument(headers []string, records []Record) string {
	var b strings.Builder
	writeRow(&b, headers)
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = rec[h]
		}
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCell(cell))
	}
	b.WriteString("\r\n")
}

// escapeCell quotes a field and doubles inner quotes when it contains a
// comma, quote or newline.
func escapeCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
