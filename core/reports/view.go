package reports

import "net/url"

// Row is the dashboard table row DTO. The full status is duplicated into the
// tooltip because the table cell may truncate it.
type Row struct {
	ReportNumber  string `json:"reportNumber"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	Severity      string `json:"severity"`
	Status        string `json:"status"`
	StatusTooltip string `json:"statusTooltip"`
	Link          string `json:"link"`
}

// BuildRows produces one row per report, linking to the form page with the
// report number when present and to the view-only page otherwise.
func BuildRows(reports []Report, formPath, viewPath string) []Row {
	rows := make([]Row, 0, len(reports))
	for _, r := range reports {
		link := viewPath
		if r.ReportNumber != "" {
			link = formPath + "?reportNumber=" + url.QueryEscape(r.ReportNumber)
		}
		rows = append(rows, Row{
			ReportNumber:  r.ReportNumber,
			Date:          r.EventDate,
			Type:          r.EventType,
			Location:      r.Location,
			Severity:      r.Severity,
			Status:        r.Status,
			StatusTooltip: r.Status,
			Link:          link,
		})
	}
	return rows
}
