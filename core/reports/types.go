package reports

import (
	"strings"
	"time"

	"kestrel-sir/core/feed"
)

// Report is one sheet row mapped onto the dashboard's fixed field set. Raw
// keeps the full parsed row for export and form population.
type Report struct {
	Raw          feed.Record `json:"raw"`
	ReportNumber string      `json:"reportNumber"`
	EventDate    string      `json:"eventDate"`
	EventAt      *time.Time  `json:"eventAt,omitempty"`
	EventType    string      `json:"eventType"`
	Location     string      `json:"location"`
	Project      string      `json:"project"`
	Severity     string      `json:"severity"`
	Status       string      `json:"status"`
}

// Dataset is one parsed-and-mapped snapshot of the feed.
type Dataset struct {
	Headers   []string
	Reports   []Report
	FetchedAt time.Time
}

// Column headers are the sole source of field identity. Each field lists the
// header spellings seen in published sheets; the raw field key itself is the
// final fallback.
var fieldHeaders = map[string][]string{
	"reportNumber": {"Report Number", "reportNumber", "report_number"},
	"eventDate":    {"Event Date", "eventDate", "Date"},
	"eventType":    {"Event Type", "eventType", "Type"},
	"location":     {"Location", "Site"},
	"project":      {"Project/Client", "Project", "Client"},
	"severity":     {"Severity"},
	"status":       {"Status", "Action Status"},
}

func fieldValue(rec feed.Record, field string) string {
	for _, h := range fieldHeaders[field] {
		if v, ok := rec[h]; ok && v != "" {
			return v
		}
	}
	return rec[field]
}

// reportNumberOf checks the three key spellings the edit lookup accepts.
func reportNumberOf(rec feed.Record) string {
	for _, key := range []string{"reportNumber", "Report Number", "report_number"} {
		if v := strings.TrimSpace(rec[key]); v != "" {
			return v
		}
	}
	return ""
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// parseEventDate returns nil for values no known layout accepts. Date-only
// layouts resolve in local time because filters and statistics use the local
// clock.
func parseEventDate(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// MapDocument maps parsed feed rows to incident reports.
func MapDocument(doc *feed.Document, fetchedAt time.Time) *Dataset {
	ds := &Dataset{Headers: doc.Headers, FetchedAt: fetchedAt}
	for _, rec := range doc.Records {
		r := Report{
			Raw:          rec,
			ReportNumber: fieldValue(rec, "reportNumber"),
			EventDate:    fieldValue(rec, "eventDate"),
			EventType:    fieldValue(rec, "eventType"),
			Location:     fieldValue(rec, "location"),
			Project:      fieldValue(rec, "project"),
			Severity:     fieldValue(rec, "severity"),
			Status:       fieldValue(rec, "status"),
		}
		r.EventAt = parseEventDate(r.EventDate)
		ds.Reports = append(ds.Reports, r)
	}
	return ds
}
