package reports

import (
	"sort"
	"strings"
	"time"
)

// Filter holds the dashboard's optional criteria. Empty criteria are no-ops;
// supplied criteria combine with AND semantics.
type Filter struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
}

func (f Filter) Empty() bool {
	return f.From == "" && f.To == "" && f.Location == "" && f.Type == "" && f.Severity == "" && f.Status == ""
}

// Apply returns the subset satisfying every non-empty criterion, preserving
// input order. Date bounds only apply to reports whose event date parsed;
// a report with an unparsable date is never excluded by them.
func (f Filter) Apply(reports []Report) []Report {
	from := parseFilterDate(f.From, false)
	to := parseFilterDate(f.To, true)
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	sev := strings.ToLower(strings.TrimSpace(f.Severity))
	status := strings.ToLower(strings.TrimSpace(f.Status))

	var out []Report
	for _, r := range reports {
		if from != nil && r.EventAt != nil && r.EventAt.Before(*from) {
			continue
		}
		if to != nil && r.EventAt != nil && r.EventAt.After(*to) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(r.Location), loc) {
			continue
		}
		if typ != "" && strings.ToLower(strings.TrimSpace(r.EventType)) != typ {
			continue
		}
		if sev != "" && strings.ToLower(strings.TrimSpace(r.Severity)) != sev {
			continue
		}
		if status != "" && strings.ToLower(strings.TrimSpace(r.Status)) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// parseFilterDate parses a yyyy-mm-dd bound; the upper bound is pushed to the
// end of its day so "to" is inclusive.
func parseFilterDate(raw string, endOfDay bool) *time.Time {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil
	}
	if endOfDay {
		// Built from components so 23:59:59.999 holds on DST-transition days.
		t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
	}
	return &t
}

// SortByEventDateDesc orders reports newest first. Reports with unparsable
// dates compare as equal, so the stable sort leaves their relative order
// untouched.
func SortByEventDateDesc(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i].EventAt, reports[j].EventAt
		if a == nil || b == nil {
			return false
		}
		return a.After(*b)
	})
}
