package reports

import (
	"strings"
	"time"
)

// Stats are the dashboard's summary counters.
type Stats struct {
	NearMisses  int `json:"nearMisses"`
	Incidents   int `json:"incidents"`
	OpenActions int `json:"openActions"`
}

var openActionMarkers = []string{"open", "pending", "under"}

// ComputeStats counts near misses and incidents for the calendar month of
// now; the open-action counter deliberately scans all reports regardless of
// date. Reports with unparsable dates never contribute to the monthly
// counters.
func ComputeStats(reports []Report, now time.Time) Stats {
	var st Stats
	for _, r := range reports {
		status := strings.ToLower(r.Status)
		for _, marker := range openActionMarkers {
			if strings.Contains(status, marker) {
				st.OpenActions++
				break
			}
		}
		if r.EventAt == nil {
			continue
		}
		if r.EventAt.Year() != now.Year() || r.EventAt.Month() != now.Month() {
			continue
		}
		typ := strings.ToLower(strings.TrimSpace(r.EventType))
		switch {
		case strings.Contains(typ, "near"):
			st.NearMisses++
		case typ != "":
			st.Incidents++
		}
	}
	return st
}
