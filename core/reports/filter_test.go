package reports

import (
	"testing"
	"time"

	"kestrel-sir/core/feed"
)

func mapCSV(t *testing.T, text string) *Dataset {
	t.Helper()
	return MapDocument(feed.ParseDocument(text), time.Now())
}

const sampleCSV = "reportNumber,eventDate,eventType,location,severity,status\n" +
	"001,2024-01-05,Near Miss,Warehouse A,Low,Open\n" +
	"002,2024-02-01,Incident,Plant 7,High,Closed\n" +
	"003,not-a-date,Incident,Warehouse B,Medium,Pending Review\n"

func TestFilterEmptyReturnsAllInOrder(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	got := Filter{}.Apply(ds.Reports)
	if len(got) != 3 {
		t.Fatalf("expected all 3, got %d", len(got))
	}
	for i, want := range []string{"001", "002", "003"} {
		if got[i].ReportNumber != want {
			t.Fatalf("order changed at %d: %s", i, got[i].ReportNumber)
		}
	}
}

func TestFilterStatusExact(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	got := Filter{Status: "open"}.Apply(ds.Reports)
	if len(got) != 1 || got[0].ReportNumber != "001" {
		t.Fatalf("expected exactly 001, got %v", got)
	}
}

func TestFilterLocationSubstring(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	got := Filter{Location: "warehouse"}.Apply(ds.Reports)
	if len(got) != 2 {
		t.Fatalf("expected 2 warehouse reports, got %d", len(got))
	}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	got := Filter{From: "2024-01-05", To: "2024-01-05"}.Apply(ds.Reports)
	// 001 is on the boundary day; 003 has an unparsable date and must never
	// be excluded by date bounds.
	if len(got) != 2 {
		t.Fatalf("expected 001 and 003, got %d", len(got))
	}
	if got[0].ReportNumber != "001" || got[1].ReportNumber != "003" {
		t.Fatalf("unexpected reports: %s %s", got[0].ReportNumber, got[1].ReportNumber)
	}
}

func TestFilterCombinedAND(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	got := Filter{Type: "incident", Location: "plant"}.Apply(ds.Reports)
	if len(got) != 1 || got[0].ReportNumber != "002" {
		t.Fatalf("expected 002, got %v", got)
	}
}

func TestFilterToBoundCoversWholeDay(t *testing.T) {
	lastMoment := time.Date(2024, 1, 5, 23, 59, 59, int(999*time.Millisecond), time.Local)
	nextDay := time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local)
	in := []Report{
		{ReportNumber: "A", EventAt: &lastMoment},
		{ReportNumber: "B", EventAt: &nextDay},
	}
	got := Filter{To: "2024-01-05"}.Apply(in)
	if len(got) != 1 || got[0].ReportNumber != "A" {
		t.Fatalf("to bound must include 23:59:59.999 and exclude the next day: %v", got)
	}
}

func TestSortByEventDateDesc(t *testing.T) {
	ds := mapCSV(t, sampleCSV)
	sorted := append([]Report(nil), ds.Reports...)
	SortByEventDateDesc(sorted)
	if sorted[0].ReportNumber != "002" {
		t.Fatalf("newest first expected 002, got %s", sorted[0].ReportNumber)
	}
}

func TestMapDocumentHeaderSpellings(t *testing.T) {
	ds := mapCSV(t, "Report Number,Event Date,Event Type\nRN-9,2024-03-01,Incident\n")
	r := ds.Reports[0]
	if r.ReportNumber != "RN-9" || r.EventType != "Incident" {
		t.Fatalf("header spellings not mapped: %+v", r)
	}
	if r.EventAt == nil {
		t.Fatalf("event date should parse")
	}
}

func TestMapDocumentUnknownHeaderFallback(t *testing.T) {
	ds := mapCSV(t, "reportNumber,severity\n010,High\n")
	if ds.Reports[0].Severity != "High" {
		t.Fatalf("raw key fallback failed: %+v", ds.Reports[0])
	}
}
