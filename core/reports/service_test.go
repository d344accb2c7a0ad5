package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"kestrel-sir/core/feed"
)

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context) (*feed.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return feed.ParseDocument(f.text), nil
}

func TestServiceDatasetCaches(t *testing.T) {
	f := &stubFetcher{text: sampleCSV}
	svc := NewService(f, time.Minute, nil, nil)

	ctx := context.Background()
	if _, err := svc.Dataset(ctx); err != nil {
		t.Fatalf("first dataset: %v", err)
	}
	if _, err := svc.Dataset(ctx); err != nil {
		t.Fatalf("second dataset: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("expected single upstream fetch within ttl, got %d", f.calls)
	}
}

func TestServiceZeroTTLAlwaysFetches(t *testing.T) {
	f := &stubFetcher{text: sampleCSV}
	svc := NewService(f, 0, nil, nil)

	ctx := context.Background()
	svc.Dataset(ctx)
	svc.Dataset(ctx)
	if f.calls != 2 {
		t.Fatalf("ttl 0 must bypass the cache, got %d fetches", f.calls)
	}
}

func TestServiceRefreshPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	svc := NewService(&stubFetcher{err: wantErr}, time.Minute, nil, nil)
	if _, err := svc.Refresh(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestServiceFindByReportNumber(t *testing.T) {
	text := "Report Number,eventType\n007,Incident\n007,Near Miss\n008,Incident\n"
	svc := NewService(&stubFetcher{text: text}, time.Minute, nil, nil)

	rep, err := svc.FindByReportNumber(context.Background(), "007")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rep == nil || rep.EventType != "Incident" {
		t.Fatalf("first match must win, got %+v", rep)
	}

	miss, err := svc.FindByReportNumber(context.Background(), "999")
	if err != nil {
		t.Fatalf("find miss: %v", err)
	}
	if miss != nil {
		t.Fatalf("expected nil for unknown report, got %+v", miss)
	}
}
