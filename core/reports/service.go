package reports

import (
	"context"
	"sync"
	"time"

	"kestrel-sir/core/feed"
	"kestrel-sir/core/store"
	"kestrel-sir/core/utils"
)

// Fetcher is what the service needs from the feed client.
type Fetcher interface {
	Fetch(ctx context.Context) (*feed.Document, error)
}

// Service owns the current feed snapshot. The browser original re-fetched on
// every page load; here a short-lived cache plays that role so concurrent
// dashboard requests do not hammer the published sheet.
type Service struct {
	fetcher Fetcher
	ttl     time.Duration
	audits  store.AuditStore
	logger  *utils.Logger

	mu     sync.RWMutex
	cached *Dataset
}

func NewService(fetcher Fetcher, ttl time.Duration, audits store.AuditStore, logger *utils.Logger) *Service {
	return &Service{fetcher: fetcher, ttl: ttl, audits: audits, logger: logger}
}

// Dataset returns the cached snapshot when fresh, fetching otherwise.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil && s.ttl > 0 && time.Since(cached.FetchedAt) < s.ttl {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches and maps the feed unconditionally.
func (s *Service) Refresh(ctx context.Context) (*Dataset, error) {
	doc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	ds := MapDocument(doc, time.Now())
	s.mu.Lock()
	s.cached = ds
	s.mu.Unlock()
	s.audit(ctx, "feed.refresh", "")
	return ds, nil
}

// FindByReportNumber scans the snapshot for the first row matching the
// requested identifier. Report numbers are not validated for uniqueness by
// the sheet, so first match wins.
func (s *Service) FindByReportNumber(ctx context.Context, reportNumber string) (*Report, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ds.Reports {
		if reportNumberOf(ds.Reports[i].Raw) == reportNumber {
			return &ds.Reports[i], nil
		}
	}
	return nil, nil
}

func (s *Service) audit(ctx context.Context, action, details string) {
	if s.audits == nil {
		return
	}
	rec := &store.AuditRecord{Username: "gateway", Action: action, Details: details}
	if err := s.audits.Add(ctx, rec); err != nil {
		s.logger.Errorf("audit %s: %v", action, err)
	}
}
