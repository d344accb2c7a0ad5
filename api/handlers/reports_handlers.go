package handlers

import (
	"net/http"
	"strings"
	"time"

	"kestrel-sir/config"
	"kestrel-sir/core/feed"
	"kestrel-sir/core/reports"
	"kestrel-sir/core/store"
	"kestrel-sir/core/utils"
)

type ReportsHandler struct {
	cfg    *config.AppConfig
	svc    *reports.Service
	audits store.AuditStore
	logger *utils.Logger
}

func NewReportsHandler(cfg *config.AppConfig, svc *reports.Service, audits store.AuditStore, logger *utils.Logger) *ReportsHandler {
	return &ReportsHandler{cfg: cfg, svc: svc, audits: audits, logger: logger}
}

func filterFromQuery(r *http.Request) reports.Filter {
	q := r.URL.Query()
	return reports.Filter{
		From:     strings.TrimSpace(q.Get("from")),
		To:       strings.TrimSpace(q.Get("to")),
		Location: strings.TrimSpace(q.Get("location")),
		Type:     strings.TrimSpace(q.Get("type")),
		Severity: strings.TrimSpace(q.Get("severity")),
		Status:   strings.TrimSpace(q.Get("status")),
	}
}

// List serves the dashboard dataset: filtered rows sorted newest first plus
// the summary counters. Counters are computed over the full snapshot, not
// the filtered subset, matching the dashboard cards.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Dataset(r.Context())
	if err != nil {
		h.logger.Errorf("reports list: %v", err)
		http.Error(w, "feed unavailable", http.StatusBadGateway)
		return
	}
	filter := filterFromQuery(r)
	filtered := filter.Apply(ds.Reports)
	reports.SortByEventDateDesc(filtered)
	rows := reports.BuildRows(filtered, h.cfg.Dashboard.FormPath, h.cfg.Dashboard.ViewPath)
	writeJSON(w, http.StatusOK, map[string]any{
		"items":     rows,
		"total":     len(ds.Reports),
		"stats":     reports.ComputeStats(ds.Reports, time.Now()),
		"filter":    filter,
		"fetchedAt": ds.FetchedAt.UTC().Format(time.RFC3339),
	})
}

// Get returns the first report matching the report number. First match wins;
// the sheet does not guarantee uniqueness.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	reportNumber := strings.TrimSpace(urlParam(r, "reportNumber"))
	if reportNumber == "" {
		http.Error(w, "report number required", http.StatusBadRequest)
		return
	}
	rep, err := h.svc.FindByReportNumber(r.Context(), reportNumber)
	if err != nil {
		h.logger.Errorf("reports get %s: %v", reportNumber, err)
		http.Error(w, "feed unavailable", http.StatusBadGateway)
		return
	}
	if rep == nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// Export downloads the filtered set as CSV, or the full set when the filter
// matches nothing, under the configured fixed filename.
func (h *ReportsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Dataset(r.Context())
	if err != nil {
		h.logger.Errorf("reports export: %v", err)
		http.Error(w, "feed unavailable", http.StatusBadGateway)
		return
	}
	filter := filterFromQuery(r)
	selected := filter.Apply(ds.Reports)
	if len(selected) == 0 {
		selected = ds.Reports
	}
	records := make([]feed.Record, 0, len(selected))
	for _, rep := range selected {
		records = append(records, rep.Raw)
	}
	body := feed.WriteDocument(ds.Headers, records)
	h.audit(r, "reports.export", filter)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+h.cfg.Dashboard.ExportFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (h *ReportsHandler) audit(r *http.Request, action string, filter reports.Filter) {
	if h.audits == nil {
		return
	}
	details := ""
	if !filter.Empty() {
		details = "filtered"
	}
	rec := &store.AuditRecord{Username: "gateway", Action: action, Details: details}
	if err := h.audits.Add(r.Context(), rec); err != nil {
		h.logger.Errorf("audit %s: %v", action, err)
	}
}
