package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kestrel-sir/config"
	"kestrel-sir/core/forms"
	"kestrel-sir/core/reports"
	"kestrel-sir/core/store"
	"kestrel-sir/core/submit"
	"kestrel-sir/core/utils"
)

// SubmitSender is what the handler needs from the submission client.
type SubmitSender interface {
	Send(ctx context.Context, payload map[string]string) error
}

type FormHandler struct {
	cfg    *config.AppConfig
	svc    *reports.Service
	drafts store.DraftsStore
	sender SubmitSender
	audits store.AuditStore
	logger *utils.Logger
	schema forms.Schema
}

func NewFormHandler(cfg *config.AppConfig, svc *reports.Service, drafts store.DraftsStore, sender SubmitSender, audits store.AuditStore, logger *utils.Logger) *FormHandler {
	return &FormHandler{cfg: cfg, svc: svc, drafts: drafts, sender: sender, audits: audits, logger: logger, schema: forms.Default()}
}

type formLabels struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Submit   string `json:"submit"`
}

type formInitResponse struct {
	Mode         string            `json:"mode"`
	ReportNumber string            `json:"reportNumber,omitempty"`
	DraftKey     string            `json:"draftKey"`
	Labels       formLabels        `json:"labels"`
	Schema       forms.Schema      `json:"schema"`
	Values       map[string]string `json:"values"`
	Warning      string            `json:"warning,omitempty"`
}

func (h *FormHandler) draftKey(reportNumber string) string {
	prefix := h.cfg.Form.DraftKeyPrefix
	if reportNumber == "" {
		return prefix + "-new"
	}
	return prefix + "-" + reportNumber
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// Init resolves the form's initial state. Mode is decided once per request:
// a reportNumber query parameter selects edit mode, anything else is a new
// report.
func (h *FormHandler) Init(w http.ResponseWriter, r *http.Request) {
	reportNumber := strings.TrimSpace(r.URL.Query().Get("reportNumber"))
	if reportNumber == "" {
		h.initNew(w, r)
		return
	}
	h.initEdit(w, r, reportNumber)
}

func (h *FormHandler) initNew(w http.ResponseWriter, r *http.Request) {
	key := h.draftKey("")
	values := map[string]string{}
	if draft, err := h.drafts.GetDraft(r.Context(), key); err != nil {
		h.logger.Errorf("form init draft %s: %v", key, err)
	} else if draft != nil {
		values = h.schema.Populate(values, draft.Fields)
	}
	if values["eventDate"] == "" {
		values["eventDate"] = today()
	}
	writeJSON(w, http.StatusOK, formInitResponse{
		Mode:     "create",
		DraftKey: key,
		Labels: formLabels{
			Title:    "Report a Safety Incident",
			Subtitle: "Submit a new incident or near-miss report",
			Submit:   "Submit Report",
		},
		Schema: h.schema,
		Values: values,
	})
}

func (h *FormHandler) initEdit(w http.ResponseWriter, r *http.Request, reportNumber string) {
	key := h.draftKey(reportNumber)
	resp := formInitResponse{
		Mode:         "update",
		ReportNumber: reportNumber,
		DraftKey:     key,
		Labels: formLabels{
			Title:    "Edit Safety Incident Report",
			Subtitle: "Editing report " + reportNumber,
			Submit:   "Update Report",
		},
		Schema: h.schema,
		Values: map[string]string{},
	}
	rep, err := h.svc.FindByReportNumber(r.Context(), reportNumber)
	if err == nil && rep != nil {
		resp.Values = h.schema.Populate(resp.Values, recordValues(rep))
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		h.logger.Errorf("form init lookup %s: %v", reportNumber, err)
		resp.Warning = "Could not load the report from the sheet. Restored your saved draft instead."
	} else {
		resp.Warning = "Report " + reportNumber + " was not found in the sheet. Restored your saved draft instead."
	}
	draft, derr := h.drafts.GetDraft(r.Context(), key)
	if derr != nil {
		h.logger.Errorf("form init draft %s: %v", key, derr)
	}
	if draft != nil {
		resp.Values = h.schema.Populate(resp.Values, draft.Fields)
	} else {
		resp.Warning = "Report " + reportNumber + " could not be loaded and no saved draft exists."
	}
	writeJSON(w, http.StatusOK, resp)
}

// recordValues flattens a matched sheet row into form field values: the
// mapped core fields first, then any raw column whose header matches a form
// field name directly.
func recordValues(rep *reports.Report) map[string]string {
	values := map[string]string{
		"reportNumber": rep.ReportNumber,
		"eventDate":    rep.EventDate,
		"eventType":    rep.EventType,
		"location":     rep.Location,
		"project":      rep.Project,
		"severity":     rep.Severity,
		"status":       rep.Status,
	}
	for k, v := range rep.Raw {
		if v == "" {
			continue
		}
		if _, known := values[k]; known && values[k] != "" {
			continue
		}
		values[k] = v
	}
	return values
}

type draftPayload struct {
	ReportNumber string            `json:"reportNumber"`
	Fields       map[string]string `json:"fields"`
}

// ListDrafts returns every stored draft, most recently updated first.
func (h *FormHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	items, err := h.drafts.ListDrafts(r.Context())
	if err != nil {
		h.logger.Errorf("drafts list: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []store.Draft{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *FormHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(urlParam(r, "key"))
	draft, err := h.drafts.GetDraft(r.Context(), key)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if draft == nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// SaveDraft upserts the draft for its key. Drafts hold field values only,
// never submission metadata.
func (h *FormHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(urlParam(r, "key"))
	if !strings.HasPrefix(key, h.cfg.Form.DraftKeyPrefix) {
		http.Error(w, "invalid draft key", http.StatusBadRequest)
		return
	}
	var payload draftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	draft := &store.Draft{
		Key:          key,
		ReportNumber: strings.TrimSpace(payload.ReportNumber),
		Fields:       payload.Fields,
	}
	if err := h.drafts.SaveDraft(r.Context(), draft); err != nil {
		h.logger.Errorf("draft save %s: %v", key, err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), "draft.save", key)
	writeJSON(w, http.StatusOK, draft)
}

func (h *FormHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(urlParam(r, "key"))
	if !strings.HasPrefix(key, h.cfg.Form.DraftKeyPrefix) {
		http.Error(w, "invalid draft key", http.StatusBadRequest)
		return
	}
	if err := h.drafts.DeleteDraft(r.Context(), key); err != nil {
		h.logger.Errorf("draft clear %s: %v", key, err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.audit(r.Context(), "draft.clear", key)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type submissionPayload struct {
	ReportNumber string            `json:"reportNumber"`
	Fields       map[string]string `json:"fields"`
}

// Submit forwards the report as JSON to the remote endpoint. On failure the
// draft stays put so nothing the user typed is lost; on success the draft is
// cleared and, for new reports, fresh values re-seed today's date.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload submissionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	reportNumber := strings.TrimSpace(payload.ReportNumber)
	body := submit.BuildPayload(payload.Fields, reportNumber, time.Now())
	if err := h.sender.Send(r.Context(), body); err != nil {
		h.logger.Errorf("submit %s: %v", body["mode"], err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "Submission failed. Please try again or contact the administrator.",
		})
		return
	}
	key := h.draftKey(reportNumber)
	if err := h.drafts.DeleteDraft(r.Context(), key); err != nil {
		h.logger.Errorf("draft clear after submit %s: %v", key, err)
	}
	h.audit(r.Context(), "submission."+body["mode"], reportNumber)
	resp := map[string]any{
		"status":      "ok",
		"mode":        body["mode"],
		"submittedAt": body["submittedAt"],
	}
	if body["mode"] == "create" {
		resp["values"] = map[string]string{"eventDate": today()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FormHandler) audit(ctx context.Context, action, details string) {
	if h.audits == nil {
		return
	}
	rec := &store.AuditRecord{Username: "gateway", Action: action, Details: details}
	if err := h.audits.Add(ctx, rec); err != nil {
		h.logger.Errorf("audit %s: %v", action, err)
	}
}
