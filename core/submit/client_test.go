package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kestrel-sir/config"
	"kestrel-sir/core/utils"
)

func TestBuildPayloadCreate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	p := BuildPayload(map[string]string{"eventType": "Incident"}, "", now)
	if p["mode"] != "create" {
		t.Fatalf("mode: %q", p["mode"])
	}
	if p["status"] != "Open" {
		t.Fatalf("blank status must default to Open, got %q", p["status"])
	}
	if p["submittedAt"] != "2024-03-15T12:30:00Z" {
		t.Fatalf("submittedAt: %q", p["submittedAt"])
	}
	if _, ok := p["reportNumber"]; ok {
		t.Fatalf("create mode must not stamp a report number")
	}
}

func TestBuildPayloadUpdate(t *testing.T) {
	p := BuildPayload(map[string]string{"status": "Closed"}, " 007 ", time.Now())
	if p["mode"] != "update" || p["reportNumber"] != "007" {
		t.Fatalf("update stamping wrong: %v", p)
	}
	if p["status"] != "Closed" {
		t.Fatalf("explicit status overwritten: %q", p["status"])
	}
}

func TestBuildPayloadDoesNotMutateInput(t *testing.T) {
	in := map[string]string{"eventType": "Incident"}
	BuildPayload(in, "007", time.Now())
	if len(in) != 1 {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestClientSendSuccess(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(config.SubmitConfig{URL: srv.URL, TimeoutSec: 5}, utils.NewLogger())
	err := c.Send(context.Background(), map[string]string{"mode": "create", "status": "Open"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["status"] != "Open" {
		t.Fatalf("payload not delivered as json: %v", got)
	}
}

func TestClientSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(config.SubmitConfig{URL: srv.URL, TimeoutSec: 5}, utils.NewLogger())
	err := c.Send(context.Background(), map[string]string{"mode": "create"})
	if !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
}

func TestClientSendNoURL(t *testing.T) {
	c := NewClient(config.SubmitConfig{}, utils.NewLogger())
	if err := c.Send(context.Background(), nil); !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
}
