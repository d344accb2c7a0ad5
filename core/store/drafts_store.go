package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kestrel-sir/core/utils"
)

// Draft is a locally persisted, unsubmitted copy of form field values. It
// replaces the browser local-storage entry of the original pages; the key is
// the fixed prefix plus "-new" or "-<reportNumber>".
type Draft struct {
	Key          string            `json:"key"`
	ReportNumber string            `json:"reportNumber,omitempty"`
	Fields       map[string]string `json:"fields"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type DraftsStore interface {
	SaveDraft(ctx context.Context, d *Draft) error
	GetDraft(ctx context.Context, key string) (*Draft, error)
	DeleteDraft(ctx context.Context, key string) error
	ListDrafts(ctx context.Context) ([]Draft, error)
}

type draftsStore struct {
	db     *sql.DB
	driver string
}

func NewDraftsStore(db *sql.DB, driver string) DraftsStore {
	return &draftsStore{db: db, driver: driver}
}

// SaveDraft upserts; last write wins, matching the original's unguarded
// local-storage semantics.
func (s *draftsStore) SaveDraft(ctx context.Context, d *Draft) error {
	key := strings.TrimSpace(d.Key)
	if key == "" {
		return errors.New("draft key required")
	}
	if d.Fields == nil {
		d.Fields = map[string]string{}
	}
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}
	now := utils.NowUTC()
	_, err = s.db.ExecContext(ctx, rebind(s.driver, `
		INSERT INTO drafts(draft_key, report_number, fields_json, created_at, updated_at)
		VALUES(?,?,?,?,?)
		ON CONFLICT(draft_key) DO UPDATE SET report_number=excluded.report_number, fields_json=excluded.fields_json, updated_at=excluded.updated_at`),
		key, strings.TrimSpace(d.ReportNumber), string(raw), now, now)
	if err != nil {
		return err
	}
	d.Key = key
	d.UpdatedAt = now
	return nil
}

func (s *draftsStore) GetDraft(ctx context.Context, key string) (*Draft, error) {
	row := s.db.QueryRowContext(ctx, rebind(s.driver, `
		SELECT draft_key, report_number, fields_json, created_at, updated_at
		FROM drafts WHERE draft_key=?`), strings.TrimSpace(key))
	d, err := scanDraft(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (s *draftsStore) DeleteDraft(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, rebind(s.driver, `DELETE FROM drafts WHERE draft_key=?`), strings.TrimSpace(key))
	return err
}

func (s *draftsStore) ListDrafts(ctx context.Context) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT draft_key, report_number, fields_json, created_at, updated_at
		FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Draft
	for rows.Next() {
		d, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, *d)
	}
	return res, rows.Err()
}

func scanDraft(scan func(...any) error) (*Draft, error) {
	var d Draft
	var fieldsJSON string
	if err := scan(&d.Key, &d.ReportNumber, &fieldsJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &d.Fields); err != nil {
		d.Fields = map[string]string{}
	}
	return &d, nil
}
