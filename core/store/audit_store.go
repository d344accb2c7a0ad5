package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"kestrel-sir/core/utils"
)

type AuditRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditFilter struct {
	Action string
	Limit  int
}

type AuditStore interface {
	Add(ctx context.Context, rec *AuditRecord) error
	List(ctx context.Context, filter AuditFilter) ([]AuditRecord, error)
}

type auditStore struct {
	db     *sql.DB
	driver string
}

func NewAuditStore(db *sql.DB, driver string) AuditStore {
	return &auditStore{db: db, driver: driver}
}

func (s *auditStore) Add(ctx context.Context, rec *AuditRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV4()).String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = utils.NowUTC()
	}
	_, err := s.db.ExecContext(ctx, rebind(s.driver, `
		INSERT INTO audit_log(id, username, action, details, created_at) VALUES(?,?,?,?,?)`),
		rec.ID, rec.Username, rec.Action, rec.Details, rec.CreatedAt)
	return err
}

func (s *auditStore) List(ctx context.Context, filter AuditFilter) ([]AuditRecord, error) {
	var clauses []string
	var args []any
	if a := strings.TrimSpace(filter.Action); a != "" {
		clauses = append(clauses, "action=?")
		args = append(args, a)
	}
	query := `SELECT id, username, action, details, created_at FROM audit_log`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	rows, err := s.db.QueryContext(ctx, rebind(s.driver, query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var details sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Action, &details, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Details = details.String
		res = append(res, rec)
	}
	return res, rows.Err()
}
