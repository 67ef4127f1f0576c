package store

import (
	"context"
	"database/sql"
)

// execer lets appendAudit run inside a transaction or directly on the
// connection (Restore writes its entry after reopening, outside any
// transaction).
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// appendAudit writes one advisory history row. Callers inside a
// transaction pass the tx, so the entry commits or rolls back together
// with the mutation it describes.
func (s *Store) appendAudit(ctx context.Context, ex execer, op, detail string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO audit_log (id, op, detail)
		VALUES (?, ?, ?)
	`, s.ids.Generate(), op, detail)
	return err
}

// AuditLog returns the newest audit entries first. limit caps the
// result; limit <= 0 returns everything. Entry ids are UUIDv7, so id
// order is creation order.
func (s *Store) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "audit log"

	query := "SELECT id, op, detail, created_at FROM audit_log ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.sqlFail(op, err)
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		var created sql.NullTime
		if err := rows.Scan(&e.ID, &e.Op, &e.Detail, &created); err != nil {
			return nil, s.sqlFail(op, err)
		}
		e.CreatedAt = created.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqlFail(op, err)
	}
	return entries, nil
}
