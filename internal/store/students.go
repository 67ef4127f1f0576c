package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// AddStudent inserts a new student. The name is NFC-normalized so name
// ordering and display are stable across input sources. Inserting an
// id that already exists fails with a DUPLICATE_KEY error and leaves
// the existing row unchanged.
func (s *Store) AddStudent(ctx context.Context, st Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "add student"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO students (student_id, name, email, phone, department)
		VALUES (?, ?, ?, ?, ?)
	`, st.ID, norm.NFC.String(st.Name), nullString(st.Email), nullString(st.Phone), nullString(st.Department))
	if err != nil {
		return s.sqlFail(op, err)
	}

	if err := s.appendAudit(ctx, tx, "student.add", fmt.Sprintf("student=%s", st.ID)); err != nil {
		return s.sqlFail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

// GetStudent returns the student with the given id, or nil when no
// such student exists. A miss is not an error.
func (s *Store) GetStudent(ctx context.Context, id string) (*Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT student_id, name, email, phone, department, created_at
		FROM students
		WHERE student_id = ?
	`, id)

	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.sqlFail("get student", err)
	}
	return &st, nil
}

// Students returns every student ordered by name. An empty table
// yields an empty slice, not nil.
func (s *Store) Students(ctx context.Context) ([]Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "list students"

	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, name, email, phone, department, created_at
		FROM students
		ORDER BY name
	`)
	if err != nil {
		return nil, s.sqlFail(op, err)
	}
	defer rows.Close()

	students := []Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, s.sqlFail(op, err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqlFail(op, err)
	}
	return students, nil
}

// DeleteStudent removes the student together with every attendance and
// course-attendance row that references it, as one transaction.
// Deleting an unknown id is a no-op success.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "delete student"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range []string{
		"DELETE FROM course_attendance WHERE student_id = ?",
		"DELETE FROM attendance WHERE student_id = ?",
		"DELETE FROM students WHERE student_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return s.sqlFail(op, err)
		}
	}

	if err := s.appendAudit(ctx, tx, "student.delete", fmt.Sprintf("student=%s", id)); err != nil {
		return s.sqlFail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

func scanStudent(sc scanner) (Student, error) {
	var st Student
	var email, phone, dept sql.NullString
	var created sql.NullTime

	if err := sc.Scan(&st.ID, &st.Name, &email, &phone, &dept, &created); err != nil {
		return Student{}, err
	}

	st.Email = email.String
	st.Phone = phone.String
	st.Department = dept.String
	st.CreatedAt = created.Time
	return st, nil
}
