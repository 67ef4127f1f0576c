package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// AddCourse inserts a new course. The course name is NFC-normalized
// like student names. Inserting an id that already exists fails with a
// DUPLICATE_KEY error and leaves the existing row unchanged.
func (s *Store) AddCourse(ctx context.Context, c Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "add course"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO courses (course_id, course_name, instructor, schedule)
		VALUES (?, ?, ?, ?)
	`, c.ID, norm.NFC.String(c.Name), nullString(c.Instructor), nullString(c.Schedule))
	if err != nil {
		return s.sqlFail(op, err)
	}

	if err := s.appendAudit(ctx, tx, "course.add", fmt.Sprintf("course=%s", c.ID)); err != nil {
		return s.sqlFail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

// GetCourse returns the course with the given id, or nil when no such
// course exists. A miss is not an error.
func (s *Store) GetCourse(ctx context.Context, id string) (*Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT course_id, course_name, instructor, schedule, created_at
		FROM courses
		WHERE course_id = ?
	`, id)

	c, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.sqlFail("get course", err)
	}
	return &c, nil
}

// Courses returns every course ordered by name. An empty table yields
// an empty slice, not nil.
func (s *Store) Courses(ctx context.Context) ([]Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "list courses"

	rows, err := s.db.QueryContext(ctx, `
		SELECT course_id, course_name, instructor, schedule, created_at
		FROM courses
		ORDER BY course_name
	`)
	if err != nil {
		return nil, s.sqlFail(op, err)
	}
	defer rows.Close()

	courses := []Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, s.sqlFail(op, err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqlFail(op, err)
	}
	return courses, nil
}

// DeleteCourse removes the course as one transaction: its
// course-attendance rows are deleted, attendance rows that point at it
// keep their history with the course reference nulled, and the course
// row itself goes last. Deleting an unknown id is a no-op success.
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "delete course"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range []string{
		"DELETE FROM course_attendance WHERE course_id = ?",
		"UPDATE attendance SET course_id = NULL WHERE course_id = ?",
		"DELETE FROM courses WHERE course_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return s.sqlFail(op, err)
		}
	}

	if err := s.appendAudit(ctx, tx, "course.delete", fmt.Sprintf("course=%s", id)); err != nil {
		return s.sqlFail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

func scanCourse(sc scanner) (Course, error) {
	var c Course
	var instructor, schedule sql.NullString
	var created sql.NullTime

	if err := sc.Scan(&c.ID, &c.Name, &instructor, &schedule, &created); err != nil {
		return Course{}, err
	}

	c.Instructor = instructor.String
	c.Schedule = schedule.String
	c.CreatedAt = created.Time
	return c, nil
}
