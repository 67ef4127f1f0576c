package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RecordAttendance runs the per-day check-in/check-out toggle for one
// student as a single transaction under the guard.
//
// The first call of a calendar day inserts the attendance row, and the
// matching course_attendance row when courseID is non-empty, with
// time_in stamped now: OutcomeCreated. Any later call the same day
// stamps time_out on the existing rows instead: OutcomeToggled, which
// callers read as "already recorded today". Storage faults yield
// OutcomeFailed with the typed error.
//
// The store keeps only the advisory student reference; callers that
// want existence checks do them first with GetStudent.
func (s *Store) RecordAttendance(ctx context.Context, studentID, method, courseID string) (RecordOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "record attendance"

	now := s.clock.Now()
	day := now.Format(dayFormat)
	stamp := now.Format(stampFormat)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OutcomeFailed, s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM attendance
		WHERE student_id = ? AND date = ?
	`, studentID, day).Scan(&existing)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := s.checkIn(ctx, tx, studentID, method, courseID, day, stamp); err != nil {
			return OutcomeFailed, s.sqlFail(op, err)
		}
		if err := tx.Commit(); err != nil {
			return OutcomeFailed, s.sqlFail(op, err)
		}
		return OutcomeCreated, nil

	case err != nil:
		return OutcomeFailed, s.sqlFail(op, err)

	default:
		if err := s.checkOut(ctx, tx, existing, studentID, courseID, day, stamp); err != nil {
			return OutcomeFailed, s.sqlFail(op, err)
		}
		if err := tx.Commit(); err != nil {
			return OutcomeFailed, s.sqlFail(op, err)
		}
		return OutcomeToggled, nil
	}
}

// checkIn inserts the day's attendance row, plus the course mirror
// when a course was supplied.
func (s *Store) checkIn(ctx context.Context, tx *sql.Tx, studentID, method, courseID, day, stamp string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO attendance (student_id, date, time_in, verification_method, course_id)
		VALUES (?, ?, ?, ?, ?)
	`, studentID, day, stamp, method, nullString(courseID))
	if err != nil {
		return err
	}

	if courseID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO course_attendance (student_id, course_id, date, time_in, verification_method)
			VALUES (?, ?, ?, ?, ?)
		`, studentID, courseID, day, stamp, method)
		if err != nil {
			return err
		}
	}

	return s.appendAudit(ctx, tx, "attendance.check_in",
		fmt.Sprintf("student=%s method=%s course=%s", studentID, method, courseID))
}

// checkOut stamps time_out on the existing rows. The course update
// matches zero rows when today's check-in carried a different course
// or none; the mismatch stays a silent no-op and no row is created.
func (s *Store) checkOut(ctx context.Context, tx *sql.Tx, id int64, studentID, courseID, day, stamp string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE attendance SET time_out = ? WHERE id = ?
	`, stamp, id)
	if err != nil {
		return err
	}

	if courseID != "" {
		_, err = tx.ExecContext(ctx, `
			UPDATE course_attendance SET time_out = ?
			WHERE student_id = ? AND course_id = ? AND date = ?
		`, stamp, studentID, courseID, day)
		if err != nil {
			return err
		}
	}

	return s.appendAudit(ctx, tx, "attendance.check_out",
		fmt.Sprintf("student=%s course=%s", studentID, courseID))
}

// AttendanceFor returns the student's attendance row for one calendar
// day (YYYY-MM-DD), or nil when none exists.
func (s *Store) AttendanceFor(ctx context.Context, studentID, day string) (*AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, student_id, date, time_in, time_out, verification_method, course_id, created_at
		FROM attendance
		WHERE student_id = ? AND date = ?
	`, studentID, day)

	var rec AttendanceRecord
	var timeIn, timeOut, created sql.NullTime
	var course sql.NullString

	err := row.Scan(&rec.ID, &rec.StudentID, &rec.Date, &timeIn, &timeOut, &rec.Method, &course, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.sqlFail("get attendance", err)
	}

	rec.TimeIn = timeIn.Time
	if timeOut.Valid {
		t := timeOut.Time
		rec.TimeOut = &t
	}
	rec.CourseID = course.String
	rec.CreatedAt = created.Time
	return &rec, nil
}
