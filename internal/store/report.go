package store

import (
	"context"
	"database/sql"
	"strings"
)

// ReportFilter narrows AttendanceReport. Zero-value fields impose no
// constraint; set fields combine with AND. Dates are inclusive
// YYYY-MM-DD day keys.
type ReportFilter struct {
	StartDate string
	EndDate   string
	StudentID string
	CourseID  string
}

// AttendanceReport returns attendance rows joined with their student
// and, when present, their course, newest check-in first. Rows without
// a course keep an empty course name rather than dropping out of the
// join. No matches yields an empty slice, never an error.
func (s *Store) AttendanceReport(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "attendance report"

	query := `
		SELECT a.time_in, a.student_id, s.name, a.date, a.verification_method, c.course_name
		FROM attendance a
		JOIN students s ON a.student_id = s.student_id
		LEFT JOIN courses c ON a.course_id = c.course_id
	`
	var conds []string
	var args []any
	if f.StartDate != "" {
		conds = append(conds, "a.date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "a.date <= ?")
		args = append(args, f.EndDate)
	}
	if f.StudentID != "" {
		conds = append(conds, "a.student_id = ?")
		args = append(args, f.StudentID)
	}
	if f.CourseID != "" {
		conds = append(conds, "a.course_id = ?")
		args = append(args, f.CourseID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.time_in DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.sqlFail(op, err)
	}
	defer rows.Close()

	report := []ReportRow{}
	for rows.Next() {
		var r ReportRow
		var timeIn sql.NullTime
		var course sql.NullString
		if err := rows.Scan(&timeIn, &r.StudentID, &r.Name, &r.Date, &r.Method, &course); err != nil {
			return nil, s.sqlFail(op, err)
		}
		r.TimeIn = timeIn.Time
		r.CourseName = course.String
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.sqlFail(op, err)
	}
	return report, nil
}

// StudentStatistics aggregates one student's history: lifetime count,
// rolling 30-day count, and per-method counts. The three aggregates
// come from independent queries under one hold of the guard. An
// unknown student yields zero counts, not an error.
func (s *Store) StudentStatistics(ctx context.Context, studentID string) (Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "student statistics"

	stats := Statistics{MethodCounts: map[string]int{}}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance WHERE student_id = ?
	`, studentID).Scan(&stats.TotalAttendance)
	if err != nil {
		return Statistics{}, s.sqlFail(op, err)
	}

	cutoff := s.clock.Now().AddDate(0, 0, -30).Format(dayFormat)
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance WHERE student_id = ? AND date >= ?
	`, studentID, cutoff).Scan(&stats.RecentAttendance)
	if err != nil {
		return Statistics{}, s.sqlFail(op, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT verification_method, COUNT(*)
		FROM attendance
		WHERE student_id = ?
		GROUP BY verification_method
	`, studentID)
	if err != nil {
		return Statistics{}, s.sqlFail(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return Statistics{}, s.sqlFail(op, err)
		}
		stats.MethodCounts[method] = count
	}
	if err := rows.Err(); err != nil {
		return Statistics{}, s.sqlFail(op, err)
	}
	return stats, nil
}
