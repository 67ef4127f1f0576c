package store

import (
	"fmt"
	"time"
)

// Student is one enrolled student. The id is caller-assigned and the
// store treats it as an opaque unique key; format rules belong to the
// input layer.
type Student struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Department string
	CreatedAt  time.Time
}

// Course is one course offering.
type Course struct {
	ID         string
	Name       string
	Instructor string
	Schedule   string
	CreatedAt  time.Time
}

// AttendanceRecord is one student's presence on one calendar day.
// TimeIn is written once at check-in; TimeOut stays nil until the
// check-out toggle fills it.
type AttendanceRecord struct {
	ID        int64
	StudentID string
	Date      time.Time
	TimeIn    time.Time
	TimeOut   *time.Time
	Method    string
	CourseID  string // empty when the check-in carried no course
	CreatedAt time.Time
}

// ReportRow is the denormalized report view: an attendance row joined
// with its student (required) and course (optional).
type ReportRow struct {
	TimeIn     time.Time
	StudentID  string
	Name       string
	Date       time.Time
	Method     string
	CourseName string // empty when the attendance row has no course
}

// Statistics aggregates one student's attendance history.
type Statistics struct {
	TotalAttendance  int
	RecentAttendance int            // rolling 30-day window ending today
	MethodCounts     map[string]int // verification method -> count
}

// AuditEntry is one row of the advisory operation history.
type AuditEntry struct {
	ID        string
	Op        string
	Detail    string
	CreatedAt time.Time
}

// RecordOutcome reports what RecordAttendance did.
type RecordOutcome int

const (
	// OutcomeFailed means the operation hit a storage fault and changed
	// nothing.
	OutcomeFailed RecordOutcome = iota
	// OutcomeCreated means a new attendance row was inserted: the
	// student's first record of the day.
	OutcomeCreated
	// OutcomeToggled means an existing row had its time_out stamped:
	// the student was already recorded today.
	OutcomeToggled
)

func (o RecordOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeToggled:
		return "toggled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("RecordOutcome(%d)", int(o))
	}
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}
