package store

import (
	"context"
	"testing"
)

func TestAddCourse_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	err := s.AddCourse(ctx, Course{
		ID:         "CS101",
		Name:       "Introduction to Computer Science",
		Instructor: "Dr. Smith",
		Schedule:   "Mon/Wed 9:00-10:30",
	})
	if err != nil {
		t.Fatalf("AddCourse() failed: %v", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("len(courses) = %d, want 1", len(courses))
	}

	c := courses[0]
	if c.ID != "CS101" {
		t.Errorf("id = %q, want %q", c.ID, "CS101")
	}
	if c.Name != "Introduction to Computer Science" {
		t.Errorf("name = %q, want %q", c.Name, "Introduction to Computer Science")
	}
	if c.Instructor != "Dr. Smith" {
		t.Errorf("instructor = %q, want %q", c.Instructor, "Dr. Smith")
	}
	if c.Schedule != "Mon/Wed 9:00-10:30" {
		t.Errorf("schedule = %q, want %q", c.Schedule, "Mon/Wed 9:00-10:30")
	}
}

func TestGetCourse_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	addTestCourse(t, s, "MATH201", "Calculus II")

	c, err := s.GetCourse(ctx, "MATH201")
	if err != nil {
		t.Fatalf("GetCourse() failed: %v", err)
	}
	if c == nil {
		t.Fatal("GetCourse() = nil, want course")
	}
	if c.Name != "Calculus II" {
		t.Errorf("name = %q, want %q", c.Name, "Calculus II")
	}
	if c.CreatedAt.IsZero() {
		t.Error("created_at is zero, want insert timestamp")
	}
}

func TestGetCourse_MissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	c, err := s.GetCourse(ctx, "NOPE101")
	if err != nil {
		t.Fatalf("GetCourse() failed: %v", err)
	}
	if c != nil {
		t.Errorf("GetCourse() = %+v, want nil for unknown id", c)
	}
}

func TestAddCourse_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	addTestCourse(t, s, "CS101", "Introduction to Computer Science")

	err := s.AddCourse(ctx, Course{ID: "CS101", Name: "A Different Course"})
	if err == nil {
		t.Fatal("expected error for duplicate id, got nil")
	}
	if !IsDuplicate(err) {
		t.Errorf("IsDuplicate(err) = false, want true (err: %v)", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "Introduction to Computer Science" {
		t.Errorf("courses after duplicate add = %+v, want original only", courses)
	}
}

func TestCourses_OrderedByName(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	addTestCourse(t, s, "PHYS101", "Physics I")
	addTestCourse(t, s, "MATH201", "Calculus II")
	addTestCourse(t, s, "ENG101", "English Composition")

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}

	want := []string{"Calculus II", "English Composition", "Physics I"}
	if len(courses) != len(want) {
		t.Fatalf("len(courses) = %d, want %d", len(courses), len(want))
	}
	for i, name := range want {
		if courses[i].Name != name {
			t.Errorf("courses[%d].Name = %q, want %q", i, courses[i].Name, name)
		}
	}
}

func TestCourses_EmptyReturnsEmptySlice(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}
	if courses == nil {
		t.Error("Courses() returned nil, want empty slice")
	}
	if len(courses) != 0 {
		t.Errorf("len(courses) = %d, want 0", len(courses))
	}
}

func TestDeleteCourse_NullsAttendanceReferences(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	addTestStudent(t, s, "S001", "John Doe")
	addTestCourse(t, s, "CS101", "Introduction to Computer Science")

	if _, err := s.RecordAttendance(ctx, "S001", "id_pass", "CS101"); err != nil {
		t.Fatalf("RecordAttendance() failed: %v", err)
	}

	if err := s.DeleteCourse(ctx, "CS101"); err != nil {
		t.Fatalf("DeleteCourse() failed: %v", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("len(courses) = %d, want 0", len(courses))
	}

	// Attendance history survives with the reference nulled
	rec, err := s.AttendanceFor(ctx, "S001", s.clock.Now().Format(dayFormat))
	if err != nil {
		t.Fatalf("AttendanceFor() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("attendance row removed by course delete")
	}
	if rec.CourseID != "" {
		t.Errorf("course_id = %q, want empty after course delete", rec.CourseID)
	}

	// Course-scoped rows do not survive
	if n := countRows(t, s, "course_attendance"); n != 0 {
		t.Errorf("course_attendance rows = %d, want 0", n)
	}
}

func TestDeleteCourse_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	if err := s.DeleteCourse(ctx, "NOPE101"); err != nil {
		t.Errorf("DeleteCourse() on unknown id should succeed: %v", err)
	}
}

func TestDeleteCourse_LeavesOtherCourses(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	addTestStudent(t, s, "S001", "John Doe")
	addTestStudent(t, s, "S002", "Jane Smith")
	addTestCourse(t, s, "CS101", "Introduction to Computer Science")
	addTestCourse(t, s, "MATH201", "Calculus II")

	if _, err := s.RecordAttendance(ctx, "S001", "id_pass", "CS101"); err != nil {
		t.Fatalf("RecordAttendance(S001) failed: %v", err)
	}
	if _, err := s.RecordAttendance(ctx, "S002", "id_pass", "MATH201"); err != nil {
		t.Fatalf("RecordAttendance(S002) failed: %v", err)
	}

	if err := s.DeleteCourse(ctx, "CS101"); err != nil {
		t.Fatalf("DeleteCourse() failed: %v", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses() failed: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "MATH201" {
		t.Errorf("courses = %+v, want MATH201 only", courses)
	}
	if n := countRows(t, s, "course_attendance"); n != 1 {
		t.Errorf("course_attendance rows = %d, want 1 (MATH201's row)", n)
	}
}
