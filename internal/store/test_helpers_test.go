package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a store backed by a temp file for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStoreWith creates a temp-file store with injected
// dependencies, for tests that pin the clock or the audit id sequence.
func createTestStoreWith(t *testing.T, opts Options) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenWith(path, opts)
	if err != nil {
		t.Fatalf("OpenWith() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// addTestStudent inserts a student with minimal required fields.
func addTestStudent(t *testing.T, s *Store, id, name string) {
	t.Helper()
	if err := s.AddStudent(context.Background(), Student{ID: id, Name: name}); err != nil {
		t.Fatalf("AddStudent(%s) failed: %v", id, err)
	}
}

// addTestCourse inserts a course with minimal required fields.
func addTestCourse(t *testing.T, s *Store, id, name string) {
	t.Helper()
	if err := s.AddCourse(context.Background(), Course{ID: id, Name: name}); err != nil {
		t.Fatalf("AddCourse(%s) failed: %v", id, err)
	}
}

// countRows returns the row count of a table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %q: %v", table, err)
	}
	return n
}
