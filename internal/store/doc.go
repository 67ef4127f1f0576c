// Package store provides the SQLite-backed attendance ledger.
//
// One Store owns the four relations (students, courses, attendance,
// course_attendance) plus the advisory audit log, all in a single
// database file. A process-wide mutex serializes every public
// operation, which is the entire concurrency design: the recorder's
// existence-check-then-insert sequence runs under the lock, so no
// interleaving can produce a second attendance row for the same
// (student, day).
//
// # Operation results
//
// Public operations never surface raw driver errors. A non-nil error
// is always a *Error carrying one of four codes:
//   - DUPLICATE_KEY: an insert collided with an existing key (the
//     expected failure of AddStudent/AddCourse with a known id)
//   - NOT_FOUND: a backup or restore path does not exist
//   - IO_FAILURE: copying the backing file failed
//   - UNEXPECTED: any other storage fault
//
// Lookup misses are absent values (nil pointer, empty slice), not
// errors.
//
// # Database configuration
//
//   - WAL mode; Backup checkpoints the WAL so the file copy is
//     self-contained
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign key enforcement stays off: the attendance references are
//     advisory, course deletion nulls them, and files written by
//     earlier versions of the tool must keep restoring
package store
