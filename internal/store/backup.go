package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Backup copies the backing file verbatim to the target path,
// truncating any existing file there. The WAL is checkpointed first so
// the copy is self-contained, and the copy runs under the guard, so no
// operation can interleave with it.
func (s *Store) Backup(ctx context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "backup"

	// Fold pending WAL frames into the main file; without this, recent
	// commits would be missing from the copy.
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return s.sqlFail(op, err)
	}

	if err := copyFile(s.path, target); err != nil {
		return s.fileFail(op, err)
	}
	return nil
}

// Restore replaces the backing file with the contents of source and
// reopens the connection, so the restored rows are immediately
// queryable. The copy goes through a temp file and a rename; a failed
// copy leaves the current file untouched. The restored file passes
// through the normal open sequence, which carries files from earlier
// schema versions forward.
func (s *Store) Restore(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "restore"

	if _, err := os.Stat(source); err != nil {
		return s.fileFail(op, err)
	}

	if err := s.db.Close(); err != nil {
		return s.fileFail(op, err)
	}
	// The old WAL and shm describe the replaced file and must not be
	// replayed on top of the restored image.
	os.Remove(s.path + "-wal")
	os.Remove(s.path + "-shm")

	if err := replaceFile(source, s.path); err != nil {
		// Reopen whatever is on disk so the store stays usable.
		if db, openErr := openDB(s.path); openErr == nil {
			s.db = db
		}
		return s.fileFail(op, err)
	}

	db, err := openDB(s.path)
	if err != nil {
		return s.fileFail(op, err)
	}
	s.db = db

	if err := s.appendAudit(ctx, s.db, "store.restore", fmt.Sprintf("source=%s", source)); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

// fileFail classifies a file-system fault: missing paths are
// NOT_FOUND, everything else IO_FAILURE. Both are logged with their
// cause.
func (s *Store) fileFail(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	code := ErrCodeIOFailure
	msg := "file operation failed"
	if os.IsNotExist(err) {
		code = ErrCodeNotFound
		msg = "path does not exist"
	}
	s.log.Error("store file operation failed", "op", op, "error", err)
	return &Error{Code: code, Op: op, Message: msg, Err: err}
}

// copyFile copies src to dst verbatim, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// replaceFile copies src to a temp file beside dst and renames it into
// place, so dst is never left half-written.
func replaceFile(src, dst string) error {
	tmp := dst + ".restore"
	if err := copyFile(src, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
