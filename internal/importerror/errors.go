// Package importerror defines the error taxonomy of the statement import
// pipeline. Every failure a session can surface is one of these types, so
// callers can branch on the kind of failure without string matching.
package importerror

import (
	"errors"
	"fmt"
)

// ErrNothingToImport is returned by the batch committer when the set of
// valid, non-skipped rows is empty. The session stays on the review step.
var ErrNothingToImport = errors.New("nothing to import: no valid rows selected")

// FileParseError indicates the uploaded tabular file could not be parsed
// into headers and rows, or produced zero rows. The user must pick another
// file; the session stays on the upload step.
type FileParseError struct {
	File string
	Err  error
}

func (e *FileParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse file '%s': %v", e.File, e.Err)
	}
	return fmt.Sprintf("failed to parse file '%s': no transactions found", e.File)
}

func (e *FileParseError) Unwrap() error {
	return e.Err
}

// RemoteTimeoutError indicates the document extraction service answered with
// a gateway timeout. The message carries the user guidance required for this
// case: the file is too large or complex, a CSV export should be used instead.
type RemoteTimeoutError struct {
	File string
}

func (e *RemoteTimeoutError) Error() string {
	return fmt.Sprintf("extraction of '%s' timed out: the file may be too large or complex, try a smaller file or a CSV export", e.File)
}

// RemoteExtractionError indicates any non-timeout failure of the document
// extraction service.
type RemoteExtractionError struct {
	File    string
	Status  int
	Message string
	Err     error
}

func (e *RemoteExtractionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("extraction of '%s' failed (status %d): %s", e.File, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("extraction of '%s' failed: %v", e.File, e.Err)
	}
	return fmt.Sprintf("extraction of '%s' failed (status %d)", e.File, e.Status)
}

func (e *RemoteExtractionError) Unwrap() error {
	return e.Err
}

// MappingIncompleteError blocks advancing past the mapping step while a
// required column slot is unmapped or refers to a header that is not part of
// the uploaded file.
type MappingIncompleteError struct {
	Missing []string
}

func (e *MappingIncompleteError) Error() string {
	return fmt.Sprintf("column mapping incomplete: missing or unknown columns for %v", e.Missing)
}

// CommitError indicates the atomic batch write failed. No partial state is
// ever left behind, so a retry with the same rows is always safe.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit transactions: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// TransitionError indicates an operation was invoked while the session was
// on a step that does not allow it.
type TransitionError struct {
	Step   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while on the %s step", e.Action, e.Step)
}
