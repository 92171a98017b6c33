package importerror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileParseErrorMessage(t *testing.T) {
	withCause := &FileParseError{File: "x.csv", Err: errors.New("bad quoting")}
	assert.Contains(t, withCause.Error(), "x.csv")
	assert.Contains(t, withCause.Error(), "bad quoting")

	empty := &FileParseError{File: "x.csv"}
	assert.Contains(t, empty.Error(), "no transactions found")
}

func TestFileParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad quoting")
	err := &FileParseError{File: "x.csv", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestRemoteTimeoutErrorGuidance(t *testing.T) {
	err := &RemoteTimeoutError{File: "scan.pdf"}
	assert.Contains(t, err.Error(), "try a smaller file or a CSV export")
}

func TestRemoteExtractionErrorMessage(t *testing.T) {
	withMessage := &RemoteExtractionError{File: "scan.pdf", Status: 422, Message: "unreadable scan"}
	assert.Contains(t, withMessage.Error(), "unreadable scan")
	assert.Contains(t, withMessage.Error(), "422")

	withCause := &RemoteExtractionError{File: "scan.pdf", Err: errors.New("connection reset")}
	assert.Contains(t, withCause.Error(), "connection reset")
}

func TestCommitErrorUnwrap(t *testing.T) {
	cause := errors.New("deadlock")
	err := &CommitError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "deadlock")
}

func TestTransitionErrorMessage(t *testing.T) {
	err := &TransitionError{Step: "review", Action: "upload a file"}
	assert.Equal(t, "cannot upload a file while on the review step", err.Error())
}
