package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for workflow state violations
var (
	ErrCancelled        = errors.New("import cancelled")
	ErrAlreadyCommitted = errors.New("import already committed")
	ErrCommitAborted    = errors.New("commit aborted")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CommitAbortedError is the one fatal commit failure: the project
// record itself could not be created, so there is nowhere to link
// files.
type CommitAbortedError struct {
	Root string
	Err  error
}

func (e *CommitAbortedError) Error() string {
	return fmt.Sprintf("cannot import %s: %v", e.Root, e.Err)
}

func (e *CommitAbortedError) Is(target error) bool {
	return target == ErrCommitAborted
}

func (e *CommitAbortedError) Unwrap() error {
	return e.Err
}
