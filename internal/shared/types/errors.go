package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoProfilesFound      = errors.New("no AWS profiles found. Please configure AWS CLI first")
	ErrNoValidProfilesFound = errors.New("none of the specified profiles were found in AWS configuration")
	ErrAWSCLINotFound       = errors.New("aws CLI not found on PATH. Install it from https://aws.amazon.com/cli/")
	ErrGitNotFound          = errors.New("git not found on PATH. Install it from https://git-scm.com/downloads")
	ErrNotAuthenticated     = errors.New("no authenticated AWS session. Check your credentials with 'aws sts get-caller-identity'")
	ErrServiceUnavailable   = errors.New("service temporarily unavailable")
)

// PrerequisiteError indicates that a lesson cannot run because one of its
// prerequisite checks failed. The CLI exits with status 1 when it sees one.
type PrerequisiteError struct {
	Check string
	Err   error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite check %q failed: %v", e.Check, e.Err)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}
