package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrerequisiteError(t *testing.T) {
	err := &PrerequisiteError{Check: "AWS CLI on PATH", Err: ErrAWSCLINotFound}

	assert.Contains(t, err.Error(), `"AWS CLI on PATH"`)
	assert.ErrorIs(t, err, ErrAWSCLINotFound)

	var prereqErr *PrerequisiteError
	wrapped := fmt.Errorf("running lesson: %w", err)
	assert.ErrorAs(t, wrapped, &prereqErr)
	assert.Equal(t, "AWS CLI on PATH", prereqErr.Check)
}

func TestPrerequisiteErrorUnwrapsThroughChains(t *testing.T) {
	inner := fmt.Errorf("probing session: %w", ErrNotAuthenticated)
	err := &PrerequisiteError{Check: "authenticated session", Err: inner}

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, errors.Is(err, ErrGitNotFound))
}
