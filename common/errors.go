// Package common provides shared constants, types, and utilities
// used across the NordVPN Indicator application.
package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for adapter and application operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Adapter errors.
	ErrTimeout           = errors.New("operation timed out")
	ErrProcessLaunch     = errors.New("failed to launch process")
	ErrParse             = errors.New("failed to parse output")
	ErrRemoteUnavailable = errors.New("remote API unavailable")
	ErrCommandFailed     = errors.New("command reported failure")

	// User input errors.
	ErrUserInputInvalid = errors.New("invalid user input")
	ErrNotLoggedIn      = errors.New("not logged into NordVPN")

	// Credential errors.
	ErrCredentialsNotFound = errors.New("credentials not found")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// CommandError describes an external command that did not succeed.
type CommandError struct {
	Command string
	Code    int
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with code %d: %v", e.Command, e.Code, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
