// Package cli provides shared configuration and utilities for the fsl CLI.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/schemakit/fsl"
)

// Exit codes per spec.md §7.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitConfig  = 2
	ExitParse   = 3
	ExitLink    = 4
	ExitMerge   = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithError prints the error and exits with the appropriate code.
func ExitWithError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Error())
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitGeneral)
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// ParseError creates an ExitError with ExitParse code.
func ParseError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitParse, Message: msg, Err: err}
}

// LinkError creates an ExitError with ExitLink code.
func LinkError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitLink, Message: msg, Err: err}
}

// MergeError creates an ExitError with ExitMerge code.
func MergeError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitMerge, Message: msg, Err: err}
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}

// FromCoreError classifies a *fsl.Error into the matching ExitError, so
// every command can funnel core errors through one mapping instead of
// re-deciding the exit code at each call site.
func FromCoreError(msg string, err error) *ExitError {
	var fe *fsl.Error
	if errors.As(err, &fe) {
		switch fe.Kind {
		case fsl.ErrParse:
			return ParseError(msg, err)
		case fsl.ErrDuplicateAction, fsl.ErrDuplicateMembership:
			return MergeError(msg, err)
		case fsl.ErrHashComputationFailed:
			return LinkError(msg, err)
		}
	}
	return GeneralError(msg, err)
}
