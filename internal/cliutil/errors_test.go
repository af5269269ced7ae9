package cli

import (
	"errors"
	"testing"

	"github.com/schemakit/fsl"
)

func TestFromCoreError_MapsParseError(t *testing.T) {
	err := fsl.ParseError(fsl.Position{}, "an identifier", "}")
	exitErr := FromCoreError("parsing schema", err)
	if exitErr.Code != ExitParse {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitParse)
	}
}

func TestFromCoreError_MapsDuplicateActionToMerge(t *testing.T) {
	err := fsl.DuplicateActionError("Product", "read")
	exitErr := FromCoreError("merging roles", err)
	if exitErr.Code != ExitMerge {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitMerge)
	}
}

func TestFromCoreError_UnknownErrorIsGeneral(t *testing.T) {
	exitErr := FromCoreError("doing something", errors.New("boom"))
	if exitErr.Code != ExitGeneral {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitGeneral)
	}
}

func TestExitError_Unwrap(t *testing.T) {
	wrapped := errors.New("underlying")
	exitErr := &ExitError{Code: ExitGeneral, Message: "wrap", Err: wrapped}
	if !errors.Is(exitErr, wrapped) {
		t.Error("errors.Is should see through Unwrap to the wrapped error")
	}
}
