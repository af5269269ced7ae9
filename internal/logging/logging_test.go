package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schemakit/fsl"
)

func TestNew_DefaultsToInfoLevel(t *testing.T) {
	os.Unsetenv("FSL_LOG_LEVEL")
	os.Unsetenv("FSL_LOG_FORMAT")
	New()
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("GlobalLevel() = %v, want InfoLevel", zerolog.GlobalLevel())
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	os.Setenv("FSL_LOG_LEVEL", "not-a-level")
	defer os.Unsetenv("FSL_LOG_LEVEL")
	New()
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("GlobalLevel() = %v, want InfoLevel", zerolog.GlobalLevel())
	}
}

func TestLogCoreError_IncludesPositionFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	err := fsl.ParseError(fsl.Position{File: "t.fsl", Line: 3, Column: 5}, "an identifier", "}")
	LogCoreError(log, "parse", err)

	var entry map[string]any
	if unmarshalErr := json.Unmarshal(buf.Bytes(), &entry); unmarshalErr != nil {
		t.Fatalf("json.Unmarshal() error: %v", unmarshalErr)
	}
	if entry["kind"] != "ParseError" {
		t.Errorf("kind = %v, want ParseError", entry["kind"])
	}
	if entry["file"] != "t.fsl" {
		t.Errorf("file = %v, want t.fsl", entry["file"])
	}
}

func TestLogCoreError_NonCoreErrorStillLogs(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	LogCoreError(log, "load", errors.New("disk on fire"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if entry["op"] != "load" {
		t.Errorf("op = %v, want load", entry["op"])
	}
}
