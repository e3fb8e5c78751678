// Package testutil provides testing utilities for sparse columns
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ObservedLogger returns a logger that records every entry at or above level,
// together with the recorded entries.
func ObservedLogger(level zap.AtomicLevel) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// RowStater reports the state of a single row.
type RowStater interface {
	DoesValueExist(row int) bool
	IsValueMissing(row int) bool
	IsValueEmpty(row int) bool
}

// RequireRowState fails the test immediately if row does not have the given
// stored, missing and empty state.
func RequireRowState(t testing.TB, col RowStater, row int, exists, missing, empty bool) {
	t.Helper()
	if got := col.DoesValueExist(row); got != exists {
		t.Fatalf("row %d: exists = %v, want %v", row, got, exists)
	}
	if got := col.IsValueMissing(row); got != missing {
		t.Fatalf("row %d: missing = %v, want %v", row, got, missing)
	}
	if got := col.IsValueEmpty(row); got != empty {
		t.Fatalf("row %d: empty = %v, want %v", row, got, empty)
	}
}

// RequireNoError fails the test immediately if err is not nil.
// The msg parameter provides additional context in the failure message.
func RequireNoError(t testing.TB, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}
