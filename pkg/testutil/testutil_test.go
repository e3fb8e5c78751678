package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type rowState struct{ exists, missing, empty bool }

func (s rowState) DoesValueExist(int) bool { return s.exists }
func (s rowState) IsValueMissing(int) bool { return s.missing }
func (s rowState) IsValueEmpty(int) bool   { return s.empty }

func TestRequireRowState(t *testing.T) {
	RequireRowState(t, rowState{exists: true, missing: true}, 0, true, true, false)
}

func TestObservedLogger(t *testing.T) {
	log, logs := ObservedLogger(zap.NewAtomicLevelAt(zap.WarnLevel))
	log.Info("dropped")
	log.Warn("kept", zap.Int("rows", 3))

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestTestLogger(t *testing.T) {
	TestLogger(t).Debug("visible with -v")
	RequireNoError(t, nil, "nil error")
}
