package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapUseCaseObserver_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewZapUseCaseObserver(zap.New(core))
	ctx := context.Background()

	finishUseCase(ctx, obs, "apply-template", time.Now(), map[string]any{"item_count": 28, "property_id": int64(3)}, nil)
	finishUseCase(ctx, obs, "delete-property", time.Now(), nil, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0]
	assert.Equal(t, zapcore.DebugLevel, ok.Level)
	assert.Equal(t, "service", ok.LoggerName)
	fields := ok.ContextMap()
	assert.Equal(t, "apply-template", fields["use_case"])
	assert.Equal(t, true, fields["success"])
	assert.NotEmpty(t, fields["op_id"])
	assert.EqualValues(t, 28, fields["item_count"])

	failed := entries[1]
	assert.Equal(t, zapcore.WarnLevel, failed.Level)
	assert.Equal(t, "boom", failed.ContextMap()["error"])
}

func TestNewZapUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
}

func TestFinishUseCase_UniqueOpIDs(t *testing.T) {
	rec := &recordingObserver{}
	finishUseCase(context.Background(), rec, "a", time.Now(), nil, nil)
	finishUseCase(context.Background(), rec, "b", time.Now(), nil, nil)

	require.Len(t, rec.events, 2)
	assert.NotEqual(t, rec.events[0].OpID, rec.events[1].OpID)
}
