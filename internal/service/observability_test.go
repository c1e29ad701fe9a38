package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := NewZapUseCaseObserver(zap.New(core))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "create-course", Success: true})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "delete-course", Err: errors.New("gone")})

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "usecase", entries[0].LoggerName)
		assert.Equal(t, "create-course", entries[0].ContextMap()["use_case"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.Equal(t, "gone", entries[1].ContextMap()["error"])
		assert.Equal(t, false, entries[1].ContextMap()["success"])
	}
}

func TestObserverConstructorsTolerateNil(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
}
