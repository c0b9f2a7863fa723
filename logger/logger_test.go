// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeEnvReader returns canned environment values for testing.
type fakeEnvReader map[string]string

func (f fakeEnvReader) Getenv(key string) string {
	return f[key]
}

func TestUnstructuredLogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{name: "default case", envValue: "", expected: true},
		{name: "explicitly true", envValue: "true", expected: true},
		{name: "explicitly false", envValue: "false", expected: false},
		{name: "invalid value", envValue: "not-a-bool", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := fakeEnvReader{"UNSTRUCTURED_LOGS": tt.envValue}
			assert.Equal(t, tt.expected, unstructuredLogs(env))
		})
	}
}

func TestSingletonWrappers(t *testing.T) { //nolint:paralleltest // Replaces the global logger
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Debugf("debug %s", "message")
	Infof("info %d", 42)
	Infow("structured", "path", "prompts/system.md", "changed", true)
	Warnf("warn %s", "message")
	Errorw("failed", "path", "broken.md")

	entries := logs.All()
	require.Len(t, entries, 5)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "debug message", entries[0].Message)
	assert.Equal(t, "info 42", entries[1].Message)
	assert.Equal(t, "structured", entries[2].Message)
	assert.Equal(t, "prompts/system.md", entries[2].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[4].Level)
}

func TestInitializeWithEnv(t *testing.T) { //nolint:paralleltest // Replaces the global logger
	// Structured mode installs a JSON production logger at info level.
	InitializeWithEnv(fakeEnvReader{"UNSTRUCTURED_LOGS": "false"}, false)
	assert.False(t, zap.L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel))

	// Debug flag lowers the level.
	InitializeWithEnv(fakeEnvReader{}, true)
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogr(t *testing.T) { //nolint:paralleltest // Reads the global logger
	lgr := NewLogr()
	assert.NotNil(t, lgr.GetSink())
}
