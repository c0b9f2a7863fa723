// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the logging capability for promptbake, suitable
// both for interactive CLI runs and for structured collection in CI.
package logger

import (
	"os"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvReader abstracts environment variable access so logger configuration
// can be tested without mutating the process environment.
type EnvReader interface {
	Getenv(key string) string
}

// osEnvReader reads the real process environment.
type osEnvReader struct{}

func (osEnvReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Debugf logs a message at debug level using the singleton logger.
func Debugf(msg string, args ...any) {
	zap.S().Debugf(msg, args...)
}

// Debugw logs a message at debug level with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	zap.S().Debugw(msg, keysAndValues...)
}

// Infof logs a message at info level using the singleton logger.
func Infof(msg string, args ...any) {
	zap.S().Infof(msg, args...)
}

// Infow logs a message at info level with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	zap.S().Infow(msg, keysAndValues...)
}

// Warnf logs a message at warning level using the singleton logger.
func Warnf(msg string, args ...any) {
	zap.S().Warnf(msg, args...)
}

// Errorf logs a message at error level using the singleton logger.
func Errorf(msg string, args ...any) {
	zap.S().Errorf(msg, args...)
}

// Errorw logs a message at error level with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	zap.S().Errorw(msg, keysAndValues...)
}

// NewLogr returns a logr.Logger backed by the singleton zap logger, for
// libraries that consume the logr interface.
func NewLogr() logr.Logger {
	return zapr.NewLogger(zap.L())
}

// Initialize creates and installs the global logger. Output is unstructured
// and colored for terminals unless the UNSTRUCTURED_LOGS environment
// variable is explicitly set to false, in which case production JSON output
// is used.
func Initialize(debug bool) {
	InitializeWithEnv(osEnvReader{}, debug)
}

// InitializeWithEnv is Initialize with an injectable environment reader.
func InitializeWithEnv(envReader EnvReader, debug bool) {
	var config zap.Config
	if unstructuredLogs(envReader) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		config.OutputPaths = []string{"stderr"}
		config.DisableStacktrace = true
		config.DisableCaller = true
	} else {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zap.ReplaceGlobals(zap.Must(config.Build()))
}

func unstructuredLogs(envReader EnvReader) bool {
	unstructured, err := strconv.ParseBool(envReader.Getenv("UNSTRUCTURED_LOGS"))
	if err != nil {
		// Unset or unparseable means the human-readable default.
		return true
	}
	return unstructured
}
