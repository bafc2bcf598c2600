// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tileworld/pkg/errutil"
)

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("MAP_INVALID").
		With("path", "lighthouse.yaml").
		Errorf("map rejected")

	errutil.LogError(context.Background(), logger, "load failed", err, "attempt", 1)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Equal(t, "load failed", logEntry["msg"])
	assert.Equal(t, "MAP_INVALID", logEntry["code"])
	assert.EqualValues(t, 1, logEntry["attempt"])
	assert.Contains(t, logEntry, "context")
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(context.Background(), logger, "load failed", errors.New("standard error"))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Contains(t, logEntry["error"], "standard error")
	assert.NotContains(t, logEntry, "code")
}

func TestCode(t *testing.T) {
	assert.Equal(t, "PUSH_CONFIG", errutil.Code(oops.Code("PUSH_CONFIG").Errorf("bad")))
	assert.Equal(t, "PUSH_CONFIG", errutil.Code(oops.Wrapf(oops.Code("PUSH_CONFIG").Errorf("bad"), "outer")))
	assert.Empty(t, errutil.Code(errors.New("plain")))
	assert.Empty(t, errutil.Code(oops.Errorf("no code")))
}
