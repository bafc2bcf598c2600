// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil holds helpers for logging and asserting oops errors.
package errutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err at error level with any extra attributes. Oops errors
// contribute their code and context; other errors are logged as strings.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	attrs := append([]any{"error", err.Error()}, args...)
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(oopsErr); code != "" {
			attrs = append(attrs, "code", code)
		}
		if errCtx := oopsErr.Context(); len(errCtx) > 0 {
			attrs = append(attrs, "context", errCtx)
		}
	}
	logger.ErrorContext(ctx, msg, attrs...)
}

// Code returns the oops error code of err, or "" when err carries none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code := oopsErr.Code()
	if code == nil {
		return ""
	}
	return fmt.Sprint(code)
}
