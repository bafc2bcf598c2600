// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/tileworld/internal/mapdata"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate map files",
		Long: `Validate map files against the map schema and format version, and
check that every object and event can be built.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args)
		},
	}
}

func runValidate(out io.Writer, paths []string) error {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	var failed int
	for _, path := range paths {
		m, err := mapdata.LoadFile(path, nil, quiet)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "FAIL %s: %s\n", path, mapdata.FormatSchemaError(err))
			continue
		}
		_, _ = fmt.Fprintf(out, "ok   %s (%s: %d objects, %d events)\n",
			path, m.Name, len(m.Objects()), m.Events.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d map files invalid", failed, len(paths))
	}
	return nil
}
