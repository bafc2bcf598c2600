// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the tileworld CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tileworld",
		Short: "tileworld - tile event registry and push simulator",
		Long: `tileworld loads tile maps, keeps their events indexed by tile and
replays scripted pushes that relocate objects together with their events.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewSimulateCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
