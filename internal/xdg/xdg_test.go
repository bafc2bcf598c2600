// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir_EnvVar(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/tileworld", got)
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/testuser")
	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/testuser/.config/tileworld", got)
}

func TestConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	got, err := ConfigFile()
	require.NoError(t, err)
	assert.Empty(t, got, "no file yet")

	want := filepath.Join(base, "tileworld", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0o700))
	require.NoError(t, os.WriteFile(want, []byte("log:\n  format: text\n"), 0o600))

	got, err = ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
