// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/registry"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/internal/world"
	"github.com/holomush/tileworld/pkg/errutil"
)

// execute runs the root command with an empty XDG config home and returns
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return executeRaw(t, args...)
}

func executeRaw(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configFile = ""

	cmd := NewRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"simulate", "validate", "schema"} {
		assert.Contains(t, out, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFlag string
	}{
		{"separate value", []string{"--config", "/path/to/config.yaml", "--help"}, "/path/to/config.yaml"},
		{"with equals", []string{"--config=/etc/tileworld.yaml", "--help"}, "/etc/tileworld.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlag, configFile)
		})
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "https://holomush.dev/schemas/map.schema.json", schema["$id"])
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join("testdata", "map.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok   testdata/map.yaml (courtyard: 3 objects")
}

func TestValidateCommand_Failures(t *testing.T) {
	out, _, err := execute(t, "validate",
		filepath.Join("testdata", "map.yaml"),
		filepath.Join("testdata", "bad_event.yaml"),
		filepath.Join("testdata", "future.yaml"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 map files invalid")
	assert.Contains(t, out, "FAIL testdata/bad_event.yaml")
	assert.Contains(t, out, "FAIL testdata/future.yaml")
}

func TestValidateCommand_RequiresFiles(t *testing.T) {
	_, _, err := execute(t, "validate")
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	out, stderr, err := execute(t, "simulate",
		"--map", filepath.Join("testdata", "map.yaml"),
		"--script", filepath.Join("testdata", "push_pillar.lua"),
		"--push-duration=20ms",
		"--tween-tick=1ms",
		"--log-format=text",
	)
	require.NoError(t, err, stderr)

	assert.Contains(t, out, "normal pushed right moved=1 jumps=+0/-1")
	assert.Contains(t, out, "normal rejected reason=casting")
	assert.Contains(t, out, "pushes=2 fired=0")
	assert.Contains(t, stderr, "pillar pushed")
	assert.Contains(t, stderr, "simulation finished")
	assert.Contains(t, stderr, "registry verified")
}

func TestVerifyRegistry_ReportsMisfiledEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := world.NewMap(world.MapConfig{Name: "courtyard", Width: 4, Height: 4, TileWidth: 16, TileHeight: 16})
	e := tileevent.New(1, 1, tileevent.Jump{}, tileevent.WithActivationDirections(geometry.Right))
	_, err := m.SpawnEvent(e)
	require.NoError(t, err)
	require.NoError(t, verifyRegistry(context.Background(), logger, m))

	// Moving the event behind the registry's back leaves it misfiled.
	e.SetPosition(2, 2)
	err = verifyRegistry(context.Background(), logger, m)
	errutil.AssertErrorCode(t, err, registry.CodeInvariant)
	assert.Contains(t, buf.String(), "registry check failed")
}

func TestSimulateCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tileworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: text\n  level: debug\npush:\n  duration: 0s\n"), 0o600))

	_, stderr, err := execute(t, "--config", path, "simulate",
		"--map", filepath.Join("testdata", "map.yaml"),
		"--script", filepath.Join("testdata", "push_pillar.lua"),
	)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "level=DEBUG", "debug level from the config file")
}

func TestSimulateCommand_XDGConfigFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "tileworld", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: text\n  level: debug\n"), 0o600))
	t.Setenv("XDG_CONFIG_HOME", base)

	_, stderr, err := executeRaw(t, "simulate",
		"--map", filepath.Join("testdata", "map.yaml"),
		"--script", filepath.Join("testdata", "push_pillar.lua"),
		"--push-duration=0s",
	)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestSimulateCommand_Errors(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fail.lua")
	require.NoError(t, os.WriteFile(script, []byte(`push("ghost", "up")`), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing map", []string{"simulate", "--script", script}, "map is required"},
		{"missing script", []string{"simulate", "--map", "testdata/map.yaml"}, "script is required"},
		{"invalid map", []string{"simulate", "--map", "testdata/bad_event.yaml", "--script", script}, "failed to load map"},
		{"bad config", []string{"simulate", "--map", "testdata/map.yaml", "--script", script, "--push-shift=0"}, "failed to load configuration"},
		{"script failure", []string{"simulate", "--map", "testdata/map.yaml", "--script", script}, "script failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
