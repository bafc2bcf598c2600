// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package mapdata_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/mapdata"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/pkg/errutil"
)

const header = `
format_version: "1.2.0"
name: test
width: 4
height: 4
tile_width: 16
tile_height: 16
`

func TestParse(t *testing.T) {
	f, err := mapdata.Parse(readFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", f.FormatVersion)
	require.Len(t, f.Objects, 1)
	assert.Equal(t, 1, f.Objects[0].Events[1].YShift)
	assert.Equal(t, "jump", f.Objects[0].Events[1].Type)
	require.Len(t, f.Events, 3)
	assert.Equal(t, "madra", f.Events[2].TargetMap)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"active length", "events:\n  - {type: jump, x: 0, y: 0, activation_directions: [up], active: [true, false]}\n", mapdata.CodeInvalid},
		{"reveal length", "events:\n  - {type: jump, x: 0, y: 0, activation_directions: [up], affected_by_reveal: [true, true]}\n", mapdata.CodeInvalid},
		{"unknown direction", "events:\n  - {type: jump, x: 0, y: 0, activation_directions: [north]}\n", geometry.CodeUnknownDirection},
		{"unknown kind", "events:\n  - {type: lava, x: 0, y: 0}\n", tileevent.CodeUnknownKind},
		{"bad step direction", "events:\n  - {type: step, x: 0, y: 0, step_direction: sideways}\n", geometry.CodeUnknownDirection},
		{"hero outside", "hero: {x: 4, y: 0}\n", mapdata.CodeInvalid},
		{"hero facing", "hero: {x: 0, y: 0, facing: north}\n", geometry.CodeUnknownDirection},
		{"object event outside", "objects:\n  - {id: a, x: 3, y: 3, events: [{type: jump, x_shift: 1, activation_directions: [up]}]}\n", mapdata.CodeInvalid},
		{"no activation directions", "events:\n  - {type: jump, x: 0, y: 0}\n", mapdata.CodeInvalid},
		{"empty activation directions", "objects:\n  - {id: a, x: 1, y: 1, events: [{type: collision, activation_directions: []}]}\n", mapdata.CodeInvalid},
		{"object without id", "objects:\n  - {x: 1, y: 1}\n", mapdata.CodeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapdata.Parse([]byte(header + tt.body))
			errutil.AssertErrorCode(t, err, tt.code)
			errutil.AssertErrorContext(t, err, "map", "test")
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.9.3", false},
		{"1", false},
		{"0.9.0", true},
		{"2.0.0", true},
		{"", true},
		{"latest", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := mapdata.CheckVersion(tt.version)
			if tt.wantErr {
				errutil.AssertErrorCode(t, err, mapdata.CodeVersion)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := mapdata.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, mapdata.SchemaID, schema["$id"])
	assert.Equal(t, "Tileworld Map", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "format_version")
	assert.Contains(t, props, "objects")
	assert.Contains(t, schema["required"], "width")
}

func TestValidateSchema(t *testing.T) {
	require.NoError(t, mapdata.ValidateSchema(readFixture(t)))

	err := mapdata.ValidateSchema([]byte(header + "events:\n  - {type: lava, x: 0, y: 0}\n"))
	errutil.AssertErrorCode(t, err, mapdata.CodeSchema)
}

func TestParse_BadName(t *testing.T) {
	data := []byte("format_version: \"1.0.0\"\nname: Bad-Name\nwidth: 1\nheight: 1\ntile_width: 16\ntile_height: 16\n")
	_, err := mapdata.Parse(data)
	errutil.AssertErrorCode(t, err, mapdata.CodeInvalid)
	errutil.AssertErrorContext(t, err, "map", "Bad-Name")
}

func TestFormatSchemaError(t *testing.T) {
	assert.Empty(t, mapdata.FormatSchemaError(nil))
	assert.Equal(t, "boom", mapdata.FormatSchemaError(errors.New("schema validation failed: boom")))
}
