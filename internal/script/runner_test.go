// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tileworld/internal/mapdata"
	"github.com/holomush/tileworld/internal/physics"
	"github.com/holomush/tileworld/internal/push"
	"github.com/holomush/tileworld/internal/script"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/internal/tween"
	"github.com/holomush/tileworld/internal/world"
	"github.com/holomush/tileworld/pkg/errutil"
)

type countingHandler struct {
	tileevent.NopHandler
	teleports []string
}

func (h *countingHandler) Teleport(_ context.Context, _ *tileevent.Event, v tileevent.Teleport) error {
	h.teleports = append(h.teleports, v.TargetMap)
	return nil
}

func newRunner(t *testing.T, opts ...script.Option) (*script.Runner, *world.Map) {
	t.Helper()
	m, err := mapdata.LoadFile(filepath.Join("testdata", "map.yaml"), nil, nil)
	require.NoError(t, err)
	coord, err := push.NewCoordinator(m, physics.New(), tween.New(nil), push.WithDuration(0))
	require.NoError(t, err)
	return script.NewRunner(m, coord, opts...), m
}

func TestRunner_RunFile(t *testing.T) {
	r, m := newRunner(t)

	report, err := r.RunFile(context.Background(), filepath.Join("testdata", "push_pillar.lua"))
	require.NoError(t, err)

	require.Len(t, report.Pushes, 2)
	assert.Equal(t, push.OutcomePushed, report.Pushes[0].Outcome)
	assert.Equal(t, push.ReasonCasting, report.Pushes[1].Reason)

	obj, err := m.Object("pillar_a")
	require.NoError(t, err)
	assert.Equal(t, 4, obj.CurrentX)
	assert.Equal(t, 3, m.Hero.TileX, "hero tile follows the push")
	assert.True(t, m.Hero.Casting)
}

func TestRunner_ScriptedPushAndQueries(t *testing.T) {
	r, _ := newRunner(t)

	report, err := r.Run(context.Background(), "queries", `
		local jump = events_at(1, 3)[1]
		assert(is_active(jump, "right"))

		local outcome = push("pillar_a", "right")
		assert(outcome == "pushed")
		assert(not is_active(jump, "right"), "vacated jump still active")
		assert(#events_at(3, 3) == 0)
		assert(#events_at(4, 3) == 1)

		local ids = objects("pillar_*")
		assert(#ids == 2 and ids[1] == "pillar_a" and ids[2] == "pillar_b")
		assert(#objects() == 3)
	`)
	require.NoError(t, err)
	require.Len(t, report.Pushes, 1)
	assert.Equal(t, push.ModeTargetOnly, report.Pushes[0].Mode)
}

func TestRunner_Fire(t *testing.T) {
	h := &countingHandler{}
	r, _ := newRunner(t, script.WithHandler(h))

	report, err := r.Run(context.Background(), "fire", `
		place_hero(9, 9)
		face("left")
		assert(fire() == 0)
		face("down")
		assert(fire() == 1)
	`)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fired)
	assert.Equal(t, []string{"madra"}, h.teleports)
}

func TestRunner_HeroStateSetters(t *testing.T) {
	r, m := newRunner(t)

	_, err := r.Run(context.Background(), "setters", `
		set_jumping(true)
		local outcome, reason = hero_push("pillar_a", "right")
		assert(reason == "jumping")
		set_jumping(false)
		place_hero(3, 2)
		outcome, reason = hero_push("pillar_a", "right")
		assert(reason == "wrong_side")
	`)
	require.NoError(t, err)
	assert.False(t, m.Hero.Jumping)
	assert.Equal(t, 2, m.Hero.TileY)
}

func TestRunner_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"syntax", `push(`},
		{"unknown object", `push("ghost", "up")`},
		{"unknown direction", `push("pillar_a", "north")`},
		{"diagonal scripted push", `push("pillar_a", "up_left")`},
		{"unknown event", `is_active(999, "up")`},
		{"assertion", `assert(false, "boom")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRunner(t)
			_, err := r.Run(context.Background(), tt.name, tt.code)
			errutil.AssertErrorCode(t, err, script.CodeFailed)
			errutil.AssertErrorContext(t, err, "script", tt.name)
		})
	}
}

func TestRunner_RunFileMissing(t *testing.T) {
	r, _ := newRunner(t)
	_, err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "nope.lua"))
	errutil.AssertErrorCode(t, err, script.CodeFailed)
}

func TestRunner_CancelledContext(t *testing.T) {
	r, _ := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "loop", `while true do end`)
	errutil.AssertErrorCode(t, err, script.CodeFailed)
}
