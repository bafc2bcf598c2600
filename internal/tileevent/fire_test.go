// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package tileevent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/pkg/errutil"
)

// recordingHandler records the kind of every event it receives.
type recordingHandler struct {
	tileevent.NopHandler
	kinds    []tileevent.Kind
	teleport tileevent.Teleport
	err      error
}

func (h *recordingHandler) Climb(_ context.Context, e *tileevent.Event, _ tileevent.Climb) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Speed(_ context.Context, e *tileevent.Event, _ tileevent.Speed) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Teleport(_ context.Context, e *tileevent.Event, v tileevent.Teleport) error {
	h.kinds = append(h.kinds, e.Kind())
	h.teleport = v
	return h.err
}

func (h *recordingHandler) Jump(_ context.Context, e *tileevent.Event, _ tileevent.Jump) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Step(_ context.Context, e *tileevent.Event, _ tileevent.Step) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Collision(_ context.Context, e *tileevent.Event, _ tileevent.Collision) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Slider(_ context.Context, e *tileevent.Event, _ tileevent.Slider) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) Trigger(_ context.Context, e *tileevent.Event, _ tileevent.Trigger) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func (h *recordingHandler) IceSlide(_ context.Context, e *tileevent.Event, _ tileevent.IceSlide) error {
	h.kinds = append(h.kinds, e.Kind())
	return h.err
}

func TestFire_DispatchesEveryKind(t *testing.T) {
	h := &recordingHandler{}
	for _, k := range tileevent.Kinds() {
		v, err := tileevent.ZeroVariant(k)
		require.NoError(t, err)
		require.NoError(t, tileevent.Fire(context.Background(), tileevent.New(0, 0, v), h))
	}
	assert.Equal(t, tileevent.Kinds(), h.kinds)
}

func TestFire_PassesPayload(t *testing.T) {
	h := &recordingHandler{}
	tp := tileevent.Teleport{TargetMap: "madra", X: 4, Y: 7, Facing: geometry.Down}

	require.NoError(t, tileevent.Fire(context.Background(), tileevent.New(1, 1, tp), h))
	assert.Equal(t, tp, h.teleport)
}

func TestFire_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	h := &recordingHandler{err: boom}

	err := tileevent.Fire(context.Background(), tileevent.New(0, 0, tileevent.Speed{Speed: 2}), h)
	assert.ErrorIs(t, err, boom)
}

func TestFire_RejectsMissingVariant(t *testing.T) {
	err := tileevent.Fire(context.Background(), tileevent.New(0, 0, nil), tileevent.NopHandler{})
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, tileevent.CodeUnknownVariant)
}
