// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"github.com/oklog/ulid/v2"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/location"
	"github.com/holomush/tileworld/internal/tileevent"
)

// State is a phase of the push protocol.
type State int

// Push protocol states. Every push starts and ends in StateIdle.
const (
	StateIdle State = iota
	StateValidatingDirection
	StateRelocating
	StateAwaitingVisualCompletion
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidatingDirection:
		return "validating_direction"
	case StateRelocating:
		return "relocating"
	case StateAwaitingVisualCompletion:
		return "awaiting_visual_completion"
	default:
		return "unknown"
	}
}

// Mode distinguishes hero-driven pushes from scripted ones.
type Mode string

// Push modes.
const (
	ModeNormal     Mode = "normal"
	ModeTargetOnly Mode = "target_only"
)

// Outcome is the overall result of a push request.
type Outcome string

// Push outcomes.
const (
	OutcomePushed   Outcome = "pushed"
	OutcomeRejected Outcome = "rejected"
)

// Reason explains a rejected push.
type Reason string

// Rejection reasons. A rejection is a normal result, not an error.
const (
	ReasonNone           Reason = ""
	ReasonNoRequest      Reason = "no_request"
	ReasonNotCardinal    Reason = "not_cardinal"
	ReasonFacingMismatch Reason = "facing_mismatch"
	ReasonCasting        Reason = "casting"
	ReasonJumping        Reason = "jumping"
	ReasonNotPushable    Reason = "not_pushable"
	ReasonWrongSide      Reason = "wrong_side"
	ReasonInProgress     Reason = "in_progress"
)

// EventMove records one relocated event.
type EventMove struct {
	EventID tileevent.ID
	From    location.Key
	To      location.Key
}

// Result describes a finished push request.
type Result struct {
	ID        ulid.ULID
	Mode      Mode
	Outcome   Outcome
	Reason    Reason
	Direction geometry.Direction
	Moves     []EventMove

	// JumpsActivated and JumpsDeactivated count jump activation flags touched
	// while reconciling the tiles around the moved events.
	JumpsActivated   int
	JumpsDeactivated int
}

// Pushed reports whether the object moved.
func (r Result) Pushed() bool {
	return r.Outcome == OutcomePushed
}
