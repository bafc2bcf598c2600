// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package tileevent

import (
	"github.com/samber/oops"

	"github.com/holomush/tileworld/internal/geometry"
)

// CodeUnknownKind marks kind names that match no tile event variant.
const CodeUnknownKind = "EVENT_UNKNOWN_KIND"

// Kind identifies the variant of a tile event.
type Kind string

// Tile event kinds.
const (
	KindClimb     Kind = "climb"
	KindSpeed     Kind = "speed"
	KindTeleport  Kind = "teleport"
	KindJump      Kind = "jump"
	KindStep      Kind = "step"
	KindCollision Kind = "collision"
	KindSlider    Kind = "slider"
	KindTrigger   Kind = "event_trigger"
	KindIceSlide  Kind = "ice_slide"
)

// Kinds returns every tile event kind.
func Kinds() []Kind {
	return []Kind{
		KindClimb, KindSpeed, KindTeleport, KindJump, KindStep,
		KindCollision, KindSlider, KindTrigger, KindIceSlide,
	}
}

// Variant is the kind-specific payload of an event.
// The set of variants is closed; see Fire for the dispatch over it.
type Variant interface {
	Kind() Kind
	sealed()
}

// Climb moves the hero onto a climbable surface.
type Climb struct {
	ChangeToCollisionLayer int
	ClimbingOnly           bool
}

// Speed changes the hero's walking speed while on the tile.
type Speed struct {
	Speed float64
}

// Teleport sends the hero to another map or another tile.
type Teleport struct {
	TargetMap          string
	X, Y               int
	DestCollisionLayer int
	Facing             geometry.Direction
}

// Jump lets the hero leap across a gap. Its activation flags are what the
// push coordinator reconciles when objects move.
type Jump struct{}

// Step lifts or drops the hero by half a tile.
type Step struct {
	StepDirection geometry.Direction
}

// Collision moves the hero to another collision layer.
type Collision struct {
	DestCollisionLayer int
}

// Slider slides the hero to a target tile.
type Slider struct {
	XTarget, YTarget   int
	DestCollisionLayer int
}

// Trigger fires named game events.
type Trigger struct {
	GameEvents   []string
	RemoveOnFire bool
}

// IceSlide makes the hero slide until something stops them.
type IceSlide struct{}

func (Climb) Kind() Kind     { return KindClimb }
func (Speed) Kind() Kind     { return KindSpeed }
func (Teleport) Kind() Kind  { return KindTeleport }
func (Jump) Kind() Kind      { return KindJump }
func (Step) Kind() Kind      { return KindStep }
func (Collision) Kind() Kind { return KindCollision }
func (Slider) Kind() Kind    { return KindSlider }
func (Trigger) Kind() Kind   { return KindTrigger }
func (IceSlide) Kind() Kind  { return KindIceSlide }

func (Climb) sealed()     {}
func (Speed) sealed()     {}
func (Teleport) sealed()  {}
func (Jump) sealed()      {}
func (Step) sealed()      {}
func (Collision) sealed() {}
func (Slider) sealed()    {}
func (Trigger) sealed()   {}
func (IceSlide) sealed()  {}

// ZeroVariant returns the empty payload for a kind.
func ZeroVariant(k Kind) (Variant, error) {
	switch k {
	case KindClimb:
		return Climb{}, nil
	case KindSpeed:
		return Speed{}, nil
	case KindTeleport:
		return Teleport{}, nil
	case KindJump:
		return Jump{}, nil
	case KindStep:
		return Step{}, nil
	case KindCollision:
		return Collision{}, nil
	case KindSlider:
		return Slider{}, nil
	case KindTrigger:
		return Trigger{}, nil
	case KindIceSlide:
		return IceSlide{}, nil
	default:
		return nil, oops.Code(CodeUnknownKind).
			With("kind", k).
			Errorf("unknown tile event kind %q", k)
	}
}
