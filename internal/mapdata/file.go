// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package mapdata reads map files: the YAML format, its JSON Schema, format
// versioning and building a world.Map from a file.
package mapdata

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/tileevent"
)

// Error codes for map files.
const (
	CodeParse   = "MAP_PARSE"
	CodeInvalid = "MAP_INVALID"
	CodeSchema  = "MAP_SCHEMA"
	CodeVersion = "MAP_VERSION"
)

// SupportedVersions is the format_version constraint this build reads.
const SupportedVersions = "^1"

// File is a map file.
type File struct {
	FormatVersion string        `yaml:"format_version" jsonschema:"description=Map format version (semver)"`
	Name          string        `yaml:"name" jsonschema:"pattern=^[a-z][a-z0-9_]*$"`
	Width         int           `yaml:"width" jsonschema:"minimum=1"`
	Height        int           `yaml:"height" jsonschema:"minimum=1"`
	TileWidth     int           `yaml:"tile_width" jsonschema:"minimum=1"`
	TileHeight    int           `yaml:"tile_height" jsonschema:"minimum=1"`
	Hero          *HeroSpec     `yaml:"hero,omitempty"`
	Objects       []ObjectSpec  `yaml:"objects,omitempty"`
	Events        []StaticEvent `yaml:"events,omitempty"`
}

// HeroSpec places the hero.
type HeroSpec struct {
	X              int    `yaml:"x" jsonschema:"minimum=0"`
	Y              int    `yaml:"y" jsonschema:"minimum=0"`
	Facing         string `yaml:"facing,omitempty" jsonschema:"enum=right,enum=up_right,enum=up,enum=up_left,enum=left,enum=down_left,enum=down,enum=down_right"`
	CollisionLayer int    `yaml:"collision_layer,omitempty"`
}

// ObjectSpec is an interactable object and the events it owns.
type ObjectSpec struct {
	ID                 string        `yaml:"id" jsonschema:"minLength=1"`
	X                  int           `yaml:"x" jsonschema:"minimum=0"`
	Y                  int           `yaml:"y" jsonschema:"minimum=0"`
	BaseCollisionLayer int           `yaml:"base_collision_layer,omitempty"`
	JumpLayerShift     int           `yaml:"jump_layer_shift,omitempty"`
	Pushable           bool          `yaml:"pushable,omitempty"`
	Events             []ObjectEvent `yaml:"events,omitempty"`
}

// StaticEvent is an event authored at an absolute tile.
type StaticEvent struct {
	EventSpec `yaml:",inline"`
	X         int `yaml:"x" jsonschema:"minimum=0"`
	Y         int `yaml:"y" jsonschema:"minimum=0"`
}

// ObjectEvent is an event placed relative to its owning object.
type ObjectEvent struct {
	EventSpec           `yaml:",inline"`
	XShift              int `yaml:"x_shift,omitempty"`
	YShift              int `yaml:"y_shift,omitempty"`
	CollisionLayerShift int `yaml:"collision_layer_shift,omitempty"`
}

// EventSpec holds the fields shared by every event. Kind-specific fields are
// ignored for other kinds.
type EventSpec struct {
	Type                      string   `yaml:"type" jsonschema:"enum=climb,enum=speed,enum=teleport,enum=jump,enum=step,enum=collision,enum=slider,enum=event_trigger,enum=ice_slide"`
	ActivationDirections      []string `yaml:"activation_directions" jsonschema:"minItems=1"`
	Active                    []bool   `yaml:"active,omitempty"`
	AffectedByReveal          []bool   `yaml:"affected_by_reveal,omitempty"`
	ActivationCollisionLayers []int    `yaml:"activation_collision_layers,omitempty"`
	Dynamic                   bool     `yaml:"dynamic,omitempty"`

	ChangeToCollisionLayer int      `yaml:"change_to_collision_layer,omitempty"`
	ClimbingOnly           bool     `yaml:"climbing_only,omitempty"`
	Speed                  float64  `yaml:"speed,omitempty"`
	TargetMap              string   `yaml:"target_map,omitempty"`
	TargetX                int      `yaml:"target_x,omitempty"`
	TargetY                int      `yaml:"target_y,omitempty"`
	DestCollisionLayer     int      `yaml:"dest_collision_layer,omitempty"`
	DestFacing             string   `yaml:"dest_facing,omitempty"`
	StepDirection          string   `yaml:"step_direction,omitempty"`
	GameEvents             []string `yaml:"game_events,omitempty"`
	RemoveOnFire           bool     `yaml:"remove_on_fire,omitempty"`
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Parse decodes and validates a map file. It does not check the schema; see
// ValidateSchema.
func Parse(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, oops.Code(CodeParse).Errorf("map data is empty")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code(CodeParse).Wrapf(err, "invalid YAML")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the constraints the schema cannot express.
func (f *File) Validate() error {
	if err := CheckVersion(f.FormatVersion); err != nil {
		return err
	}
	if !namePattern.MatchString(f.Name) {
		return invalid(f.Name, "name %q must start with a-z and contain only a-z, 0-9 and underscores", f.Name)
	}
	if f.Width <= 0 || f.Height <= 0 || f.TileWidth <= 0 || f.TileHeight <= 0 {
		return invalid(f.Name, "map and tile dimensions must be positive")
	}
	if h := f.Hero; h != nil {
		if !f.inBounds(h.X, h.Y) {
			return invalid(f.Name, "hero at %d/%d is outside the map", h.X, h.Y)
		}
		if h.Facing != "" {
			if _, err := geometry.ParseDirection(h.Facing); err != nil {
				return oops.Code(CodeInvalid).With("map", f.Name).Wrap(err)
			}
		}
	}

	ids := make(map[string]bool, len(f.Objects))
	for i := range f.Objects {
		obj := &f.Objects[i]
		if obj.ID == "" {
			return invalid(f.Name, "object %d has no id", i)
		}
		if ids[obj.ID] {
			return invalid(f.Name, "duplicate object id %q", obj.ID)
		}
		ids[obj.ID] = true
		if !f.inBounds(obj.X, obj.Y) {
			return invalid(f.Name, "object %q at %d/%d is outside the map", obj.ID, obj.X, obj.Y)
		}
		for j := range obj.Events {
			ev := &obj.Events[j]
			if err := ev.check(); err != nil {
				return oops.Code(CodeInvalid).With("map", f.Name).With("object_id", obj.ID).With("event", j).Wrap(err)
			}
			if x, y := obj.X+ev.XShift, obj.Y+ev.YShift; !f.inBounds(x, y) {
				return invalid(f.Name, "event %d of object %q at %d/%d is outside the map", j, obj.ID, x, y)
			}
		}
	}

	for i := range f.Events {
		ev := &f.Events[i]
		if err := ev.check(); err != nil {
			return oops.Code(CodeInvalid).With("map", f.Name).With("event", i).Wrap(err)
		}
		if !f.inBounds(ev.X, ev.Y) {
			return invalid(f.Name, "event %d at %d/%d is outside the map", i, ev.X, ev.Y)
		}
	}
	return nil
}

func (f *File) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

func invalid(name, format string, args ...any) error {
	return oops.Code(CodeInvalid).With("map", name).Errorf(format, args...)
}

// CheckVersion verifies that version satisfies SupportedVersions.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return oops.Code(CodeVersion).With("format_version", version).Wrapf(err, "invalid format_version")
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return oops.Code(CodeVersion).Wrap(err)
	}
	if !c.Check(v) {
		return oops.Code(CodeVersion).
			With("format_version", version).
			With("supported", SupportedVersions).
			Errorf("unsupported format_version %s", version)
	}
	return nil
}

func (s *EventSpec) check() error {
	if _, err := s.variant(); err != nil {
		return err
	}
	if _, err := s.directions(); err != nil {
		return err
	}
	n := len(s.ActivationDirections)
	if n == 0 {
		return oops.Code(CodeInvalid).With("type", s.Type).Errorf("%s event has no activation directions", s.Type)
	}
	if len(s.Active) != 0 && len(s.Active) != n {
		return oops.Errorf("active has %d flags for %d activation directions", len(s.Active), n)
	}
	if len(s.AffectedByReveal) != 0 && len(s.AffectedByReveal) != n {
		return oops.Errorf("affected_by_reveal has %d flags for %d activation directions", len(s.AffectedByReveal), n)
	}
	return nil
}

func (s *EventSpec) directions() ([]geometry.Direction, error) {
	dirs := make([]geometry.Direction, 0, len(s.ActivationDirections))
	for _, name := range s.ActivationDirections {
		d, err := geometry.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func parseOptionalDirection(name string, def geometry.Direction) (geometry.Direction, error) {
	if name == "" {
		return def, nil
	}
	return geometry.ParseDirection(name)
}

// variant builds the kind-specific payload.
func (s *EventSpec) variant() (tileevent.Variant, error) {
	switch kind := tileevent.Kind(s.Type); kind {
	case tileevent.KindClimb:
		return tileevent.Climb{ChangeToCollisionLayer: s.ChangeToCollisionLayer, ClimbingOnly: s.ClimbingOnly}, nil
	case tileevent.KindSpeed:
		return tileevent.Speed{Speed: s.Speed}, nil
	case tileevent.KindTeleport:
		facing, err := parseOptionalDirection(s.DestFacing, geometry.Down)
		if err != nil {
			return nil, err
		}
		return tileevent.Teleport{
			TargetMap:          s.TargetMap,
			X:                  s.TargetX,
			Y:                  s.TargetY,
			DestCollisionLayer: s.DestCollisionLayer,
			Facing:             facing,
		}, nil
	case tileevent.KindStep:
		dir, err := parseOptionalDirection(s.StepDirection, geometry.Up)
		if err != nil {
			return nil, err
		}
		return tileevent.Step{StepDirection: dir}, nil
	case tileevent.KindCollision:
		return tileevent.Collision{DestCollisionLayer: s.DestCollisionLayer}, nil
	case tileevent.KindSlider:
		return tileevent.Slider{XTarget: s.TargetX, YTarget: s.TargetY, DestCollisionLayer: s.DestCollisionLayer}, nil
	case tileevent.KindTrigger:
		return tileevent.Trigger{GameEvents: s.GameEvents, RemoveOnFire: s.RemoveOnFire}, nil
	default:
		return tileevent.ZeroVariant(kind)
	}
}

// options builds the event options. layerShift is added to every activation
// collision layer.
func (s *EventSpec) options(layerShift int) ([]tileevent.Option, error) {
	dirs, err := s.directions()
	if err != nil {
		return nil, err
	}
	layers := s.ActivationCollisionLayers
	if len(layers) == 0 {
		layers = []int{0}
	}
	shifted := make([]int, len(layers))
	for i, l := range layers {
		shifted[i] = l + layerShift
	}

	opts := []tileevent.Option{
		tileevent.WithActivationDirections(dirs...),
		tileevent.WithActive(s.Active...),
		tileevent.WithAffectedByReveal(s.AffectedByReveal...),
		tileevent.WithCollisionLayers(shifted...),
	}
	if s.Dynamic {
		opts = append(opts, tileevent.Dynamic())
	}
	return opts, nil
}
