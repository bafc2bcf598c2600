// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package script runs sandboxed Lua scenarios against a loaded map. Scripts
// drive scripted (target-only) pushes, hero pushes and event firing.
package script

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/push"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/internal/world"
)

var tracer = otel.Tracer("tileworld/script")

// CodeFailed marks script load and execution failures.
const CodeFailed = "SCRIPT_FAILED"

// Report summarizes a script run.
type Report struct {
	Pushes []push.Result
	Fired  int
}

// Runner executes scripts against one map.
type Runner struct {
	m       *world.Map
	coord   *push.Coordinator
	handler tileevent.Handler
	factory *StateFactory
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithHandler sets the handler events fired by scripts are dispatched to.
func WithHandler(h tileevent.Handler) Option {
	return func(r *Runner) { r.handler = h }
}

// WithLogger sets the logger used by the runner and by the script log()
// function.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner pushing objects of m through coord.
func NewRunner(m *world.Map, coord *push.Coordinator, opts ...Option) *Runner {
	r := &Runner{
		m:       m,
		coord:   coord,
		handler: tileevent.NopHandler{},
		factory: NewStateFactory(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile reads and runs a script file.
func (r *Runner) RunFile(ctx context.Context, path string) (Report, error) {
	code, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Report{}, oops.Code(CodeFailed).With("path", path).Wrapf(err, "read script")
	}
	return r.Run(ctx, filepath.Base(path), string(code))
}

// Run executes code in a fresh sandboxed state.
func (r *Runner) Run(ctx context.Context, name, code string) (Report, error) {
	ctx, span := tracer.Start(ctx, "script.run")
	defer span.End()
	span.SetAttributes(attribute.String("script.name", name))

	L, err := r.factory.NewState(ctx)
	if err != nil {
		return Report{}, err
	}
	defer L.Close()

	run := &execution{r: r, ctx: ctx, logger: r.logger.With("script", name)}
	run.register(L)

	if err := L.DoString(code); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "script failed")
		return run.report, oops.Code(CodeFailed).With("script", name).Wrap(err)
	}
	span.SetAttributes(
		attribute.Int("script.pushes", len(run.report.Pushes)),
		attribute.Int("script.fired", run.report.Fired),
	)
	return run.report, nil
}

// execution is the state of one script run.
type execution struct {
	r      *Runner
	ctx    context.Context
	logger *slog.Logger
	report Report
}

func (x *execution) register(L *lua.LState) {
	for name, fn := range map[string]lua.LGFunction{
		"push":        x.push,
		"hero_push":   x.heroPush,
		"place_hero":  x.placeHero,
		"face":        x.face,
		"set_casting": x.setCasting,
		"set_jumping": x.setJumping,
		"events_at":   x.eventsAt,
		"is_active":   x.isActive,
		"object_at":   x.objectAt,
		"objects":     x.objects,
		"fire":        x.fire,
		"log":         x.log,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func checkDirection(L *lua.LState, n int) geometry.Direction {
	d, err := geometry.ParseDirection(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return d
}

func (x *execution) hero(L *lua.LState) *world.Hero {
	if x.r.m.Hero == nil {
		L.RaiseError("map %s has no hero", x.r.m.Name)
	}
	return x.r.m.Hero
}

func (x *execution) object(L *lua.LState, n int) *world.InteractableObject {
	obj, err := x.r.m.Object(L.CheckString(n))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return obj
}

func (x *execution) pushResult(L *lua.LState, res push.Result) int {
	x.report.Pushes = append(x.report.Pushes, res)
	L.Push(lua.LString(res.Outcome))
	L.Push(lua.LString(res.Reason))
	return 2
}

// push(object_id, dir) moves an object without hero involvement.
func (x *execution) push(L *lua.LState) int {
	obj := x.object(L, 1)
	dir := checkDirection(L, 2)
	res, err := x.r.coord.TargetOnlyPush(x.ctx, obj, dir, push.Hooks{})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return x.pushResult(L, res)
}

// hero_push(object_id, dir) faces the hero towards dir and pushes.
func (x *execution) heroPush(L *lua.LState) int {
	obj := x.object(L, 1)
	dir := checkDirection(L, 2)
	h := x.hero(L)

	h.Facing = dir
	h.RequestPush(dir)
	res, err := x.r.coord.NormalPush(x.ctx, obj, push.Hooks{})
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	h.SyncTile(x.r.m.TileWidth, x.r.m.TileHeight)
	return x.pushResult(L, res)
}

func (x *execution) placeHero(L *lua.LState) int {
	h := x.hero(L)
	h.Place(L.CheckInt(1), L.CheckInt(2), x.r.m.TileWidth, x.r.m.TileHeight)
	return 0
}

func (x *execution) face(L *lua.LState) int {
	h := x.hero(L)
	h.Facing = checkDirection(L, 1)
	return 0
}

func (x *execution) setCasting(L *lua.LState) int {
	x.hero(L).Casting = L.CheckBool(1)
	return 0
}

func (x *execution) setJumping(L *lua.LState) int {
	x.hero(L).Jumping = L.CheckBool(1)
	return 0
}

// events_at(x, y) returns the ids of the events on a tile.
func (x *execution) eventsAt(L *lua.LState) int {
	t := L.NewTable()
	for _, e := range x.r.m.EventsAt(L.CheckInt(1), L.CheckInt(2)) {
		t.Append(lua.LNumber(e.ID()))
	}
	L.Push(t)
	return 1
}

// is_active(id, dir) reports the activation of an event.
func (x *execution) isActive(L *lua.LState) int {
	id := tileevent.ID(L.CheckInt(1))
	dir := checkDirection(L, 2)
	e, ok := x.r.m.Identity.Get(id)
	if !ok {
		L.RaiseError("%s", world.ErrEventUnregistered(id).Error())
	}
	L.Push(lua.LBool(e.IsActive(dir)))
	return 1
}

// object_at(id) returns the tile of an object.
func (x *execution) objectAt(L *lua.LState) int {
	obj := x.object(L, 1)
	L.Push(lua.LNumber(obj.CurrentX))
	L.Push(lua.LNumber(obj.CurrentY))
	return 2
}

// objects(pattern) returns, in id order, the ids of objects matching a glob.
func (x *execution) objects(L *lua.LState) int {
	pattern := L.OptString(1, "*")
	g, err := glob.Compile(pattern)
	if err != nil {
		L.ArgError(1, err.Error())
	}
	var ids []string
	for _, obj := range x.r.m.Objects() {
		if g.Match(obj.ID) {
			ids = append(ids, obj.ID)
		}
	}

	t := L.NewTable()
	for _, id := range ids {
		t.Append(lua.LString(id))
	}
	L.Push(t)
	return 1
}

// fire() fires the eligible events on the hero's tile.
func (x *execution) fire(L *lua.LState) int {
	h := x.hero(L)
	n, err := x.r.m.FireEligible(x.ctx, h, x.r.handler)
	x.report.Fired += n
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (x *execution) log(L *lua.LState) int {
	x.logger.InfoContext(x.ctx, L.CheckString(1))
	return 0
}
