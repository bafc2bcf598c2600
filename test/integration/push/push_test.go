// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package push_test

import (
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/location"
	"github.com/holomush/tileworld/internal/mapdata"
	"github.com/holomush/tileworld/internal/push"
	"github.com/holomush/tileworld/internal/script"
	"github.com/holomush/tileworld/internal/world"
)

var _ = Describe("Pushing objects", func() {
	var env *testEnv

	BeforeEach(func() {
		env = setupPushTestEnv()
	})

	AfterEach(func() {
		env.cleanup()
	})

	Describe("Normal push", func() {
		var res push.Result

		BeforeEach(func() {
			env.m.Hero.RequestPush(geometry.Right)
			var err error
			res, err = env.coord.NormalPush(env.ctx, env.object("boulder"), push.Hooks{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Pushed()).To(BeTrue())
		})

		It("moves the object and its events one tile", func() {
			boulder := env.object("boulder")
			Expect(boulder.CurrentX).To(Equal(4))
			Expect(boulder.CurrentY).To(Equal(3))

			Expect(env.m.Events.Has(location.Encode(3, 3))).To(BeFalse())
			moved := env.m.EventsAt(4, 3)
			Expect(moved).To(HaveLen(1))
			Expect(moved[0].X()).To(Equal(4))
			Expect(moved[0].Origin()).To(Equal("boulder"))
			Expect(env.m.Events.Check()).To(Succeed())
		})

		It("reconciles the jumps around the old and new tiles", func() {
			Expect(res.JumpsDeactivated).To(Equal(1))
			Expect(res.JumpsActivated).To(Equal(1))
			Expect(env.jumpAt(1, 3).IsActive(geometry.Right)).To(BeFalse())
			Expect(env.jumpAt(6, 3).IsActive(geometry.Left)).To(BeTrue())
			Expect(env.jumpAt(7, 3).IsActive(geometry.Left)).To(BeFalse(), "outside the ring")
		})

		It("animates the object and the hero by one tile", func() {
			Expect(env.object("boulder").Body.Position()).To(Equal(world.Point{X: 72, Y: 56}))
			Expect(env.m.Hero.Body.Position()).To(Equal(world.Point{X: 56, Y: 56}))
			Expect(env.m.Hero.Shadow.Position()).To(Equal(world.Point{X: 56, Y: 56}))

			env.m.Hero.SyncTile(env.m.TileWidth, env.m.TileHeight)
			Expect(env.m.Hero.TileX).To(Equal(3))
		})

		It("pauses physics exactly once and resumes it", func() {
			stats := env.sim.Stats()
			Expect(stats.Pauses).To(Equal(1))
			Expect(stats.Paused).To(BeFalse())
			Expect(env.engine.Pending()).To(BeZero())
		})

		It("walks the state machine back to idle", func() {
			Expect(env.states).To(Equal([]push.State{
				push.StateValidatingDirection,
				push.StateRelocating,
				push.StateAwaitingVisualCompletion,
				push.StateIdle,
			}))
		})
	})

	Describe("Rejected push", func() {
		It("leaves the world untouched when the hero faces away", func() {
			env.m.Hero.Facing = geometry.Up
			env.m.Hero.RequestPush(geometry.Right)

			res, err := env.coord.NormalPush(env.ctx, env.object("boulder"), push.Hooks{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(push.ReasonFacingMismatch))
			Expect(env.object("boulder").CurrentX).To(Equal(3))
			Expect(env.jumpAt(1, 3).IsActive(geometry.Right)).To(BeTrue())
			Expect(env.sim.Stats().Pauses).To(BeZero())
		})
	})

	Describe("Reentrancy", func() {
		It("refuses a second push of an object that is still moving", func() {
			boulder := env.object("boulder")
			var inner push.Result

			res, err := env.coord.TargetOnlyPush(env.ctx, boulder, geometry.Right, push.Hooks{
				BeforeMove: func(world.Point) {
					var err error
					inner, err = env.coord.TargetOnlyPush(env.ctx, boulder, geometry.Right, push.Hooks{})
					Expect(err).NotTo(HaveOccurred())
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Pushed()).To(BeTrue())
			Expect(inner.Reason).To(Equal(push.ReasonInProgress))
			Expect(boulder.CurrentX).To(Equal(4))
		})

		It("accepts a chained push from the end hook", func() {
			boulder := env.object("boulder")
			var chained push.Result

			_, err := env.coord.TargetOnlyPush(env.ctx, boulder, geometry.Right, push.Hooks{
				OnEnd: func() {
					var err error
					chained, err = env.coord.TargetOnlyPush(env.ctx, boulder, geometry.Down, push.Hooks{})
					Expect(err).NotTo(HaveOccurred())
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(chained.Pushed()).To(BeTrue())
			Expect([]int{boulder.CurrentX, boulder.CurrentY}).To(Equal([]int{4, 4}))
			Expect(env.m.EventsAt(4, 4)).To(HaveLen(1))
			Expect(env.m.Events.Check()).To(Succeed())
		})
	})

	Describe("Scripted pushes", func() {
		It("drives target-only pushes from Lua", func() {
			runner := script.NewRunner(env.m, env.coord)

			report, err := runner.Run(env.ctx, "falls", `
				assert(push("boulder", "right") == "pushed")
				assert(push("boulder", "right") == "pushed")
				local x, y = object_at("boulder")
				assert(x == 5 and y == 3)
				assert(#events_at(5, 3) == 1)
			`)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Pushes).To(HaveLen(2))
			Expect(report.Pushes[0].Mode).To(Equal(push.ModeTargetOnly))
			Expect(env.sim.Stats().Pauses).To(Equal(2))
		})
	})

	Describe("Reloading a map", func() {
		It("resets the identity registry once per load", func() {
			before := env.identity.Resets()

			m, err := mapdata.Load([]byte(fallsMap), env.identity, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(env.identity.Resets()).To(Equal(before + 1))
			Expect(env.identity.Len()).To(Equal(m.Events.Len()))
		})
	})
})
