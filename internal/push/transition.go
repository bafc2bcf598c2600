// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/world"
)

type transition struct {
	body *world.Body
	dest world.Point
}

// transitions computes the destination of every body that moves with obj.
// Hero-bound bodies snap the axis that does not move to the centre of the
// hero's tile; the moving axis is shifted by the push distance.
func (c *Coordinator) transitions(obj *world.InteractableObject, hero *world.Hero, dir geometry.Direction, shift world.Point) []transition {
	dx, dy := geometry.UnitVector(dir)

	pos := obj.Body.Position()
	out := []transition{{body: obj.Body, dest: world.Point{X: pos.X + shift.X, Y: pos.Y + shift.Y}}}
	if hero == nil {
		return out
	}

	for _, b := range []*world.Body{hero.Shadow, hero.Body} {
		if b == nil {
			continue
		}
		p := b.Position()
		dest := world.Point{X: p.X + shift.X, Y: p.Y + shift.Y}
		if dx == 0 {
			dest.X = world.CenteredPos(hero.TileX, c.m.TileWidth)
		}
		if dy == 0 {
			dest.Y = world.CenteredPos(hero.TileY, c.m.TileHeight)
		}
		out = append(out, transition{body: b, dest: dest})
	}
	return out
}

// pixelShift is the offset bodies slide by when pushed towards dir.
func (c *Coordinator) pixelShift(dir geometry.Direction) world.Point {
	dx, dy := geometry.UnitVector(dir)
	return world.Point{X: float64(dx) * c.shift, Y: float64(dy) * c.shift}
}

// await issues every transition and blocks until all of them completed.
func (c *Coordinator) await(ctx context.Context, transitions []transition) {
	var g errgroup.Group
	for _, t := range transitions {
		done := c.tweener.Tween(ctx, t.body, t.dest, c.duration)
		g.Go(func() error {
			<-done
			return nil
		})
	}
	_ = g.Wait()
}
