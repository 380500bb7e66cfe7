// internal/app/ufo.go
package app

import (
	"math"
	"time"

	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/internal/turret"
	"go-ufo-defense/internal/utils"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// UFO is a spinning saucer carrying one turret. Node is what moves; only
// Body spins, so the turret's aim is not disturbed by the spin.
type UFO struct {
	Name   string
	Node   *scene.Node
	Body   *scene.Node
	Turret *turret.Controller

	proto  *scene.Node
	offset vecmath.Vec3
}

func newUFO(name string, proto *scene.Node, gun *turret.Controller, turretOffset vecmath.Vec3) *UFO {
	u := &UFO{
		Name:   name,
		Node:   scene.NewGroup(name),
		Body:   proto.Clone(),
		Turret: gun,
		proto:  proto,
		offset: turretOffset,
	}
	u.Body.Position = vecmath.Vec3{}
	u.Body.Rotation = vecmath.Euler{}

	mount := gun.Node()
	mount.Position = turretOffset
	mount.Rotation = vecmath.Euler{}

	u.Node.Add(u.Body, mount)
	return u
}

// Clone builds another UFO from the same body prototype with a cloned
// turret.
func (u *UFO) Clone(name string) *UFO {
	return newUFO(name, u.proto, u.Turret.Clone(turret.WithName(name)), u.offset)
}

// SetPos places the UFO and returns it for chaining.
func (u *UFO) SetPos(p vecmath.Vec3) *UFO {
	u.Node.Position = p
	return u
}

// spinTask turns the body at degPerSec forever.
func (u *UFO) spinTask(degPerSec float64) scheduler.TaskFunc {
	rate := degPerSec * math.Pi / 180
	return func(dt time.Duration) scheduler.Result {
		u.Body.Rotation.Y = utils.NormalizeAngle(u.Body.Rotation.Y + dt.Seconds()*rate)
		return scheduler.Continue
	}
}

// patrolTask wanders one axis of the UFO between random waypoints within
// base±spread at speed units per millisecond.
func (u *UFO) patrolTask(axis int, base, spread, speed float64, rng *utils.PRNGService) scheduler.TaskFunc {
	next := u.Node.Position.Component(axis)
	return func(dt time.Duration) scheduler.Result {
		cur := u.Node.Position.Component(axis)
		if cur == next {
			next = rng.Around(base, spread)
		}
		setComponent(&u.Node.Position, axis, utils.MoveToward(cur, next, speed*millis(dt)))
		return scheduler.Continue
	}
}

func setComponent(v *vecmath.Vec3, axis int, x float64) {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
}

func millis(dt time.Duration) float64 {
	return float64(dt) / float64(time.Millisecond)
}
