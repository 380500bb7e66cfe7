package turret

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Params is the static geometry and tuning of a turret.
type Params struct {
	// BarrelLength is the distance from the yaw pivot down to the barrel
	// axis. It is also the turning radius used by the aiming solution.
	BarrelLength float64
	BaseRadius   float64
	PoleWidth    float64
	// BarrelExit is how far a projectile travels along the barrel before
	// it is released into the world.
	BarrelExit float64
	// AngularSpeed is the maximum rotation rate per axis in rad/s.
	AngularSpeed float64
	// Deadband is the angular error below which an axis is left alone.
	Deadband         float64
	ShotTimeout      time.Duration
	ProjectileRadius float64
}

// DefaultParams returns the stock turret.
func DefaultParams() Params {
	return Params{
		BarrelLength:     15,
		BaseRadius:       5,
		PoleWidth:        3,
		BarrelExit:       50,
		AngularSpeed:     math.Pi / 20,
		Deadband:         math.Pi / 1800,
		ShotTimeout:      5 * time.Second,
		ProjectileRadius: 2,
	}
}

// Validate reports the first unusable field.
func (p Params) Validate() error {
	switch {
	case p.BarrelLength < 0:
		return fmt.Errorf("barrel length %v is negative", p.BarrelLength)
	case p.BarrelExit <= 0:
		return fmt.Errorf("barrel exit %v must be positive", p.BarrelExit)
	case p.AngularSpeed < 0:
		return fmt.Errorf("angular speed %v is negative", p.AngularSpeed)
	case p.Deadband <= 0:
		return fmt.Errorf("deadband %v must be positive", p.Deadband)
	case p.ShotTimeout <= 0:
		return errors.New("shot timeout must be positive")
	case p.ProjectileRadius <= 0:
		return fmt.Errorf("projectile radius %v must be positive", p.ProjectileRadius)
	}
	return nil
}
