// internal/utils/math.go
package utils

import "math"

// NormalizeAngle приводит угол к диапазону [-π, π]
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// StepToward returns the part of diff that may be covered this step: the
// sign of diff with magnitude min(|diff|, maxStep). It never overshoots.
func StepToward(diff, maxStep float64) float64 {
	if maxStep <= 0 || diff == 0 {
		return 0
	}
	return math.Copysign(math.Min(math.Abs(diff), maxStep), diff)
}

// MoveToward moves current toward target by at most maxStep.
func MoveToward(current, target, maxStep float64) float64 {
	return current + StepToward(target-current, maxStep)
}
