// internal/config/constants.go
package config

import (
	"image/color"
	"math"
	"time"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900

	FrameInterval    = time.Second / 60
	MaxFrameDelta    = 100 * time.Millisecond
	CompactThreshold = 64

	ShotCount    = 100   // Пар выстрелов в одном залпе
	ShotSpeed    = 0.3   // единиц за мс
	GameOverHits = 20    // Попаданий по щиту до конца игры
	EnvPrefix    = "UFO" // UFO_TURRET_DEADBAND и т.п.

	// AngularSpeed is the game's turret slew rate in rad/s. Patrolling UFOs
	// sweep across the sky faster than the stock turret can follow.
	AngularSpeed = math.Pi / 2

	HUDFontSize = 14
)

var (
	BackgroundColor = color.RGBA{0x88, 0xAA, 0xCC, 255} // туман над полем
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	PausedColor     = color.RGBA{70, 130, 180, 220}
	GameOverColor   = color.RGBA{220, 60, 60, 220}
	PanelColor      = color.RGBA{20, 20, 30, 160}
)
