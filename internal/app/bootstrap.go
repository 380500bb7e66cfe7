package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"go-ufo-defense/internal/config"
	"go-ufo-defense/internal/defs"
	"go-ufo-defense/internal/logging"
	"go-ufo-defense/internal/scheduler"
)

// NewFromConfig loads the configured scenario and builds the scheduler and
// game around it. The scheduler runs on the system clock.
func NewFromConfig(cfg *config.Config, backend Backend, logger zerolog.Logger) (*Game, error) {
	scenario, err := defs.LoadScenario(cfg.Game.Scenario)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	sched := scheduler.New(nil,
		scheduler.WithLogger(logging.Component(logger, "scheduler")),
		scheduler.WithMaxFrameDelta(cfg.Scheduler.MaxFrameDelta),
		scheduler.WithCompactThreshold(cfg.Scheduler.CompactThreshold),
	)
	return NewGame(sched, backend, OptionsFromConfig(cfg, scenario, logging.Component(logger, "game")))
}

// ApplyConfig takes the reloadable settings from cfg. Volley settings apply
// to the next volley; turret and hit limit changes wait for the next Reset.
func (g *Game) ApplyConfig(cfg *config.Config) {
	if err := g.SetTurretParams(cfg.TurretParams()); err != nil {
		g.logger.Warn().Err(err).Msg("Rejected turret settings")
		return
	}
	g.opts.ShotCount = cfg.Game.ShotCount
	g.opts.ShotSpeed = cfg.Game.ShotSpeed
	g.opts.GameOverHits = cfg.Game.GameOverHits
	g.logger.Info().
		Int("shot_count", g.opts.ShotCount).
		Float64("angular_speed", g.opts.Turret.AngularSpeed).
		Msg("Settings applied")
}
