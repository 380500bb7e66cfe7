// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"go-ufo-defense/internal/turret"
)

// Config is the runtime configuration. Every key has a default; a YAML file
// and UFO_* environment variables override them, in that order.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Turret    TurretConfig    `mapstructure:"turret"`
	Game      GameConfig      `mapstructure:"game"`
	Screen    ScreenConfig    `mapstructure:"screen"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type SchedulerConfig struct {
	MaxFrameDelta    time.Duration `mapstructure:"maxFrameDelta"`
	FrameInterval    time.Duration `mapstructure:"frameInterval"`
	CompactThreshold int           `mapstructure:"compactThreshold"`
}

type TurretConfig struct {
	BarrelLength     float64       `mapstructure:"barrelLength"`
	BaseRadius       float64       `mapstructure:"baseRadius"`
	PoleWidth        float64       `mapstructure:"poleWidth"`
	BarrelExit       float64       `mapstructure:"barrelExit"`
	AngularSpeed     float64       `mapstructure:"angularSpeed"` // rad/s
	Deadband         float64       `mapstructure:"deadband"`     // rad
	ShotTimeout      time.Duration `mapstructure:"shotTimeout"`
	ProjectileRadius float64       `mapstructure:"projectileRadius"`
}

type GameConfig struct {
	ShotCount    int     `mapstructure:"shotCount"`
	ShotSpeed    float64 `mapstructure:"shotSpeed"`
	GameOverHits int     `mapstructure:"gameOverHits"`
	Scenario     string  `mapstructure:"scenario"`
	Seed         int64   `mapstructure:"seed"`
}

type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

func setDefaults(v *viper.Viper) {
	tp := turret.DefaultParams()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("scheduler.maxFrameDelta", MaxFrameDelta)
	v.SetDefault("scheduler.frameInterval", FrameInterval)
	v.SetDefault("scheduler.compactThreshold", CompactThreshold)

	v.SetDefault("turret.barrelLength", tp.BarrelLength)
	v.SetDefault("turret.baseRadius", tp.BaseRadius)
	v.SetDefault("turret.poleWidth", tp.PoleWidth)
	v.SetDefault("turret.barrelExit", tp.BarrelExit)
	v.SetDefault("turret.angularSpeed", AngularSpeed)
	v.SetDefault("turret.deadband", tp.Deadband)
	v.SetDefault("turret.shotTimeout", tp.ShotTimeout)
	v.SetDefault("turret.projectileRadius", tp.ProjectileRadius)

	v.SetDefault("game.shotCount", ShotCount)
	v.SetDefault("game.shotSpeed", ShotSpeed)
	v.SetDefault("game.gameOverHits", GameOverHits)
	v.SetDefault("game.scenario", "default")
	v.SetDefault("game.seed", 0)

	v.SetDefault("screen.width", ScreenWidth)
	v.SetDefault("screen.height", ScreenHeight)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load builds the configuration. An empty path means defaults and
// environment only; a path that cannot be read is an error.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch loads path and calls fn with the re-decoded configuration every
// time the file changes. fn runs on the watcher goroutine. Changes that no
// longer decode or validate are logged and skipped.
func Watch(path string, logger zerolog.Logger, fn func(fsnotify.Event, *Config)) (*Config, error) {
	if path == "" {
		return nil, errors.New("watch needs a config file")
	}
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config change")
			return
		}
		logger.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config reloaded")
		fn(e, next)
	})
	v.WatchConfig()
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	if err := c.TurretParams().Validate(); err != nil {
		return fmt.Errorf("turret: %w", err)
	}
	switch {
	case c.Scheduler.FrameInterval <= 0:
		return fmt.Errorf("scheduler.frameInterval %v must be positive", c.Scheduler.FrameInterval)
	case c.Scheduler.MaxFrameDelta < 0:
		return fmt.Errorf("scheduler.maxFrameDelta %v is negative", c.Scheduler.MaxFrameDelta)
	case c.Game.ShotCount < 0:
		return fmt.Errorf("game.shotCount %d is negative", c.Game.ShotCount)
	case c.Game.ShotSpeed <= 0 || math.IsNaN(c.Game.ShotSpeed):
		return fmt.Errorf("game.shotSpeed %v must be positive", c.Game.ShotSpeed)
	case c.Game.GameOverHits <= 0:
		return fmt.Errorf("game.gameOverHits %d must be positive", c.Game.GameOverHits)
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen %dx%d is empty", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// TurretParams maps the turret section onto turret.Params.
func (c *Config) TurretParams() turret.Params {
	t := c.Turret
	return turret.Params{
		BarrelLength:     t.BarrelLength,
		BaseRadius:       t.BaseRadius,
		PoleWidth:        t.PoleWidth,
		BarrelExit:       t.BarrelExit,
		AngularSpeed:     t.AngularSpeed,
		Deadband:         t.Deadband,
		ShotTimeout:      t.ShotTimeout,
		ProjectileRadius: t.ProjectileRadius,
	}
}

// MarshalZerologObject logs the settings worth seeing at startup.
func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("log.level", c.Log.Level).
		Dur("scheduler.frameInterval", c.Scheduler.FrameInterval).
		Float64("turret.angularSpeed", c.Turret.AngularSpeed).
		Dur("turret.shotTimeout", c.Turret.ShotTimeout).
		Int("game.shotCount", c.Game.ShotCount).
		Int("game.gameOverHits", c.Game.GameOverHits).
		Str("game.scenario", c.Game.Scenario)
}
