// cmd/game/main.go
package main

import (
	"errors"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"go-ufo-defense/internal/app"
	"go-ufo-defense/internal/config"
	"go-ufo-defense/internal/logging"
	"go-ufo-defense/internal/state"
	"go-ufo-defense/pkg/render"
)

type AppGame struct {
	stateMachine *state.StateMachine
	game         *app.Game
	input        state.Input
	reloads      <-chan *config.Config
	width        int
	height       int
}

func (a *AppGame) Update() error {
	if a.input.JustPressed(state.ActionQuit) {
		return ebiten.Termination
	}
	select {
	case cfg := <-a.reloads:
		a.game.ApplyConfig(cfg)
	default:
	}
	a.stateMachine.Update()
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML config file, watched for changes")
	scenario := pflag.StringP("scenario", "s", "", "scenario name or YAML file")
	pflag.Parse()

	boot := logging.New(logging.Options{Console: true})
	reloads := make(chan *config.Config, 1)
	cfg, err := loadConfig(*configPath, boot, reloads)
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to load config")
	}
	if *scenario != "" {
		cfg.Game.Scenario = *scenario
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Console: cfg.Log.Console})
	logger.Info().Object("config", cfg).Msg("Starting")

	renderer, err := render.NewScreenRenderer(cfg.Screen.Width, cfg.Screen.Height, render.Palette{
		Background: config.BackgroundColor,
		TextLight:  config.TextLightColor,
		TextDark:   config.TextDarkColor,
		Panel:      config.PanelColor,
		Outline:    true,
	}, config.HUDFontSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create renderer")
	}

	game, err := app.NewFromConfig(cfg, renderer, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build game")
	}

	input := state.NewKeyboardInput()
	sm := state.NewStateMachine(logging.Component(logger, "state"))
	sm.SetState(state.NewPlayingState(sm, game, input, renderer, logging.Component(logger, "state")))

	a := &AppGame{
		stateMachine: sm,
		game:         game,
		input:        input,
		reloads:      reloads,
		width:        cfg.Screen.Width,
		height:       cfg.Screen.Height,
	}
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("UFO Defense")
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error().Err(err).Msg("Game stopped")
		os.Exit(1)
	}
}

// loadConfig reads defaults and environment, plus the file if one is given.
// A file is watched and valid changes are queued on reloads; only the newest
// pending change is kept.
func loadConfig(path string, logger zerolog.Logger, reloads chan *config.Config) (*config.Config, error) {
	if path == "" {
		return config.Load("")
	}
	return config.Watch(path, logger, func(_ fsnotify.Event, cfg *config.Config) {
		select {
		case <-reloads:
		default:
		}
		reloads <- cfg
	})
}
