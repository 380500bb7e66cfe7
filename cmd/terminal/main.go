// cmd/terminal/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"go-ufo-defense/internal/app"
	"go-ufo-defense/internal/config"
	"go-ufo-defense/internal/logging"
	"go-ufo-defense/internal/state"
	"go-ufo-defense/pkg/render"
)

var runeActions = map[rune]state.Action{
	' ': state.ActionVolley,
	'w': state.ActionUp,
	's': state.ActionDown,
	'a': state.ActionLeft,
	'd': state.ActionRight,
	'p': state.ActionPause,
	'r': state.ActionRestart,
	'v': state.ActionView,
	'q': state.ActionQuit,
}

var keyActions = map[tcell.Key]state.Action{
	tcell.KeyUp:     state.ActionUp,
	tcell.KeyDown:   state.ActionDown,
	tcell.KeyLeft:   state.ActionLeft,
	tcell.KeyRight:  state.ActionRight,
	tcell.KeyEscape: state.ActionPause,
	tcell.KeyEnter:  state.ActionRestart,
	tcell.KeyCtrlC:  state.ActionQuit,
}

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML config file, watched for changes")
	scenario := pflag.StringP("scenario", "s", "", "scenario name or YAML file")
	logPath := pflag.String("log-file", "ufo-defense.log", "where to write logs while the terminal is in use")
	pflag.Parse()

	if err := run(*configPath, *scenario, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, scenario, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	boot := logging.New(logging.Options{Out: logFile})
	reloads := make(chan *config.Config, 1)
	cfg, err := loadConfig(configPath, boot, reloads)
	if err != nil {
		return err
	}
	if scenario != "" {
		cfg.Game.Scenario = scenario
	}
	logger := logging.New(logging.Options{Level: cfg.Log.Level, Out: logFile})
	logger.Info().Object("config", cfg).Msg("Starting in terminal")

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen, render.Palette{
		Background: config.BackgroundColor,
		TextLight:  config.TextLightColor,
		TextDark:   config.TextDarkColor,
		Panel:      config.PanelColor,
	}, cfg.Screen.Width)

	game, err := app.NewFromConfig(cfg, renderer, logger)
	if err != nil {
		return err
	}

	input := state.NewActionQueue()
	sm := state.NewStateMachine(logging.Component(logger, "state"))
	playing := state.NewPlayingState(sm, game, input, nil, logging.Component(logger, "state"))
	sm.SetState(playing)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	quit := make(chan struct{})
	go pollInput(screen, input, quit)

	ticker := time.NewTicker(cfg.Scheduler.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Interrupted")
			return nil
		case <-quit:
			logger.Info().Msg("Quit")
			return nil
		case next := <-reloads:
			game.ApplyConfig(next)
		case <-ticker.C:
			sm.Update()
			input.Flush()
			panel, bg, _ := sm.CurrentOverlay()
			renderer.Draw(playing.HUD(), panel, bg)
		}
	}
}

// pollInput turns terminal keys into actions until the quit key.
func pollInput(screen tcell.Screen, input *state.ActionQueue, quit chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			// Screen finalised.
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			a, ok := keyActions[ev.Key()]
			if !ok && ev.Key() == tcell.KeyRune {
				a, ok = runeActions[unicode.ToLower(ev.Rune())]
			}
			if !ok {
				continue
			}
			if a == state.ActionQuit {
				close(quit)
				return
			}
			input.Push(a)
		}
	}
}

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
