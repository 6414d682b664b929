// cmd/lawndefense/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lawndefense/pkg/audio"
	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
	"github.com/opd-ai/go-lawndefense/pkg/render"
	engorender "github.com/opd-ai/go-lawndefense/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	// Create default configuration file if requested
	if opts.writeConfig {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", opts.configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", opts.configPath,
		)
		return
	}

	gameConfig, err := opts.loadConfig()
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", opts.configPath,
		)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(opts.logPath, gameConfig.Frontend.Renderer, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open log file", err, "log_path", opts.logPath)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game := engine.NewGame(gameConfig, engine.NewRand(gameConfig.Seed), logger)
	logger.Info(game.Context(), "Starting lawn defense",
		"renderer", gameConfig.Frontend.Renderer,
		"seed", gameConfig.Seed,
		"tick_ms", gameConfig.Timing.TickMillis,
	)

	switch gameConfig.Frontend.Renderer {
	case config.RendererHeadless:
		err = runHeadless(ctx, game, opts.ticks, os.Stdout, logger)
	case config.RendererEngo:
		closeAudio := startAudio(game, gameConfig.Audio, logger)
		defer closeAudio()
		err = engorender.Run(ctx, game, gameConfig.Frontend, logger)
	default:
		closeAudio := startAudio(game, gameConfig.Audio, logger)
		defer closeAudio()
		err = runTerminal(ctx, game, gameConfig)
	}

	if err != nil && !errors.Is(err, engine.ErrQuit) && !errors.Is(err, context.Canceled) {
		logger.Error(game.Context(), "Game stopped with an error", err)
		os.Exit(1)
	}
	logger.Info(game.Context(), "Shutting down")
}

// openLogger picks the logger for the chosen frontend. A log path gets text
// output appended to that file. Without one the terminal frontend discards
// logs, since stderr shares the tty with the game screen, and the other
// frontends keep fallback.
func openLogger(path, renderer string, fallback *logging.Logger) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fallback, func() {}, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewLoggerWithWriter(f, logging.FormatText), func() { f.Close() }, nil
	}
	if renderer == config.RendererTerminal {
		return logging.Discard(), func() {}, nil
	}
	return fallback, func() {}, nil
}

// startAudio wires the clip player to the game's events. Audio problems are
// logged and the game continues silently.
func startAudio(game *engine.Game, cfg config.AudioConfig, logger *logging.Logger) func() {
	if !cfg.Enabled {
		return func() {}
	}
	player := audio.NewPlayer(cfg.Dir, logger)
	player.SetContext(game.Context())
	if err := player.Init(); err != nil {
		return func() {}
	}
	player.Preload(audio.Clips()...)

	director := audio.NewDirector(player, logger)
	director.SetContext(game.Context())
	director.Attach(game.EventBus)
	return func() {
		director.Detach()
		player.Close()
	}
}

// runTerminal plays in the terminal until the player quits or ctx ends.
func runTerminal(ctx context.Context, game *engine.Game, cfg *config.GameConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := render.NewTerminalRenderer(screen, cfg.Screen.Width, cfg.Screen.Height)
	input := render.NewTerminalInput(renderer, game)
	go func() {
		input.Listen(ctx)
		cancel()
	}()

	return game.Run(ctx, renderer)
}

// runHeadless plays without a display. With ticks > 0 it starts the game,
// advances exactly that many frames as fast as possible and prints the
// result; otherwise it runs paced until ctx ends.
func runHeadless(ctx context.Context, game *engine.Game, ticks int, out io.Writer, logger *logging.Logger) error {
	renderer := render.NewNullRenderer(logger)
	renderer.SetContext(game.Context())
	game.Start()

	if ticks == 0 {
		err := game.Run(ctx, renderer)
		printSummary(out, game.Snapshot())
		return err
	}

	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := game.Frame(); err != nil {
			return err
		}
		renderer.Render(game.Snapshot())
	}
	printSummary(out, game.Snapshot())
	return nil
}

func printSummary(out io.Writer, s *engine.Snapshot) {
	fmt.Fprintf(out, "state=%s tick=%d score=%d level=%d credits=%d\n",
		s.State, s.Tick, s.Score, s.Level, s.Credits)
}
