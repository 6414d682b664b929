// pkg/render/engo/scene.go
package engo

import (
	"context"
	"errors"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

// WindowTitle is the title of the game window.
const WindowTitle = "Lawn Defense"

// hudFontSize is the HUD font size in points before scaling.
const hudFontSize = 22

// Game is what the scene needs from the simulation.
type Game interface {
	SnapshotSource
	CommandSink
}

// GameScene is the engo scene showing one game.
type GameScene struct {
	game     Game
	logger   *logging.Logger
	ctx      context.Context
	viewport *Viewport
	assets   *AssetManager

	renderer *EngoRenderer
	hud      *HUDSystem
	input    *InputSystem
}

// NewGameScene creates a scene for game drawn in a width x height window.
func NewGameScene(game Game, width, height int, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		game:     game,
		logger:   logger,
		ctx:      context.Background(),
		viewport: NewViewport(entity.FieldWidth, entity.FieldHeight, float32(width), float32(height)),
		assets:   NewAssetManager(),
	}
}

// SetContext sets the context used for log correlation.
func (scene *GameScene) SetContext(ctx context.Context) {
	scene.ctx = ctx
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.Preload(); err != nil {
		scene.logger.Error(scene.ctx, "Failed to preload assets", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(scene.ctx, "Unexpected updater", errors.New("not an ecs.World"))
		return
	}
	common.SetBackground(colorHouse)
	SetupInputBindings()

	rs := &common.RenderSystem{}
	world.AddSystem(rs)
	for _, t := range lawnTiles(scene.viewport) {
		rs.Add(&t.BasicEntity, &t.RenderComponent, &t.SpaceComponent)
	}

	font, err := scene.assets.LoadFont(hudFontSize * float64(scene.viewport.Scale()))
	if err != nil {
		scene.logger.Warn(scene.ctx, "HUD text disabled", "error", err)
	}

	scene.renderer = NewEngoRenderer(rs, scene.game, scene.assets, scene.viewport)
	scene.hud = NewHUDSystem(rs, scene.game, scene.viewport, font)
	scene.input = NewInputSystem(scene.game, scene.viewport, engo.Exit)
	world.AddSystem(scene.input)
	world.AddSystem(scene.renderer)
	world.AddSystem(scene.hud)

	scene.logger.Info(scene.ctx, "Scene ready", "scale", scene.viewport.Scale())
}

// Exit is called when the window closes. It asks the game to stop.
func (scene *GameScene) Exit() {
	scene.game.Submit(engine.Command{Type: engine.CmdQuit})
}

// Run opens the game window and runs game in the background until either
// the window closes or the game stops. It blocks on the calling goroutine,
// which must be the main one.
func Run(ctx context.Context, game *engine.Game, cfg config.FrontendConfig, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := game.Run(ctx, nil)
		done <- err
		if !errors.Is(err, context.Canceled) {
			engo.Exit()
		}
	}()

	scene := NewGameScene(game, cfg.Width, cfg.Height, logger)
	scene.SetContext(ctx)
	engo.Run(engo.RunOptions{
		Title:        WindowTitle,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Fullscreen:   cfg.Fullscreen,
		NotResizable: true,
	}, scene)

	cancel()
	err := <-done
	if errors.Is(err, engine.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
