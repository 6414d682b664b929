// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
)

// Button names registered by SetupInputBindings.
const (
	ButtonStart        = "start"
	ButtonPause        = "pause"
	ButtonQuit         = "quit"
	ButtonPeashooter   = "peashooter"
	ButtonFrostShooter = "frostshooter"
)

// CommandSink receives player commands. *engine.Game implements it.
type CommandSink interface {
	Submit(cmd engine.Command)
}

// buttonCommands maps each button to the command it submits, in the order
// they are checked.
var buttonCommands = []struct {
	button string
	cmd    engine.Command
}{
	{ButtonStart, engine.Command{Type: engine.CmdStart}},
	{ButtonPause, engine.Command{Type: engine.CmdTogglePause}},
	{ButtonPeashooter, engine.Command{Type: engine.CmdSelect, Kind: entity.Peashooter}},
	{ButtonFrostShooter, engine.Command{Type: engine.CmdSelect, Kind: entity.FrostShooter}},
	{ButtonQuit, engine.Command{Type: engine.CmdQuit}},
}

// InputSystem turns engo keyboard and mouse state into game commands.
type InputSystem struct {
	sink     CommandSink
	viewport *Viewport
	onQuit   func()
	dragging bool
}

// NewInputSystem creates an input system. onQuit runs after a quit command
// was submitted.
func NewInputSystem(sink CommandSink, viewport *Viewport, onQuit func()) *InputSystem {
	return &InputSystem{sink: sink, viewport: viewport, onQuit: onQuit}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update reads this frame's input.
func (is *InputSystem) Update(float32) {
	for _, bc := range buttonCommands {
		if engo.Input.Button(bc.button).JustPressed() {
			is.Press(bc.button)
		}
	}
	is.Mouse(engo.Input.Mouse.Action, engo.Input.Mouse.X, engo.Input.Mouse.Y)
}

// Press submits the command bound to button.
func (is *InputSystem) Press(button string) {
	for _, bc := range buttonCommands {
		if bc.button != button {
			continue
		}
		is.sink.Submit(bc.cmd)
		if bc.cmd.Type == engine.CmdQuit && is.onQuit != nil {
			is.onQuit()
		}
		return
	}
}

// Mouse maps a mouse action at window pixels (x, y): a press clicks and
// starts a drag, motion while dragging drags and the release ends it.
func (is *InputSystem) Mouse(action engo.Action, x, y float32) {
	pt := is.viewport.ScreenToWorld(x, y)
	switch {
	case action == engo.Press && !is.dragging:
		is.dragging = true
		is.sink.Submit(engine.Command{Type: engine.CmdClick, Point: pt})
	case action == engo.Move && is.dragging:
		is.sink.Submit(engine.Command{Type: engine.CmdDrag, Point: pt})
	case action == engo.Release && is.dragging:
		is.dragging = false
		is.sink.Submit(engine.Command{Type: engine.CmdRelease, Point: pt})
	}
}

// SetupInputBindings registers the game's keys with engo.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonStart, engo.KeyS, engo.KeyEnter)
	engo.Input.RegisterButton(ButtonPause, engo.KeyP)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyQ, engo.KeyEscape)
	engo.Input.RegisterButton(ButtonPeashooter, engo.KeyOne)
	engo.Input.RegisterButton(ButtonFrostShooter, engo.KeyTwo)
}
