// pkg/render/input.go
package render

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
)

// CommandSink receives player commands. *engine.Game implements it.
type CommandSink interface {
	Submit(cmd engine.Command)
}

// TerminalInput turns tcell events into game commands.
type TerminalInput struct {
	renderer *TerminalRenderer
	sink     CommandSink
	dragging bool
}

// NewTerminalInput creates an input handler that maps mouse cells through
// renderer and submits commands to sink.
func NewTerminalInput(renderer *TerminalRenderer, sink CommandSink) *TerminalInput {
	return &TerminalInput{renderer: renderer, sink: sink}
}

// HandleEvent maps one event. It reports false once the player asked to quit.
func (in *TerminalInput) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.handleKey(ev)
	case *tcell.EventMouse:
		in.handleMouse(ev)
	case *tcell.EventResize:
		in.renderer.screen.Sync()
	}
	return true
}

func (in *TerminalInput) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.sink.Submit(engine.Command{Type: engine.CmdQuit})
		return false
	case tcell.KeyEnter:
		in.sink.Submit(engine.Command{Type: engine.CmdStart})
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 's', 'S':
		in.sink.Submit(engine.Command{Type: engine.CmdStart})
	case 'p', 'P':
		in.sink.Submit(engine.Command{Type: engine.CmdTogglePause})
	case 'q', 'Q':
		in.sink.Submit(engine.Command{Type: engine.CmdQuit})
		return false
	case '1':
		in.sink.Submit(engine.Command{Type: engine.CmdSelect, Kind: entity.Peashooter})
	case '2':
		in.sink.Submit(engine.Command{Type: engine.CmdSelect, Kind: entity.FrostShooter})
	}
	return true
}

// handleMouse turns a press into a click, motion with the button held into
// drags and the button coming up into a release.
func (in *TerminalInput) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pt := in.renderer.ScreenToWorld(x, y)
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !in.dragging:
		in.dragging = true
		in.sink.Submit(engine.Command{Type: engine.CmdClick, Point: pt})
	case held:
		in.sink.Submit(engine.Command{Type: engine.CmdDrag, Point: pt})
	case in.dragging:
		in.dragging = false
		in.sink.Submit(engine.Command{Type: engine.CmdRelease, Point: pt})
	}
}

// Listen polls the screen until ctx is done, the screen is finalised or the
// player quits.
func (in *TerminalInput) Listen(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := in.renderer.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !in.HandleEvent(ev) {
				return
			}
		}
	}
}
