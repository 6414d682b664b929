// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

type recordingSink struct {
	commands []engine.Command
}

func (s *recordingSink) Submit(cmd engine.Command) {
	s.commands = append(s.commands, cmd)
}

func TestInputSystem_Press(t *testing.T) {
	tests := []struct {
		button   string
		want     engine.Command
		wantQuit bool
	}{
		{ButtonStart, engine.Command{Type: engine.CmdStart}, false},
		{ButtonPause, engine.Command{Type: engine.CmdTogglePause}, false},
		{ButtonQuit, engine.Command{Type: engine.CmdQuit}, true},
		{ButtonPeashooter, engine.Command{Type: engine.CmdSelect, Kind: entity.Peashooter}, false},
		{ButtonFrostShooter, engine.Command{Type: engine.CmdSelect, Kind: entity.FrostShooter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.button, func(t *testing.T) {
			sink := &recordingSink{}
			quit := false
			is := NewInputSystem(sink, NewViewport(1200, 800, 1200, 800), func() { quit = true })

			is.Press(tt.button)
			if len(sink.commands) != 1 || sink.commands[0] != tt.want {
				t.Errorf("expected [%v], got %v", tt.want, sink.commands)
			}
			if quit != tt.wantQuit {
				t.Errorf("quit callback ran = %v, want %v", quit, tt.wantQuit)
			}
		})
	}
}

func TestInputSystem_UnknownButton(t *testing.T) {
	sink := &recordingSink{}
	is := NewInputSystem(sink, NewViewport(1200, 800, 1200, 800), nil)
	is.Press("zoom")
	if len(sink.commands) != 0 {
		t.Errorf("expected no commands, got %v", sink.commands)
	}
}

func TestInputSystem_MouseDragCycle(t *testing.T) {
	sink := &recordingSink{}
	is := NewInputSystem(sink, NewViewport(1200, 800, 600, 400), nil)

	is.Mouse(engo.Move, 50, 50) // hovering does nothing
	is.Mouse(engo.Press, 115, 325)
	is.Mouse(engo.Press, 115, 325) // a held button is not a second click
	is.Mouse(engo.Move, 150, 200)
	is.Mouse(engo.Release, 170, 250)
	is.Mouse(engo.Move, 180, 250)

	want := []engine.Command{
		{Type: engine.CmdClick, Point: physics.Pt(230, 650)},
		{Type: engine.CmdDrag, Point: physics.Pt(300, 400)},
		{Type: engine.CmdRelease, Point: physics.Pt(340, 500)},
	}
	if len(sink.commands) != len(want) {
		t.Fatalf("expected %d commands, got %v", len(want), sink.commands)
	}
	for i := range want {
		if sink.commands[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, sink.commands[i], want[i])
		}
	}
}

func TestInputSystem_DrivesPlacement(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Economy.StartCredits = 100
	game := engine.NewGame(cfg, engine.NewRand(3), nil)
	game.Start()
	if err := game.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	is := NewInputSystem(game, NewViewport(1200, 800, 1200, 800), nil)
	is.Mouse(engo.Press, 230, 650)
	is.Mouse(engo.Move, 340, 510)
	is.Mouse(engo.Release, 347, 512)
	if err := game.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	s := game.Snapshot()
	if len(s.Defenders) != 1 {
		t.Fatalf("expected one defender, got %d", len(s.Defenders))
	}
	if s.Defenders[0].Position != physics.Pt(300, 500) {
		t.Errorf("defender at %v, want (300, 500)", s.Defenders[0].Position)
	}
}
