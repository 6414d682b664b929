package render

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// hudRows is the number of terminal rows reserved below the lawn.
const hudRows = 2

// Terminal colours.
var (
	styleDefault   = tcell.StyleDefault
	styleLawn      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(40, 110, 40))
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleGuide     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleSun       = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 220, 0)).Bold(true)
	styleFrozen    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 200, 255))
	styleFrostShot = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 200, 255))
	styleShot      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 230, 80))
	stylePreview   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Intro and overlay text.
const (
	TitleText   = "LAWN DEFENSE"
	IntroText   = "S start   P pause   Q quit   1/2 pick a plant"
	PausedText  = " PAUSED - press P to resume "
	RestartText = " press S to play again "
)

// TerminalRenderer draws snapshots on a tcell screen, scaling the play
// field onto the cells above the HUD.
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	field  physics.Vector2D
	width  int
	height int
	scaleX float64
	scaleY float64
}

// NewTerminalRenderer creates a renderer for a field of fieldW x fieldH
// units on screen. The screen must already be initialised.
func NewTerminalRenderer(screen tcell.Screen, fieldW, fieldH int) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		field:  physics.Pt(fieldW, fieldH),
	}
	r.resize()
	return r
}

// resize recomputes the scale from the current screen size.
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	r.width = max(w, 1)
	r.height = max(h-hudRows, 1)
	r.scaleX = r.field.X / float64(r.width)
	r.scaleY = r.field.Y / float64(r.height)
}

// worldToScreen converts field coordinates to a cell.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(pos.X / r.scaleX), int(pos.Y / r.scaleY)
}

// ScreenToWorld converts a cell to the field point at its centre.
func (r *TerminalRenderer) ScreenToWorld(x, y int) physics.Vector2D {
	r.mu.Lock()
	defer r.mu.Unlock()
	return physics.Vector2D{
		X: (float64(x) + 0.5) * r.scaleX,
		Y: (float64(y) + 0.5) * r.scaleY,
	}
}

// Render implements engine.Renderer.
func (r *TerminalRenderer) Render(s *engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resize()
	r.screen.Clear()

	r.drawLawn()
	for _, c := range s.Candidates {
		r.drawCandidate(c, s.Credits, s.Costs)
	}
	for _, d := range s.Defenders {
		r.put(d.Position, defenderGlyph(d.Type), rgbStyle(d.Stats.Color))
	}
	for _, h := range s.Hostiles {
		r.drawHostile(h)
	}
	for _, p := range s.Projectiles {
		style := styleShot
		if p.Damage == entity.DamageFrost {
			style = styleFrostShot
		}
		r.put(p.Position, 'o', style)
	}
	for _, c := range s.Collectibles {
		r.put(c.Position, '*', styleSun)
	}
	for _, e := range s.Effects {
		r.put(e.Position, 'x', rgbStyle(e.Color))
	}
	if s.Preview != nil {
		r.put(s.Preview.Position, defenderGlyph(s.Preview.Type), stylePreview)
	}
	for _, b := range s.Banners {
		r.textCentered(b.Position, b.Text, styleBanner)
	}

	r.drawHUD(s)
	r.drawOverlay(s)
	r.screen.Show()
}

func (r *TerminalRenderer) drawLawn() {
	for laneY := 200; laneY <= 500; laneY += 100 {
		_, y := r.worldToScreen(physics.Pt(0, laneY))
		for x := 0; x < r.width; x++ {
			r.set(x, y, '.', styleLawn)
		}
	}
	_, top := r.worldToScreen(physics.Pt(0, 150))
	_, bottom := r.worldToScreen(physics.Pt(0, 550))
	bx, _ := r.worldToScreen(physics.Pt(entity.BreachX, 0))
	for y := top; y <= bottom; y++ {
		r.set(bx, y, '|', styleLawn)
	}
}

func (r *TerminalRenderer) drawCandidate(c entity.Candidate, credits int, costs map[entity.DefenderKind]int) {
	cost := costs[c.Type]
	label := fmt.Sprintf("[%c %d]", defenderGlyph(c.Type), cost)
	style := rgbStyle(c.Color)
	if credits < cost {
		style = style.Dim(true)
	}
	r.textCentered(c.Position, label, style)
}

func (r *TerminalRenderer) drawHostile(h entity.Hostile) {
	glyph := 'Z'
	if h.Class == entity.Runner {
		glyph = 'R'
	}
	style := rgbStyle(h.Color)
	if h.Frozen {
		style = styleFrozen
	}
	if h.Stage == 1 {
		// lost its head
		style = style.Underline(true)
	}
	r.put(h.Position, glyph, style)
}

func (r *TerminalRenderer) drawHUD(s *engine.Snapshot) {
	y := r.height
	status := fmt.Sprintf(" Credits: %d   Score: %d   Level: %d   Tick: %d", s.Credits, s.Score, s.Level, s.Tick)
	r.text(0, y, status, styleHUD)
	r.text(0, y+1, " "+s.Guide, styleGuide)
}

func (r *TerminalRenderer) drawOverlay(s *engine.Snapshot) {
	mid := r.height / 2
	switch {
	case s.State == engine.StateIntro:
		r.textAt(mid-1, TitleText, styleBanner)
		r.textAt(mid+1, IntroText, styleDefault)
	case s.State == engine.StateOver:
		r.textAt(mid+2, RestartText, styleOverlay)
	case s.Paused:
		r.textAt(mid, PausedText, styleOverlay)
	}
}

func (r *TerminalRenderer) put(pos physics.Vector2D, glyph rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	r.set(x, y, glyph, style)
}

func (r *TerminalRenderer) set(x, y int, glyph rune, style tcell.Style) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height+hudRows {
		return
	}
	r.screen.SetContent(x, y, glyph, nil, style)
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.set(x+i, y, ch, style)
	}
}

// textCentered writes s centred on a field position.
func (r *TerminalRenderer) textCentered(pos physics.Vector2D, s string, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	r.text(x-len([]rune(s))/2, y, s, style)
}

// textAt writes s centred horizontally on row y.
func (r *TerminalRenderer) textAt(y int, s string, style tcell.Style) {
	r.text((r.width-len([]rune(s)))/2, y, s, style)
}

func defenderGlyph(kind entity.DefenderKind) rune {
	if kind == entity.FrostShooter {
		return 'F'
	}
	return 'P'
}

func rgbStyle(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
