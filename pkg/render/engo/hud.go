// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// Overlay text.
const (
	TitleText   = "LAWN DEFENSE"
	IntroText   = "S start   P pause   Q quit   1/2 pick a plant"
	PausedText  = "PAUSED - press P to resume"
	RestartText = "press S to play again"
)

// HUD layout in field units.
var (
	statusAt  = physics.Pt(20, 20)
	guideAt   = physics.Pt(20, 740)
	titleAt   = physics.Pt(600, 330)
	introAt   = physics.Pt(600, 400)
	overlayAt = physics.Pt(600, 380)
	// costDrop is how far below its icon a cost label sits.
	costDrop = physics.Pt(0, 60)
)

var (
	colorGuide   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorOverlay = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Label is one line of HUD text at a field position.
type Label struct {
	Text     string
	At       physics.Vector2D
	Color    color.RGBA
	Centered bool
}

// Labels returns every line of text the HUD shows for s.
func Labels(s *engine.Snapshot) []Label {
	if s == nil {
		return nil
	}
	labels := []Label{
		{Text: fmt.Sprintf("Credits: %d   Score: %d   Level: %d   Tick: %d", s.Credits, s.Score, s.Level, s.Tick), At: statusAt, Color: colorText},
		{Text: s.Guide, At: guideAt, Color: colorGuide},
	}
	for _, c := range s.Candidates {
		labels = append(labels, Label{
			Text:     fmt.Sprintf("%s %d", c.Type, s.Costs[c.Type]),
			At:       c.Position.Add(costDrop),
			Color:    colorText,
			Centered: true,
		})
	}
	for _, b := range s.Banners {
		labels = append(labels, Label{Text: b.Text, At: b.Position, Color: colorText, Centered: true})
	}

	switch {
	case s.State == engine.StateIntro:
		labels = append(labels,
			Label{Text: TitleText, At: titleAt, Color: colorOverlay, Centered: true},
			Label{Text: IntroText, At: introAt, Color: colorOverlay, Centered: true},
		)
	case s.State == engine.StateOver:
		labels = append(labels, Label{Text: RestartText, At: overlayAt, Color: colorOverlay, Centered: true})
	case s.Paused:
		labels = append(labels, Label{Text: PausedText, At: overlayAt, Color: colorOverlay, Centered: true})
	}
	return labels
}

// HUDSystem draws the text layer from a pool of text entities, hiding the
// ones a frame does not need.
type HUDSystem struct {
	drawer   Drawer
	source   SnapshotSource
	viewport *Viewport
	font     *common.Font

	texts []*sprite
}

// NewHUDSystem creates a HUD that writes with font. A nil font keeps the
// HUD computing labels without drawing them.
func NewHUDSystem(drawer Drawer, source SnapshotSource, viewport *Viewport, font *common.Font) *HUDSystem {
	return &HUDSystem{drawer: drawer, source: source, viewport: viewport, font: font}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System.
func (hud *HUDSystem) Update(float32) {
	if hud.source == nil {
		return
	}
	hud.Draw(Labels(hud.source.Snapshot()))
}

// Draw shows labels, growing the pool as needed.
func (hud *HUDSystem) Draw(labels []Label) {
	if hud.font == nil {
		return
	}
	for len(hud.texts) < len(labels) {
		sp := &sprite{BasicEntity: ecs.NewBasic()}
		sp.RenderComponent.Drawable = common.Text{Font: hud.font}
		setZIndex(&sp.RenderComponent, 10)
		hud.texts = append(hud.texts, sp)
		hud.drawer.Add(&sp.BasicEntity, &sp.RenderComponent, &sp.SpaceComponent)
	}

	for i, sp := range hud.texts {
		if i >= len(labels) {
			sp.RenderComponent.Hidden = true
			continue
		}
		l := labels[i]
		sp.RenderComponent.Hidden = false
		sp.RenderComponent.Drawable = common.Text{Font: hud.font, Text: l.Text}
		sp.RenderComponent.Color = l.Color
		sp.SpaceComponent.Position = hud.position(l)
	}
}

// Visible returns the number of text entities currently shown.
func (hud *HUDSystem) Visible() int {
	n := 0
	for _, sp := range hud.texts {
		if !sp.RenderComponent.Hidden {
			n++
		}
	}
	return n
}

func (hud *HUDSystem) position(l Label) engo.Point {
	pt := hud.viewport.WorldToScreen(l.At)
	if !l.Centered {
		return pt
	}
	w, h, _ := hud.font.TextDimensions(l.Text)
	return engo.Point{X: pt.X - float32(w)/2, Y: pt.Y - float32(h)/2}
}

// lawnTiles returns the static lawn: one strip per lane and the house edge.
func lawnTiles(v *Viewport) []*sprite {
	var tiles []*sprite
	for lane := 0; lane < 4; lane++ {
		fill := colorLawn
		if lane%2 == 1 {
			fill = color.RGBA{R: colorLawn.R + 15, G: colorLawn.G + 20, B: colorLawn.B + 10, A: 255}
		}
		tiles = append(tiles, tile(v, physics.Pt(entity.BreachX, 150+lane*100), physics.Pt(entity.FieldRight-entity.BreachX, 100), fill))
	}
	tiles = append(tiles, tile(v, physics.Pt(0, 150), physics.Pt(entity.BreachX, 400), colorHouse))
	return tiles
}

func tile(v *Viewport, corner, size physics.Vector2D, fill color.RGBA) *sprite {
	sp := &sprite{BasicEntity: ecs.NewBasic()}
	sp.SpaceComponent.Position = v.WorldToScreen(corner)
	sp.SpaceComponent.Width = float32(size.X) * v.Scale()
	sp.SpaceComponent.Height = float32(size.Y) * v.Scale()
	sp.RenderComponent.Drawable = common.Rectangle{}
	sp.RenderComponent.Color = fill
	setZIndex(&sp.RenderComponent, 0)
	return sp
}
