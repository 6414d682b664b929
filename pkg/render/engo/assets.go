// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-lawndefense/pkg/entity"
)

// FontURL is the virtual asset path the HUD font is registered under.
const FontURL = "fonts/goregular.ttf"

// Shape selects the drawable used for an entity.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// Look is how one entity is drawn: a shape of Size field units filled with
// Color and outlined with Border.
type Look struct {
	Shape  Shape
	Size   float64
	Color  color.RGBA
	Border color.RGBA
	Z      float32
}

// Drawable returns the engo drawable for the look.
func (l Look) Drawable(scale float32) common.Drawable {
	width := max(scale*2, 1)
	if l.Shape == ShapeRect {
		return common.Rectangle{BorderWidth: width, BorderColor: l.Border}
	}
	return common.Circle{BorderWidth: width, BorderColor: l.Border}
}

var (
	colorLawn     = color.RGBA{R: 60, G: 140, B: 50, A: 255}
	colorHouse    = color.RGBA{R: 120, G: 80, B: 40, A: 255}
	colorSun      = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	colorPea      = color.RGBA{R: 120, G: 230, B: 80, A: 255}
	colorFrost    = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	colorOutline  = color.RGBA{A: 255}
	colorPreview  = color.RGBA{R: 200, G: 200, B: 200, A: 120}
	colorDisabled = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Draw sizes in field units. Collision radii are much larger than what
// reads well on screen.
const (
	defenderSize    = 70
	candidateSize   = 80
	walkerSize      = 80
	runnerSize      = 55
	projectileSize  = 18
	collectibleSize = 50
	headSize        = 30
)

// AssetManager owns the looks per entity kind and the HUD font.
type AssetManager struct {
	font    *common.Font
	fontErr error
}

// NewAssetManager creates an asset manager with no font loaded yet.
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// Preload registers the bundled Go font with engo's file loader. It only
// parses the TTF data and can run before a window exists.
func (am *AssetManager) Preload() error {
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(goregular.TTF)); err != nil {
		am.fontErr = fmt.Errorf("failed to load font: %w", err)
		return am.fontErr
	}
	return nil
}

// LoadFont builds the glyph atlas. It needs a GL context.
func (am *AssetManager) LoadFont(size float64) (*common.Font, error) {
	if am.fontErr != nil {
		return nil, am.fontErr
	}
	if am.font != nil {
		return am.font, nil
	}
	font := &common.Font{URL: FontURL, FG: colorText, Size: size}
	if err := font.CreatePreloaded(); err != nil {
		am.fontErr = fmt.Errorf("failed to create font: %w", err)
		return nil, am.fontErr
	}
	am.font = font
	return font, nil
}

// Font returns the loaded font or nil.
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// DefenderLook returns the look of a planted defender.
func (am *AssetManager) DefenderLook(d entity.Defender) Look {
	return Look{Shape: ShapeCircle, Size: defenderSize, Color: d.Stats.Color, Border: colorOutline, Z: 2}
}

// CandidateLook returns the look of a selection icon. Icons the player
// cannot afford are greyed out.
func (am *AssetManager) CandidateLook(c entity.Candidate, affordable bool) Look {
	fill := c.Color
	if !affordable {
		fill = colorDisabled
	}
	return Look{Shape: ShapeRect, Size: candidateSize, Color: fill, Border: colorOutline, Z: 1}
}

// PreviewLook returns the look of the dragged placement preview.
func (am *AssetManager) PreviewLook(entity.Preview) Look {
	return Look{Shape: ShapeCircle, Size: defenderSize, Color: colorPreview, Border: colorOutline, Z: 6}
}

// HostileLook returns the look of a hostile. Frozen hostiles turn ice blue
// and a hostile that lost its head shrinks.
func (am *AssetManager) HostileLook(h entity.Hostile) Look {
	size := float64(walkerSize)
	if h.Class == entity.Runner {
		size = runnerSize
	}
	if h.Stage == 1 {
		size *= 0.8
	}
	fill := h.Color
	if h.Frozen {
		fill = colorFrost
	}
	return Look{Shape: ShapeRect, Size: size, Color: fill, Border: colorOutline, Z: 3}
}

// ProjectileLook returns the look of a projectile.
func (am *AssetManager) ProjectileLook(p entity.Projectile) Look {
	fill := colorPea
	if p.Damage == entity.DamageFrost {
		fill = colorFrost
	}
	return Look{Shape: ShapeCircle, Size: projectileSize, Color: fill, Border: fill, Z: 4}
}

// CollectibleLook returns the look of a sun.
func (am *AssetManager) CollectibleLook(entity.Collectible) Look {
	return Look{Shape: ShapeCircle, Size: collectibleSize, Color: colorSun, Border: colorSun, Z: 5}
}

// EffectLook returns the look of an exploding head.
func (am *AssetManager) EffectLook(e entity.ExplodingHead) Look {
	return Look{Shape: ShapeCircle, Size: headSize, Color: e.Color, Border: colorOutline, Z: 5}
}
