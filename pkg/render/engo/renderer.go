// pkg/render/engo/renderer.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// Drawer is the part of common.RenderSystem the renderer needs.
type Drawer interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// SnapshotSource hands out the latest simulation snapshot.
type SnapshotSource interface {
	Snapshot() *engine.Snapshot
}

type spriteKey struct {
	kind entity.Kind
	id   entity.ID
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	look Look
}

// EngoRenderer keeps one engo entity per simulated entity, creating,
// updating and removing them as snapshots come in.
type EngoRenderer struct {
	drawer   Drawer
	source   SnapshotSource
	assets   *AssetManager
	viewport *Viewport

	sprites map[spriteKey]*sprite
	seen    map[spriteKey]bool
}

// NewEngoRenderer creates a renderer that adds its entities to drawer.
func NewEngoRenderer(drawer Drawer, source SnapshotSource, assets *AssetManager, viewport *Viewport) *EngoRenderer {
	return &EngoRenderer{
		drawer:   drawer,
		source:   source,
		assets:   assets,
		viewport: viewport,
		sprites:  make(map[spriteKey]*sprite),
		seen:     make(map[spriteKey]bool),
	}
}

// Update implements ecs.System by drawing the latest snapshot.
func (r *EngoRenderer) Update(float32) {
	if r.source == nil {
		return
	}
	r.Sync(r.source.Snapshot())
}

// Remove implements ecs.System.
func (r *EngoRenderer) Remove(basic ecs.BasicEntity) {
	for key, s := range r.sprites {
		if s.ID() == basic.ID() {
			delete(r.sprites, key)
		}
	}
}

// Sync brings the engo entities in line with s.
func (r *EngoRenderer) Sync(s *engine.Snapshot) {
	if s == nil {
		return
	}
	clear(r.seen)

	for _, c := range s.Candidates {
		r.place(spriteKey{entity.KindCandidate, c.ID}, c.Position, r.assets.CandidateLook(c, s.Credits >= s.Costs[c.Type]))
	}
	for _, d := range s.Defenders {
		r.place(spriteKey{entity.KindDefender, d.ID}, d.Position, r.assets.DefenderLook(d))
	}
	for _, h := range s.Hostiles {
		r.place(spriteKey{entity.KindHostile, h.ID}, h.Position, r.assets.HostileLook(h))
	}
	for _, p := range s.Projectiles {
		r.place(spriteKey{entity.KindProjectile, p.ID}, p.Position, r.assets.ProjectileLook(p))
	}
	for _, c := range s.Collectibles {
		r.place(spriteKey{entity.KindCollectible, c.ID}, c.Position, r.assets.CollectibleLook(c))
	}
	for _, e := range s.Effects {
		r.place(spriteKey{entity.KindEffect, e.ID}, e.Position, r.assets.EffectLook(e))
	}
	if s.Preview != nil {
		r.place(spriteKey{entity.KindPreview, s.Preview.ID}, s.Preview.Position, r.assets.PreviewLook(*s.Preview))
	}

	for key, sp := range r.sprites {
		if !r.seen[key] {
			r.drawer.Remove(sp.BasicEntity)
			delete(r.sprites, key)
		}
	}
}

// Count returns the number of live sprites.
func (r *EngoRenderer) Count() int {
	return len(r.sprites)
}

func (r *EngoRenderer) place(key spriteKey, pos physics.Vector2D, look Look) {
	r.seen[key] = true
	corner, side := r.viewport.Box(pos, look.Size)

	sp, ok := r.sprites[key]
	if !ok {
		sp = &sprite{BasicEntity: ecs.NewBasic()}
		r.sprites[key] = sp
		r.apply(sp, corner, side, look)
		r.drawer.Add(&sp.BasicEntity, &sp.RenderComponent, &sp.SpaceComponent)
		return
	}
	r.apply(sp, corner, side, look)
}

func (r *EngoRenderer) apply(sp *sprite, corner engo.Point, side float32, look Look) {
	sp.SpaceComponent.Position = corner
	sp.SpaceComponent.Width = side
	sp.SpaceComponent.Height = side
	if sp.look != look || sp.RenderComponent.Drawable == nil {
		sp.RenderComponent.Drawable = look.Drawable(r.viewport.Scale())
		sp.RenderComponent.Color = look.Color
		setZIndex(&sp.RenderComponent, look.Z)
		sp.look = look
	}
}

// setZIndex orders a component. SetZIndex notifies the running scene's
// mailbox, which only exists once engo.Run has set a scene.
func setZIndex(rc *common.RenderComponent, z float32) {
	rc.StartZIndex = z
	if engo.Mailbox != nil {
		rc.SetZIndex(z)
	}
}
