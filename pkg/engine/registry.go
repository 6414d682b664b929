// pkg/engine/registry.go
package engine

import (
	"errors"
	"slices"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/event"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// Guidance messages shown to the player.
const (
	GuideDefault      = "Enjoy the game."
	GuidePlant        = "Drop the peashooter in one slot"
	GuideNoCredits    = "No enough credits. Collect more suns."
	GuideCellOccupied = "A peashooter has been there. Each slot can only have one peashooter."
	GuideOverrun      = "It's very dangerous. More and more zombies are coming."
	GameOverText      = "Zombies Reach Your Front Door. Game Over."
)

// Placement outcomes. The registry turns each into a guidance message; none
// of them leaves the simulation loop.
var (
	ErrNotPlanting         = errors.New("no defender is being planted")
	ErrOutOfBounds         = errors.New("placement is outside the lawn")
	ErrInsufficientCredits = errors.New("not enough credits")
	ErrCellOccupied        = errors.New("cell already holds a defender")
)

var levelBanners = map[int]string{
	1: "Zombies are Coming!",
	2: "Level Two",
	3: "Level Three",
}

var (
	levelBannerAt = physics.Pt(500, 50)
	gameOverAt    = physics.Pt(500, 200)
	// previews start off-screen until the first drag
	previewParked = physics.Pt(-200, -200)
)

// Handle names an entity inside its owning collection.
type Handle struct {
	Kind entity.Kind
	ID   entity.ID
}

// Registry owns every entity collection of a session together with the
// player economy and the planting flags. It is not safe for concurrent use;
// Game serialises all access.
type Registry struct {
	cfg *config.GameConfig
	bus *event.Bus
	rng Rand

	nextID entity.ID
	tick   int

	defenders    []*entity.Defender
	candidates   []*entity.Candidate
	hostiles     []*entity.Hostile
	projectiles  []*entity.Projectile
	collectibles []*entity.Collectible
	effects      []*entity.ExplodingHead
	banners      []*entity.Banner
	preview      *entity.Preview

	credits int
	score   int
	level   int

	planting bool
	selected entity.DefenderKind
	guide    string
	breached bool

	pending    []Handle
	pendingSet map[Handle]struct{}
}

// NewRegistry creates an empty registry. bus may be nil.
func NewRegistry(cfg *config.GameConfig, bus *event.Bus, rng Rand) *Registry {
	r := &Registry{
		cfg:        cfg,
		bus:        bus,
		rng:        rng,
		pendingSet: make(map[Handle]struct{}),
	}
	r.Reset()
	return r
}

// Reset returns the registry to a fresh session. Entity IDs keep increasing
// across sessions.
func (r *Registry) Reset() {
	r.tick = 0
	r.defenders = nil
	r.candidates = nil
	r.hostiles = nil
	r.projectiles = nil
	r.collectibles = nil
	r.effects = nil
	r.banners = nil
	r.preview = nil

	r.credits = r.cfg.Economy.StartCredits
	r.score = 0
	r.level = 0

	r.planting = false
	r.selected = entity.Peashooter
	r.guide = GuideDefault
	r.breached = false

	r.pending = r.pending[:0]
	clear(r.pendingSet)
}

// Tick implements entity.World.
func (r *Registry) Tick() int { return r.tick }

// Level implements entity.World.
func (r *Registry) Level() int { return r.level }

// Spawn implements entity.World.
func (r *Registry) Spawn(e entity.Entity) { r.Add(e) }

// advanceTick moves the tick counter forward, wrapping to 0 before overflow.
func (r *Registry) advanceTick() int {
	if r.tick == maxTick {
		r.tick = 0
	}
	r.tick++
	return r.tick
}

// Add assigns e an ID and appends it to its collection. Adding a preview
// replaces the current one. Unknown entity types are ignored and return 0.
func (r *Registry) Add(e entity.Entity) entity.ID {
	switch v := e.(type) {
	case *entity.Defender:
		r.assign(v)
		r.defenders = append(r.defenders, v)
	case *entity.Candidate:
		r.assign(v)
		r.candidates = append(r.candidates, v)
	case *entity.Hostile:
		r.assign(v)
		v.AutoThaw = r.cfg.Combat.AutoThaw
		r.hostiles = append(r.hostiles, v)
	case *entity.Projectile:
		r.assign(v)
		r.projectiles = append(r.projectiles, v)
	case *entity.Collectible:
		r.assign(v)
		v.Value = r.cfg.Economy.CollectibleValue
		r.collectibles = append(r.collectibles, v)
	case *entity.ExplodingHead:
		r.assign(v)
		r.effects = append(r.effects, v)
	case *entity.Banner:
		r.assign(v)
		r.banners = append(r.banners, v)
	case *entity.Preview:
		r.assign(v)
		r.preview = v
	default:
		return 0
	}
	return e.GetID()
}

func (r *Registry) assign(e entity.Entity) {
	r.nextID++
	e.SetID(r.nextID)
}

// MarkForRemoval queues e for removal at the next Flush. It reports false
// when e is already queued.
func (r *Registry) MarkForRemoval(e entity.Entity) bool {
	h := Handle{Kind: e.Kind(), ID: e.GetID()}
	if _, ok := r.pendingSet[h]; ok {
		return false
	}
	r.pendingSet[h] = struct{}{}
	r.pending = append(r.pending, h)
	return true
}

// IsPending reports whether e is queued for removal.
func (r *Registry) IsPending(e entity.Entity) bool {
	_, ok := r.pendingSet[Handle{Kind: e.Kind(), ID: e.GetID()}]
	return ok
}

// Flush removes every queued entity from its collection and returns how many
// were actually removed. Handles whose entity is already gone are dropped.
func (r *Registry) Flush() int {
	if len(r.pending) == 0 {
		return 0
	}

	byKind := make(map[entity.Kind]map[entity.ID]struct{})
	for _, h := range r.pending {
		ids, ok := byKind[h.Kind]
		if !ok {
			ids = make(map[entity.ID]struct{})
			byKind[h.Kind] = ids
		}
		ids[h.ID] = struct{}{}
	}

	removed := removeIDs(&r.defenders, byKind[entity.KindDefender]) +
		removeIDs(&r.candidates, byKind[entity.KindCandidate]) +
		removeIDs(&r.hostiles, byKind[entity.KindHostile]) +
		removeIDs(&r.projectiles, byKind[entity.KindProjectile]) +
		removeIDs(&r.collectibles, byKind[entity.KindCollectible]) +
		removeIDs(&r.effects, byKind[entity.KindEffect]) +
		removeIDs(&r.banners, byKind[entity.KindBanner])

	if r.preview != nil {
		if _, ok := byKind[entity.KindPreview][r.preview.ID]; ok {
			r.preview = nil
			removed++
		}
	}

	r.pending = r.pending[:0]
	clear(r.pendingSet)
	return removed
}

func removeIDs[T entity.Entity](list *[]T, ids map[entity.ID]struct{}) int {
	if len(ids) == 0 {
		return 0
	}
	before := len(*list)
	*list = slices.DeleteFunc(*list, func(e T) bool {
		_, ok := ids[e.GetID()]
		return ok
	})
	return before - len(*list)
}

// entities returns every live entity in advance order. The slice is built
// fresh so entities spawned while it is walked are not visited.
func (r *Registry) entities() []entity.Entity {
	all := make([]entity.Entity, 0, len(r.candidates)+len(r.defenders)+len(r.projectiles)+
		len(r.hostiles)+len(r.collectibles)+len(r.effects)+len(r.banners))
	all = appendAll(all, r.candidates)
	all = appendAll(all, r.defenders)
	all = appendAll(all, r.projectiles)
	all = appendAll(all, r.hostiles)
	all = appendAll(all, r.collectibles)
	all = appendAll(all, r.effects)
	all = appendAll(all, r.banners)
	return all
}

func appendAll[T entity.Entity](dst []entity.Entity, src []T) []entity.Entity {
	for _, e := range src {
		dst = append(dst, e)
	}
	return dst
}

// Count returns the size of the collection for kind.
func (r *Registry) Count(kind entity.Kind) int {
	switch kind {
	case entity.KindDefender:
		return len(r.defenders)
	case entity.KindCandidate:
		return len(r.candidates)
	case entity.KindHostile:
		return len(r.hostiles)
	case entity.KindProjectile:
		return len(r.projectiles)
	case entity.KindCollectible:
		return len(r.collectibles)
	case entity.KindEffect:
		return len(r.effects)
	case entity.KindBanner:
		return len(r.banners)
	case entity.KindPreview:
		if r.preview != nil {
			return 1
		}
	}
	return 0
}

// EnsureCandidates inserts a selection icon for every defender kind that
// does not have one yet.
func (r *Registry) EnsureCandidates() {
	for _, kind := range entity.DefenderKinds() {
		found := false
		for _, c := range r.candidates {
			if c.Type == kind {
				found = true
				break
			}
		}
		if !found {
			r.Add(entity.NewCandidate(kind))
		}
	}
}

// Credits returns the player's currency.
func (r *Registry) Credits() int { return r.credits }

// AddCredits adds n credits; the balance never drops below zero.
func (r *Registry) AddCredits(n int) {
	r.credits += n
	if r.credits < 0 {
		r.credits = 0
	}
}

// SpendCredits deducts n credits, flooring the balance at zero.
func (r *Registry) SpendCredits(n int) {
	r.AddCredits(-n)
}

// Score returns the player's score.
func (r *Registry) Score() int { return r.score }

// AddScore adds n to the score and raises the level once for every multiple
// of the level step the score crosses.
func (r *Registry) AddScore(n int) {
	prev := r.score
	r.score += n
	r.publish(event.NewScoreEvent(event.ScoreChanged, r, r.score, prev))

	step := r.cfg.Economy.LevelScoreStep
	if step <= 0 {
		return
	}
	if crossed := r.score/step - prev/step; crossed != 0 {
		r.SetLevel(r.level + crossed)
	}
}

// SetLevel changes the level. Levels below the announced limit drop a banner.
func (r *Registry) SetLevel(n int) {
	if n == r.level {
		return
	}
	prev := r.level
	r.level = n

	if n < r.cfg.Economy.AnnouncedLevels {
		if text, ok := levelBanners[n]; ok {
			r.Add(entity.NewBanner(text, levelBannerAt, 1))
		}
	}
	r.publish(event.NewScoreEvent(event.LevelChanged, r, n, prev))
}

// Guide returns the current player-facing message.
func (r *Registry) Guide() string { return r.guide }

// SetGuide replaces the player-facing message.
func (r *Registry) SetGuide(text string) { r.guide = text }

// Planting reports whether a defender is being dragged onto the lawn.
func (r *Registry) Planting() bool { return r.planting }

// Selected returns the defender kind picked last.
func (r *Registry) Selected() entity.DefenderKind { return r.selected }

// Cost returns the credit price of a defender kind.
func (r *Registry) Cost(kind entity.DefenderKind) int {
	if kind == entity.FrostShooter {
		return r.cfg.Economy.FrostCost
	}
	return r.cfg.Economy.StandardCost
}

// SelectKind starts planting kind when the player can afford it.
func (r *Registry) SelectKind(kind entity.DefenderKind) error {
	r.selected = kind
	if r.credits < r.Cost(kind) {
		r.guide = GuideNoCredits
		r.preview = nil
		r.planting = false
		r.publish(event.NewPlacementEvent(event.PlacementRejected, r, kind.String(), 0, 0, ErrInsufficientCredits.Error()))
		return ErrInsufficientCredits
	}

	r.guide = GuidePlant
	r.Add(entity.NewPreview(kind, previewParked))
	r.planting = true
	return nil
}

// MovePreview drags the placement preview to pt.
func (r *Registry) MovePreview(pt physics.Vector2D) {
	if r.planting && r.preview != nil {
		r.preview.MoveTo(pt)
	}
}

// ConfirmPlacement drops the selected defender on the cell nearest pt.
// Planting ends whatever the outcome.
func (r *Registry) ConfirmPlacement(pt physics.Vector2D) (*entity.Defender, error) {
	if !r.planting {
		return nil, ErrNotPlanting
	}
	defer r.clearPreview()

	kind := r.selected
	p := r.cfg.Placement
	x, y := pt.Ints()
	if x <= p.MinX || x >= p.MaxX || y <= p.MinY || y >= p.MaxY {
		return nil, r.reject(kind, pt, ErrOutOfBounds)
	}

	cell := physics.SnapToGrid(pt, p.Cell)
	if r.occupied(cell) {
		r.guide = GuideCellOccupied
		return nil, r.reject(kind, cell, ErrCellOccupied)
	}

	cost := r.Cost(kind)
	if r.credits < cost {
		r.guide = GuideNoCredits
		return nil, r.reject(kind, cell, ErrInsufficientCredits)
	}
	r.SpendCredits(cost)

	fireEvery := r.cfg.Combat.FireInterval
	phase := 0
	if fireEvery > 0 && r.rng != nil {
		phase = r.rng.IntN(fireEvery)
	}
	d := entity.NewDefender(kind, cell, phase, fireEvery)
	r.Add(d)
	r.publish(event.NewPlacementEvent(event.DefenderPlaced, r, kind.String(), cell.X, cell.Y, ""))
	return d, nil
}

func (r *Registry) reject(kind entity.DefenderKind, at physics.Vector2D, err error) error {
	r.publish(event.NewPlacementEvent(event.PlacementRejected, r, kind.String(), at.X, at.Y, err.Error()))
	return err
}

func (r *Registry) occupied(cell physics.Vector2D) bool {
	for _, d := range r.defenders {
		if d.Position == cell && !r.IsPending(d) {
			return true
		}
	}
	return false
}

func (r *Registry) clearPreview() {
	r.preview = nil
	r.planting = false
}

// Collect picks up the first collectible under pt and credits its value.
func (r *Registry) Collect(pt physics.Vector2D) bool {
	for _, c := range r.collectibles {
		if r.IsPending(c) || !c.GetCollider().ContainsPoint(pt, r.cfg.Placement.CollectSlack) {
			continue
		}
		r.AddCredits(c.Value)
		r.MarkForRemoval(c)
		r.publish(event.NewEntityEvent(event.CollectiblePicked, r, uint64(c.ID), c.Kind().String(), c.Position.X, c.Position.Y))
		return true
	}
	return false
}

// PressCandidate selects the defender kind whose icon lies under pt. It
// reports whether an icon was hit together with the selection outcome.
func (r *Registry) PressCandidate(pt physics.Vector2D) (bool, error) {
	for _, c := range r.candidates {
		if c.GetCollider().ContainsPoint(pt, r.cfg.Placement.SelectSlack) {
			return true, r.SelectKind(c.Type)
		}
	}
	return false, nil
}

// Breached reports whether a hostile has reached the house.
func (r *Registry) Breached() bool { return r.breached }

// BreachYard runs the loss transition once per session. Later calls return
// false and change nothing.
func (r *Registry) BreachYard() bool {
	if r.breached {
		return false
	}
	r.breached = true
	r.banners = nil
	r.Add(entity.NewBanner(GameOverText, gameOverAt, 0))
	r.publish(&event.BaseEvent{EventType: event.YardBreached, Source: r})
	return true
}

func (r *Registry) publish(e event.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}
