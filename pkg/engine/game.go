// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/event"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
	"github.com/opd-ai/go-lawndefense/pkg/validation"
)

// State is the top-level phase of a session.
type State int

const (
	StateIntro State = iota
	StatePlaying
	StateOver
)

func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// CommandType enumerates player intents delivered by a frontend.
type CommandType int

const (
	CmdStart CommandType = iota
	CmdTogglePause
	CmdQuit
	// CmdClick collects a sun under the pointer, or selects a candidate.
	CmdClick
	// CmdPress selects the candidate under the pointer.
	CmdPress
	// CmdDrag moves the placement preview.
	CmdDrag
	// CmdRelease confirms the placement under the pointer.
	CmdRelease
	// CmdSelect picks a defender kind without a pointer.
	CmdSelect
)

// Command is a queued player intent.
type Command struct {
	Type  CommandType
	Point physics.Vector2D
	Kind  entity.DefenderKind
}

// Validate reports whether cmd may be queued.
func (c Command) Validate() error {
	switch c.Type {
	case CmdStart, CmdTogglePause, CmdQuit:
		return nil
	case CmdClick, CmdPress, CmdDrag, CmdRelease:
		return validation.ValidatePoint(c.Point)
	case CmdSelect:
		return validation.ValidateDefenderKind(c.Kind)
	default:
		return fmt.Errorf("%w: %d", validation.ErrUnknownCommand, int(c.Type))
	}
}

// ErrQuit is returned by Frame and Run once a quit command was processed.
var ErrQuit = errors.New("quit requested")

// Renderer draws one frame from a snapshot.
type Renderer interface {
	Render(s *Snapshot)
}

// Game drives a Registry through the fixed-tick loop. Frontends talk to it
// only through Submit and Snapshot, both safe from any goroutine.
type Game struct {
	Config   *config.GameConfig
	EventBus *event.Bus

	mu       sync.RWMutex
	registry *Registry
	spawner  *Spawner
	resolver *Resolver
	logger   *logging.Logger
	ctx      context.Context

	state  State
	paused bool
	quit   bool
	frame  uint64
	timers timerQueue

	cmdMu    sync.Mutex
	commands []Command
}

// NewGame creates a game in the intro state. A nil rng is replaced by a PCG
// source seeded from cfg.Seed and a nil logger discards output.
func NewGame(cfg *config.GameConfig, rng Rand, logger *logging.Logger) *Game {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	bus := event.NewEventBus()
	g := &Game{
		Config:   cfg,
		EventBus: bus,
		registry: NewRegistry(cfg, bus, rng),
		spawner:  NewSpawner(cfg.Spawn, rng, cfg.Screen.Width),
		resolver: NewResolver(cfg),
		logger:   logger,
		ctx:      logging.WithSessionID(context.Background(), ""),
	}
	g.registerEventHandlers()
	return g
}

// registerEventHandlers wires the delayed transitions. Handlers run inside
// Frame with g.mu held.
func (g *Game) registerEventHandlers() {
	g.EventBus.Subscribe(event.YardBreached, g.handleYardBreached)
	g.EventBus.Subscribe(event.LevelChanged, g.handleLevelChanged)
}

func (g *Game) handleYardBreached(event.Event) {
	g.logger.Info(g.ctx, "zombies reached the house",
		"tick", g.registry.Tick(),
		"score", g.registry.Score(),
	)
	g.timers.schedule(g.frame+uint64(g.Config.Timing.GameOverDelayTicks), g.endGame)
}

func (g *Game) handleLevelChanged(e event.Event) {
	se, ok := e.(*event.ScoreEvent)
	if !ok {
		return
	}
	g.logger.Info(g.ctx, "level changed", "level", se.Value, "previous", se.Previous)

	if se.Value < 1 || se.Value >= g.Config.Economy.AnnouncedLevels {
		return
	}
	track := fmt.Sprintf("level%d", se.Value)
	g.timers.schedule(g.frame+uint64(g.Config.Timing.MusicDelayTicks), func() {
		g.EventBus.Publish(event.NewMusicEvent(g, track))
	})
}

// endGame flips the session to game over.
func (g *Game) endGame() {
	if g.state != StatePlaying {
		return
	}
	g.state = StateOver
	g.paused = false
	g.logger.Info(g.ctx, "game over", "score", g.registry.Score(), "level", g.registry.Level())
	g.EventBus.Publish(&event.BaseEvent{EventType: event.GameEnded, Source: g})
}

// Submit queues a command for the next Frame. Invalid commands and
// commands beyond the queue bound are logged and dropped, except quit.
func (g *Game) Submit(cmd Command) {
	if err := cmd.Validate(); err != nil {
		g.logger.Warn(context.Background(), "command rejected", "command", int(cmd.Type), "error", err.Error())
		return
	}

	g.cmdMu.Lock()
	defer g.cmdMu.Unlock()
	if err := validation.ValidateQueueLength(len(g.commands)); err != nil && cmd.Type != CmdQuit {
		g.logger.Warn(context.Background(), "command dropped", "command", int(cmd.Type), "error", err.Error())
		return
	}
	g.commands = append(g.commands, cmd)
}

// Start queues a start command.
func (g *Game) Start() { g.Submit(Command{Type: CmdStart}) }

// Quit queues a quit command.
func (g *Game) Quit() { g.Submit(Command{Type: CmdQuit}) }

func (g *Game) drainCommands() []Command {
	g.cmdMu.Lock()
	defer g.cmdMu.Unlock()
	cmds := g.commands
	g.commands = nil
	return cmds
}

// Frame applies queued commands, fires due timers and, while playing and not
// paused, advances the simulation one tick.
func (g *Game) Frame() error {
	cmds := g.drainCommands()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.quit {
		return ErrQuit
	}
	for _, cmd := range cmds {
		g.apply(cmd)
		if g.quit {
			return ErrQuit
		}
	}
	// pickups from this frame's clicks leave before anything advances
	g.registry.Flush()

	if g.state == StatePlaying {
		g.frame++
		for _, fire := range g.timers.due(g.frame) {
			fire()
		}
	}

	if g.state == StatePlaying && !g.paused {
		g.tick()
	}
	return nil
}

func (g *Game) apply(cmd Command) {
	switch cmd.Type {
	case CmdStart:
		g.start()
	case CmdQuit:
		g.quit = true
		g.logger.Info(g.ctx, "quit requested")
	case CmdTogglePause:
		g.togglePause()
	default:
		if g.state == StatePlaying && !g.paused {
			g.applyPointer(cmd)
		}
	}
}

func (g *Game) start() {
	if g.state == StatePlaying {
		return
	}
	g.registry.Reset()
	g.timers.reset()
	g.paused = false
	g.frame = 0
	g.ctx = logging.WithSessionID(context.Background(), "")
	g.state = StatePlaying
	g.logger.Info(g.ctx, "game started", "credits", g.registry.Credits())
	g.EventBus.Publish(&event.BaseEvent{EventType: event.GameStarted, Source: g})
}

func (g *Game) togglePause() {
	if g.state != StatePlaying {
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.logger.Info(g.ctx, "game paused", "tick", g.registry.Tick())
		g.EventBus.Publish(&event.BaseEvent{EventType: event.GamePaused, Source: g})
		return
	}
	g.logger.Info(g.ctx, "game resumed", "tick", g.registry.Tick())
	g.EventBus.Publish(&event.BaseEvent{EventType: event.GameResumed, Source: g})
}

func (g *Game) applyPointer(cmd Command) {
	r := g.registry
	switch cmd.Type {
	case CmdClick:
		if r.Collect(cmd.Point) {
			return
		}
		g.press(cmd.Point)
	case CmdPress:
		g.press(cmd.Point)
	case CmdDrag:
		r.MovePreview(cmd.Point)
	case CmdRelease:
		d, err := r.ConfirmPlacement(cmd.Point)
		switch {
		case err == nil:
			g.logger.Debug(g.ctx, "defender placed", "kind", d.Type.String(), "x", d.Position.X, "y", d.Position.Y)
		case !errors.Is(err, ErrNotPlanting):
			g.logger.Debug(g.ctx, "placement rejected", "reason", err.Error())
		}
	case CmdSelect:
		if err := r.SelectKind(cmd.Kind); err != nil {
			g.logger.Debug(g.ctx, "selection rejected", "kind", cmd.Kind.String(), "reason", err.Error())
		}
	}
}

func (g *Game) press(pt physics.Vector2D) {
	if hit, err := g.registry.PressCandidate(pt); hit && err != nil {
		g.logger.Debug(g.ctx, "selection rejected", "reason", err.Error())
	}
}

// tick runs one simulation step. Called with g.mu held.
func (g *Game) tick() {
	r := g.registry
	tick := r.advanceTick()

	r.EnsureCandidates()
	for _, e := range g.spawner.Step(tick, r.Level()) {
		r.Spawn(e)
		g.publishSpawn(e)
	}

	g.advanceEntities()
	r.Flush()

	stats := g.resolver.Resolve(r)
	removed := r.Flush()
	if stats.Hits > 0 || stats.Overruns > 0 {
		g.logger.Debug(g.ctx, "collisions resolved",
			"tick", tick,
			"hits", stats.Hits,
			"kills", stats.Kills,
			"overruns", stats.Overruns,
			"removed", removed,
		)
	}
}

func (g *Game) publishSpawn(e entity.Entity) {
	var t event.Type
	switch e.Kind() {
	case entity.KindHostile:
		t = event.HostileSpawned
	case entity.KindCollectible:
		t = event.CollectibleSpawned
	default:
		return
	}
	pos := e.GetPosition()
	g.logger.Debug(g.ctx, "spawned", "kind", e.Kind().String(), "id", uint64(e.GetID()), "x", pos.X, "y", pos.Y)
	g.EventBus.Publish(event.NewEntityEvent(t, g, uint64(e.GetID()), e.Kind().String(), pos.X, pos.Y))
}

// advanceEntities moves every entity once and queues the expired ones.
func (g *Game) advanceEntities() {
	r := g.registry
	for _, e := range r.entities() {
		e.Advance(r)
		if e.Expired() {
			r.MarkForRemoval(e)
		}
		if h, ok := e.(*entity.Hostile); ok && h.Breached {
			r.BreachYard()
		}
	}
}

// Snapshot returns a copy of the visible state.
func (g *Game) Snapshot() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.createSnapshot()
}

// State returns the current phase and pause flag.
func (g *Game) State() (State, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state, g.paused
}

// Context returns the logging context of the current session.
func (g *Game) Context() context.Context {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctx
}

// Run drives Frame at the configured interval and renders after every frame
// until ctx is done or a quit command arrives.
func (g *Game) Run(ctx context.Context, renderer Renderer) error {
	p := newPacer(g.Config.Timing.TickInterval(), time.Now())
	sleep := time.NewTimer(0)
	defer sleep.Stop()
	<-sleep.C

	for {
		if err := g.Frame(); err != nil {
			return err
		}
		if renderer != nil {
			renderer.Render(g.Snapshot())
		}

		sleep.Reset(p.next(time.Now()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sleep.C:
		}
	}
}

// pacer computes sleeps that keep frames on a fixed schedule. A late frame
// gets a zero sleep and the following frames catch up.
type pacer struct {
	interval time.Duration
	target   time.Time
}

func newPacer(interval time.Duration, start time.Time) *pacer {
	return &pacer{interval: interval, target: start}
}

func (p *pacer) next(now time.Time) time.Duration {
	p.target = p.target.Add(p.interval)
	if d := p.target.Sub(now); d > 0 {
		return d
	}
	return 0
}

// timer is a one-shot callback due on a frame number.
type timer struct {
	at   uint64
	fire func()
}

// timerQueue holds pending callbacks in scheduling order.
type timerQueue struct {
	items []timer
}

func (q *timerQueue) schedule(at uint64, fire func()) {
	q.items = append(q.items, timer{at: at, fire: fire})
}

// due removes and returns the callbacks whose frame has come.
func (q *timerQueue) due(frame uint64) []func() {
	var out []func()
	kept := q.items[:0]
	for _, t := range q.items {
		if t.at <= frame {
			out = append(out, t.fire)
		} else {
			kept = append(kept, t)
		}
	}
	clear(q.items[len(kept):])
	q.items = kept
	return out
}

func (q *timerQueue) pending() int { return len(q.items) }

func (q *timerQueue) reset() {
	clear(q.items)
	q.items = q.items[:0]
}
