// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	GameStarted        Type = "game_started"
	GamePaused         Type = "game_paused"
	GameResumed        Type = "game_resumed"
	GameEnded          Type = "game_ended"
	HostileSpawned     Type = "hostile_spawned"
	HostileDestroyed   Type = "hostile_destroyed"
	ProjectileHit      Type = "projectile_hit"
	DefenderPlaced     Type = "defender_placed"
	DefenderOverrun    Type = "defender_overrun"
	PlacementRejected  Type = "placement_rejected"
	CollectibleSpawned Type = "collectible_spawned"
	CollectiblePicked  Type = "collectible_picked"
	ScoreChanged       Type = "score_changed"
	LevelChanged       Type = "level_changed"
	YardBreached       Type = "yard_breached"
	MusicCue           Type = "music_cue"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type handlerEntry struct {
	id      uint64
	handler Handler
}

// Subscription is returned by Subscribe; Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

// Bus manages event subscriptions and dispatching. Publish runs handlers
// synchronously on the caller's goroutine.
type Bus struct {
	handlers map[Type][]handlerEntry
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]handlerEntry),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], handlerEntry{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[eventType]
	for i, e := range entries {
		if e.id == id {
			b.handlers[eventType] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	entries := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, e := range entries {
		e.handler(event)
	}
}

// Specific event implementations

// EntityEvent reports something that happened to a single entity.
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Kind     string
	X, Y     float64
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, kind string, x, y float64) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EntityID:  entityID,
		Kind:      kind,
		X:         x,
		Y:         y,
	}
}

// HitEvent reports a projectile striking a hostile.
type HitEvent struct {
	BaseEvent
	ProjectileID uint64
	HostileID    uint64
	Damage       string
	StageLeft    int
}

// NewHitEvent creates a new hit event
func NewHitEvent(source interface{}, projectileID, hostileID uint64, damage string, stageLeft int) *HitEvent {
	return &HitEvent{
		BaseEvent:    BaseEvent{EventType: ProjectileHit, Source: source},
		ProjectileID: projectileID,
		HostileID:    hostileID,
		Damage:       damage,
		StageLeft:    stageLeft,
	}
}

// ScoreEvent carries the new and previous value of score or level.
type ScoreEvent struct {
	BaseEvent
	Value    int
	Previous int
}

// NewScoreEvent creates a score or level event
func NewScoreEvent(eventType Type, source interface{}, value, previous int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Value:     value,
		Previous:  previous,
	}
}

// PlacementEvent reports an accepted or rejected defender placement.
type PlacementEvent struct {
	BaseEvent
	Kind   string
	X, Y   float64
	Reason string
}

// NewPlacementEvent creates a new placement event
func NewPlacementEvent(eventType Type, source interface{}, kind string, x, y float64, reason string) *PlacementEvent {
	return &PlacementEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Kind:      kind,
		X:         x,
		Y:         y,
		Reason:    reason,
	}
}

// MusicEvent asks the audio side to switch the looping track.
type MusicEvent struct {
	BaseEvent
	Track string
}

// NewMusicEvent creates a new music cue
func NewMusicEvent(source interface{}, track string) *MusicEvent {
	return &MusicEvent{
		BaseEvent: BaseEvent{EventType: MusicCue, Source: source},
		Track:     track,
	}
}
