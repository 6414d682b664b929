// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"hit event", ProjectileHit, "resolver"},
		{"level event", LevelChanged, 3},
		{"nil source", GameStarted, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			if e.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", e.GetType(), tt.eventType)
			}
			if e.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", e.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_UniqueIDs(t *testing.T) {
	bus := NewEventBus()
	sub1 := bus.Subscribe(ProjectileHit, func(Event) {})
	sub2 := bus.Subscribe(ProjectileHit, func(Event) {})
	sub3 := bus.Subscribe(LevelChanged, func(Event) {})

	if sub1.ID == 0 || sub1.ID == sub2.ID || sub2.ID == sub3.ID {
		t.Errorf("subscription IDs not unique: %d %d %d", sub1.ID, sub2.ID, sub3.ID)
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.handlers[ProjectileHit]) != 2 || len(bus.handlers[LevelChanged]) != 1 {
		t.Errorf("unexpected handler counts: %d %d",
			len(bus.handlers[ProjectileHit]), len(bus.handlers[LevelChanged]))
	}
}

func TestBusPublish_DeliversToMatchingHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string

	bus.Subscribe(ProjectileHit, func(Event) { order = append(order, "first") })
	bus.Subscribe(ProjectileHit, func(Event) { order = append(order, "second") })
	bus.Subscribe(YardBreached, func(Event) { order = append(order, "other") })

	bus.Publish(NewHitEvent(nil, 1, 2, "standard", 2))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handlers ran as %v", order)
	}
}

func TestBusPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: GameEnded})
}

func TestSubscriptionCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var a, b int
	subA := bus.Subscribe(DefenderPlaced, func(Event) { a++ })
	bus.Subscribe(DefenderPlaced, func(Event) { b++ })

	subA.Cancel()
	subA.Cancel()
	bus.Publish(NewPlacementEvent(DefenderPlaced, nil, "peashooter", 300, 200, ""))

	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d after cancel, want 0 and 1", a, b)
	}
}

func TestBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus()
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(CollectiblePicked, func(Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(NewEntityEvent(CollectiblePicked, nil, 1, "collectible", 0, 0))
		}()
	}
	wg.Wait()

	mu.Lock()
	before := count
	mu.Unlock()
	bus.Publish(NewEntityEvent(CollectiblePicked, nil, 1, "collectible", 0, 0))
	mu.Lock()
	defer mu.Unlock()
	if count-before != 10 {
		t.Errorf("final publish reached %d handlers, want 10", count-before)
	}
}

func TestTypedEvents(t *testing.T) {
	tests := []struct {
		name string
		e    Event
		want Type
	}{
		{"entity", NewEntityEvent(HostileSpawned, nil, 7, "hostile", 1190, 200), HostileSpawned},
		{"hit", NewHitEvent(nil, 1, 2, "frost", 1), ProjectileHit},
		{"score", NewScoreEvent(LevelChanged, nil, 2, 1), LevelChanged},
		{"placement", NewPlacementEvent(PlacementRejected, nil, "frostshooter", 0, 0, "cell occupied"), PlacementRejected},
		{"music", NewMusicEvent(nil, "level1"), MusicCue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.e.GetType() != tt.want {
				t.Errorf("GetType() = %v, want %v", tt.e.GetType(), tt.want)
			}
		})
	}
}
