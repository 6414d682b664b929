// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// stubWorld records spawns and serves a fixed tick and level.
type stubWorld struct {
	tick    int
	level   int
	spawned []Entity
}

func (w *stubWorld) Tick() int      { return w.tick }
func (w *stubWorld) Level() int     { return w.level }
func (w *stubWorld) Spawn(e Entity) { w.spawned = append(w.spawned, e) }

func TestBaseEntity_Identity(t *testing.T) {
	e := &BaseEntity{Position: physics.Pt(100, 200), Radius: 40}
	if e.GetID() != 0 {
		t.Errorf("new entity ID = %d, want 0", e.GetID())
	}
	e.SetID(42)
	if e.GetID() != 42 {
		t.Errorf("GetID() = %d, want 42", e.GetID())
	}

	c := e.GetCollider()
	if c.Center != physics.Pt(100, 200) || c.Radius != 40 {
		t.Errorf("GetCollider() = %+v", c)
	}
	if e.Expired() {
		t.Error("base entities never expire")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindDefender, "defender"},
		{KindHostile, "hostile"},
		{KindBanner, "banner"},
		{KindPreview, "preview"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCountdown(t *testing.T) {
	c := NewCountdown(3)
	for i := 0; i < 2; i++ {
		c.Step()
		if c.Done() {
			t.Fatalf("Done() after %d steps", i+1)
		}
	}
	c.Step()
	if !c.Done() {
		t.Error("Done() = false after 3 steps")
	}
	c.Step()
	if c.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", c.Remaining)
	}

	var unarmed Countdown
	unarmed.Step()
	if unarmed.Done() {
		t.Error("unarmed countdown should never be done")
	}
}

func TestDamageType_Effect(t *testing.T) {
	tests := []struct {
		damage   DamageType
		expected HitEffect
	}{
		{DamageStandard, HitEffect{Stages: 1}},
		{DamageFrost, HitEffect{Stages: 1, Freeze: true}},
		{DamageType(7), HitEffect{Stages: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.damage.String(), func(t *testing.T) {
			if got := tt.damage.Effect(); got != tt.expected {
				t.Errorf("Effect() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
