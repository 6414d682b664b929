// pkg/entity/defender_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

func TestNewDefender_Stats(t *testing.T) {
	tests := []struct {
		name   string
		kind   DefenderKind
		damage DamageType
	}{
		{"peashooter", Peashooter, DamageStandard},
		{"frostshooter", FrostShooter, DamageFrost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDefender(tt.kind, physics.Pt(300, 200), 0, DefaultFireInterval)
			if d.Kind() != KindDefender {
				t.Errorf("Kind() = %v", d.Kind())
			}
			if d.Stats.Damage != tt.damage {
				t.Errorf("Damage = %v, want %v", d.Stats.Damage, tt.damage)
			}
			if d.GetCollider().Radius != DefenderRadius {
				t.Errorf("Radius = %v", d.GetCollider().Radius)
			}
			if d.Type.String() != tt.name {
				t.Errorf("String() = %q", d.Type.String())
			}
		})
	}
}

func TestDefender_FireCadence(t *testing.T) {
	d := NewDefender(Peashooter, physics.Pt(300, 200), 30, DefaultFireInterval)
	w := &stubWorld{}

	var fired []int
	for tick := 1; tick <= 300; tick++ {
		w.tick = tick
		before := len(w.spawned)
		d.Advance(w)
		if len(w.spawned) > before {
			fired = append(fired, tick)
		}
	}

	want := []int{100, 230}
	if len(fired) != len(want) {
		t.Fatalf("fired on ticks %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("shot %d on tick %d, want %d", i, fired[i], want[i])
		}
	}

	p, ok := w.spawned[0].(*Projectile)
	if !ok {
		t.Fatalf("spawned %T, want *Projectile", w.spawned[0])
	}
	if p.Position != physics.Pt(320, 180) {
		t.Errorf("projectile at %v, want (320,180)", p.Position)
	}
	if p.Damage != DamageStandard {
		t.Errorf("projectile damage = %v", p.Damage)
	}
}

func TestDefender_FrostProjectile(t *testing.T) {
	d := NewDefender(FrostShooter, physics.Pt(400, 300), 0, 10)
	w := &stubWorld{tick: 20}
	d.Advance(w)
	if len(w.spawned) != 1 {
		t.Fatalf("spawned %d projectiles, want 1", len(w.spawned))
	}
	if p := w.spawned[0].(*Projectile); p.Damage != DamageFrost {
		t.Errorf("damage = %v, want frost", p.Damage)
	}
}

func TestDefender_NoFireInterval(t *testing.T) {
	d := NewDefender(Peashooter, physics.Pt(300, 200), 0, 0)
	if d.ShouldFire(0) {
		t.Error("a defender without an interval must never fire")
	}
}

func TestCandidate_Slots(t *testing.T) {
	tests := []struct {
		kind DefenderKind
		at   physics.Vector2D
	}{
		{Peashooter, physics.Pt(230, 650)},
		{FrostShooter, physics.Pt(470, 650)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			c := NewCandidate(tt.kind)
			if c.Position != tt.at {
				t.Errorf("position = %v, want %v", c.Position, tt.at)
			}
			w := &stubWorld{tick: 0}
			c.Advance(w)
			if c.Position != tt.at || len(w.spawned) != 0 || c.Expired() {
				t.Error("candidate must stay inert")
			}
		})
	}
}

func TestPreview_MoveTo(t *testing.T) {
	p := NewPreview(FrostShooter, physics.Pt(0, 0))
	p.MoveTo(physics.Pt(512, 347))
	if p.Position != physics.Pt(512, 347) || p.Kind() != KindPreview {
		t.Errorf("preview = %+v", p)
	}
}
