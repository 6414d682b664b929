// pkg/entity/projectile_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

func TestProjectile_AdvanceAndExpire(t *testing.T) {
	p := NewProjectile(physics.Pt(1120, 180), DamageFrost)
	w := &stubWorld{}

	p.Advance(w)
	if p.Position != physics.Pt(1135, 180) {
		t.Fatalf("position = %v", p.Position)
	}
	if p.Expired() {
		t.Fatal("expired inside the field")
	}
	p.Advance(w)
	if p.Expired() {
		t.Fatal("expired at the edge")
	}
	p.Advance(w)
	if !p.Expired() {
		t.Errorf("not expired at x=%v", p.Position.X)
	}
	if p.Kind() != KindProjectile {
		t.Errorf("Kind() = %v", p.Kind())
	}
}
