package combat

import (
	"math"
	"testing"

	"github.com/kepler-games/aurora/battle-core/model"
)

func TestFormationDelta(t *testing.T) {
	tests := []struct {
		own, enemy model.Formation
		want       float64
	}{
		{model.FormationWedge, model.FormationLine, 15},
		{model.FormationLine, model.FormationWedge, -10},
		{model.FormationSphere, model.FormationWedge, 15},
		{model.FormationScattered, model.FormationSphere, 15},
		// Mirrored and unlisted pairings are neutral.
		{model.FormationLine, model.FormationLine, 0},
		{model.FormationWedge, model.FormationEchelon, 0},
	}
	for _, tt := range tests {
		if got := FormationDelta(tt.own, tt.enemy); got != tt.want {
			t.Errorf("FormationDelta(%s, %s) = %v, want %v", tt.own, tt.enemy, got, tt.want)
		}
	}
}

func TestTerrainFactorRoles(t *testing.T) {
	units := []model.Unit{{ID: 1, Hull: 10, Size: model.SizeLarge}}

	if got := terrainFactor(spaceTerrain, model.JumpGate, RoleDefender, units); got != 1.5 {
		t.Errorf("jump gate defender factor = %v, want 1.5", got)
	}
	if got := terrainFactor(spaceTerrain, model.JumpGate, RoleAttacker, units); got != 0.7 {
		t.Errorf("jump gate attacker factor = %v, want 0.7", got)
	}
	// A ground terrain passed against the space table is neutral.
	if got := terrainFactor(spaceTerrain, model.MountainPass, RoleAttacker, units); got != 1.0 {
		t.Errorf("unknown terrain factor = %v, want 1.0", got)
	}
}

func TestTerrainFactorCompositionScaling(t *testing.T) {
	bigSlow := []model.Unit{
		{ID: 1, Hull: 100, Size: model.SizeCapital, Maneuver: 0},
		{ID: 2, Hull: 100, Size: model.SizeLarge, Maneuver: 0},
	}
	smallAgile := []model.Unit{
		{ID: 1, Hull: 10, Size: model.SizeSmall, Maneuver: 1},
		{ID: 2, Hull: 10, Size: model.SizeSmall, Maneuver: 1},
	}

	slow := terrainFactor(spaceTerrain, model.AsteroidField, RoleDefender, bigSlow)
	agile := terrainFactor(spaceTerrain, model.AsteroidField, RoleDefender, smallAgile)
	if agile <= slow {
		t.Errorf("asteroid field should reward small agile hulls: agile %v <= slow %v", agile, slow)
	}

	// Flat rows ignore composition entirely.
	a := terrainFactor(spaceTerrain, model.DebrisField, RoleDefender, bigSlow)
	b := terrainFactor(spaceTerrain, model.DebrisField, RoleDefender, smallAgile)
	if a != b {
		t.Errorf("debris field should be composition-neutral: %v vs %v", a, b)
	}
}

func TestCompositionScaleRange(t *testing.T) {
	worst := compositionScale([]model.Unit{{ID: 1, Hull: 1, Size: model.SizeCapital, Maneuver: 0}})
	best := compositionScale([]model.Unit{{ID: 1, Hull: 1, Size: model.SizeSmall, Maneuver: 1}})
	if math.Abs(worst-0.8) > 1e-9 {
		t.Errorf("worst composition scale = %v, want 0.8", worst)
	}
	if math.Abs(best-1.2) > 1e-9 {
		t.Errorf("best composition scale = %v, want 1.2", best)
	}
	if compositionScale(nil) != 1.0 {
		t.Error("empty roster composition scale should be neutral")
	}
}
