package combat

import "github.com/kepler-games/aurora/battle-core/model"

// Role distinguishes the two sides of a battle. Several modifiers are
// asymmetric between them.
type Role int

const (
	RoleAttacker Role = iota
	RoleDefender
)

func (r Role) String() string {
	if r == RoleDefender {
		return "defender"
	}
	return "attacker"
}

// formationMatchups is the static directional advantage table: the delta
// (in percent) a formation gains when engaging another. Missing pairs are
// neutral. Constructed once; never mutated.
var formationMatchups = map[model.Formation]map[model.Formation]float64{
	model.FormationWedge: {
		model.FormationLine:      15, // concentrated push breaks a line
		model.FormationSphere:    -15,
		model.FormationScattered: -5,
	},
	model.FormationLine: {
		model.FormationWedge:   -10,
		model.FormationEchelon: 10,
	},
	model.FormationEchelon: {
		model.FormationLine:      -10,
		model.FormationScattered: 10,
	},
	model.FormationScattered: {
		model.FormationWedge:   5,
		model.FormationSphere:  15, // dispersed attackers envelop a static ball
		model.FormationEchelon: -10,
	},
	model.FormationSphere: {
		model.FormationWedge:     15, // all-round defense blunts the spear
		model.FormationScattered: -15,
	},
}

// FormationDelta returns the percentage advantage own gains engaging
// enemy. Zero for unlisted or mirrored matchups.
func FormationDelta(own, enemy model.Formation) float64 {
	if m, ok := formationMatchups[own]; ok {
		return m[enemy]
	}
	return 0
}

// terrainEffect is one row of a terrain table. sizeScaled rows are further
// scaled by the force's small-unit and maneuverability composition instead
// of applying as a flat constant.
type terrainEffect struct {
	attacker   float64
	defender   float64
	sizeScaled bool
}

// spaceTerrain and groundTerrain are the immutable per-arena lookup
// tables. Ground swings are deliberately wider than space ones.
var spaceTerrain = map[model.Terrain]terrainEffect{
	model.OpenSpace:     {attacker: 1.0, defender: 1.0},
	model.AsteroidField: {attacker: 0.9, defender: 1.15, sizeScaled: true},
	model.Nebula:        {attacker: 0.85, defender: 1.0, sizeScaled: true},
	model.DebrisField:   {attacker: 0.95, defender: 1.1},
	model.JumpGate:      {attacker: 0.7, defender: 1.5},
}

var groundTerrain = map[model.Terrain]terrainEffect{
	model.OpenGround:   {attacker: 1.1, defender: 0.95},
	model.Forest:       {attacker: 0.85, defender: 1.25, sizeScaled: true},
	model.Urban:        {attacker: 0.7, defender: 1.6, sizeScaled: true},
	model.Mountains:    {attacker: 0.8, defender: 1.4},
	model.MountainPass: {attacker: 0.4, defender: 2.5},
}

// terrainFactor looks up the terrain multiplier for a side. Unknown
// terrain (e.g. a ground terrain passed to a space table) is neutral.
func terrainFactor(table map[model.Terrain]terrainEffect, t model.Terrain, role Role, units []model.Unit) float64 {
	eff, ok := table[t]
	if !ok {
		return 1.0
	}
	base := eff.attacker
	if role == RoleDefender {
		base = eff.defender
	}
	if eff.sizeScaled {
		base *= compositionScale(units)
	}
	return base
}

// compositionScale rewards forces built from small, maneuverable units in
// terrain that punishes big hulls. Range [0.8, 1.2].
func compositionScale(units []model.Unit) float64 {
	alive, small, maneuver := 0, 0, 0.0
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		alive++
		if u.Size == model.SizeSmall {
			small++
		}
		maneuver += clamp(u.Maneuver, 0, 1)
	}
	if alive == 0 {
		return 1.0
	}
	smallShare := float64(small) / float64(alive)
	avgManeuver := maneuver / float64(alive)
	return 0.8 + 0.25*smallShare + 0.15*avgManeuver
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
