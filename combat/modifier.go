package combat

import (
	"math"

	"github.com/kepler-games/aurora/battle-core/model"
)

// Modifier breakdown labels. Tests and balance tooling key on these, so
// they are constants rather than inline strings.
const (
	FactorStance       = "stance"
	FactorExperience   = "experience"
	FactorMorale       = "morale"
	FactorCommander    = "commander"
	FactorTerrain      = "terrain"
	FactorAmbush       = "ambush"
	FactorEntrenchment = "entrenchment"
	FactorUnderdog     = "underdog"
	FactorOrbital      = "orbital"
	FactorSupply       = "supply"
	FactorDoctrine     = "doctrine"
	FactorDisorder     = "disorder"
	FactorFormation    = "formation"
)

// ModifierInput gathers everything one side's power stack depends on for a
// single round.
type ModifierInput struct {
	Stats          ForceStats
	Units          []model.Unit // live roster, for composition-scaled terrain
	Role           Role
	Stance         model.Stance
	Formation      model.Formation
	EnemyFormation model.Formation
	Commander      bool
	SurpriseRound  bool // ambush context and this is the opening round
	Context        model.CombatContext
	EnemyUnits     int
	Disorder       float64 // 0-100
	DoctrineScore  float64 // doctrine effectiveness, 0-100
	Terrain        map[model.Terrain]terrainEffect
	GroundRules    bool // selects the steeper fortification and underdog curves
}

// ComputeModifiers builds the labeled multiplicative stack for one side.
// Every applicable factor multiplies into the running total and is
// recorded under its label; factors that don't apply this round are simply
// absent from the breakdown.
func ComputeModifiers(in ModifierInput) model.Breakdown {
	b := model.Breakdown{Base: in.Stats.Base(), Total: in.Stats.Base()}
	if in.Stats.Zero() {
		b.Total = 0
		return b
	}

	apply := func(label string, v float64) {
		b.Factors = append(b.Factors, model.ModifierFactor{Label: label, Value: v})
		b.Total *= v
	}

	apply(FactorStance, stanceFactor(in.Stance, in.Role))
	apply(FactorExperience, 0.5+in.Stats.AvgExperience/100)
	apply(FactorMorale, 0.3+0.9*in.Stats.AvgMorale/100)
	if in.Commander {
		apply(FactorCommander, 1.1)
	}
	apply(FactorTerrain, terrainFactor(in.Terrain, in.Context.Terrain, in.Role, in.Units))
	if in.SurpriseRound {
		if in.Role == RoleAttacker {
			apply(FactorAmbush, 1.3)
		} else {
			apply(FactorAmbush, 0.6)
		}
	}
	if in.Role == RoleDefender {
		if f := entrenchmentFactor(in.Context, in.GroundRules); f != 1.0 {
			apply(FactorEntrenchment, f)
		}
	}
	if f := underdogFactor(in); f != 1.0 {
		apply(FactorUnderdog, f)
	}
	if f := orbitalFactor(in.Context, in.Role); f != 1.0 {
		apply(FactorOrbital, f)
	}
	if in.Role == RoleAttacker && in.Context.AttackerSupply > 0 {
		strain := clamp(float64(in.Context.AttackerSupply), 0, 100)
		apply(FactorSupply, 1-strain/200)
	}
	apply(FactorDoctrine, 1+clamp(in.DoctrineScore, 0, 100)/100)
	apply(FactorDisorder, 1-clamp(in.Disorder, 0, 100)/200)
	apply(FactorFormation, (100+FormationDelta(in.Formation, in.EnemyFormation))/100)

	return b
}

// stanceFactor is asymmetric: the same posture helps an attacker and hurts
// a defender, or vice versa.
func stanceFactor(s model.Stance, role Role) float64 {
	attacking := role == RoleAttacker
	switch s {
	case model.StanceAggressive:
		if attacking {
			return 1.2
		}
		return 0.9
	case model.StanceDefensive:
		if attacking {
			return 0.85
		}
		return 1.15
	case model.StanceEvasive:
		if attacking {
			return 0.7
		}
		return 1.05
	case model.StanceAllOut:
		if attacking {
			return 1.35
		}
		return 0.75
	default:
		return 1.0
	}
}

// entrenchmentFactor combines the prepared-positions bonus with
// fortification works. Space fortifications top out at +40%; ground
// fortification is far steeper, reaching 3x at level 5.
func entrenchmentFactor(ctx model.CombatContext, ground bool) float64 {
	f := 1.0
	if ctx.DefenderEntrenched {
		f *= 1.15
	}
	level := float64(clampInt(ctx.Fortification, 0, 5))
	if ground {
		f *= 1 + 0.4*level
	} else {
		f *= 1 + 0.08*level
	}
	return f
}

// underdogFactor is the bounded bonus for a heavily outnumbered side.
// Space: a flat +15% for a 2:1 or worse deficit held by veteran-or-better
// crews. Ground: defenders in a chokepoint outnumbered worse than 3:1 gain
// a bonus growing with the log of the ratio, saturating at 3.0x so power
// stays bounded however large the attacking horde.
func underdogFactor(in ModifierInput) float64 {
	if in.Stats.Units == 0 || in.EnemyUnits == 0 {
		return 1.0
	}
	ratio := float64(in.EnemyUnits) / float64(in.Stats.Units)
	if in.GroundRules {
		if in.Role == RoleDefender && in.Context.Terrain.Chokepoint() && ratio > 3 {
			return math.Min(3.0, 1+0.75*math.Log(ratio))
		}
		return 1.0
	}
	if ratio >= 2 && in.Stats.AvgExperience >= 60 {
		return 1.15
	}
	return 1.0
}

// orbitalFactor grants fire support to the side holding it and penalizes
// a side facing it with no reply.
func orbitalFactor(ctx model.CombatContext, role Role) float64 {
	own, enemy := ctx.AttackerOrbital, ctx.DefenderOrbital
	if role == RoleDefender {
		own, enemy = enemy, own
	}
	own = clampInt(own, 0, 3)
	enemy = clampInt(enemy, 0, 3)
	f := 1.0
	if own > 0 {
		f *= 1 + 0.1*float64(own)
	}
	if enemy > 0 && own == 0 {
		f *= 1 - 0.1*float64(enemy)
	}
	return f
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
