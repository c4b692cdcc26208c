package combat

import (
	"log/slog"
	"math/rand"

	"github.com/kepler-games/aurora/battle-core/doctrine"
	"github.com/kepler-games/aurora/battle-core/model"
)

// retreatGraceRounds is how long both sides hold regardless of conditions:
// no retreat check of any kind before round 3.
const retreatGraceRounds = 3

// wantsRetreat decides, after a round's damage, whether a side withdraws.
// Checked in order: pre-declared conditional retreat orders, the
// doctrine's explicit retreat condition, then the stochastic morale check.
func wantsRetreat(rng *rand.Rand, s *side, enemy *side, round int) bool {
	if round < retreatGraceRounds {
		return false
	}

	cond := s.conditions(enemy, round)

	// Conditional retreat orders are planning, so they fire even under an
	// otherwise never-retreat doctrine.
	for _, co := range s.orders {
		if co.Order.Action != doctrine.ActionRetreat {
			continue
		}
		fired, err := co.Evaluate(cond)
		if err != nil {
			slog.Warn("retreat order evaluation failed", "side", s.role.String(), "order", co.Order.Name, "error", err)
			continue
		}
		if fired {
			return true
		}
	}

	if explicitRetreat(s.doc.Retreat, cond) {
		return true
	}

	return moraleCheck(rng, s, cond)
}

// explicitRetreat evaluates the doctrine's declared withdrawal rule.
// Elite and legendary forces tolerate deeper morale collapse before their
// break rule trips.
func explicitRetreat(rc doctrine.RetreatCondition, cond doctrine.BattleConditions) bool {
	switch rc.Rule {
	case doctrine.RetreatLossesAbove:
		return cond.OwnLosses >= rc.Threshold
	case doctrine.RetreatFlagshipCritical:
		return cond.FlagshipDown
	case doctrine.RetreatMoraleBreak:
		return cond.OwnMorale < rc.Threshold/trainingTierFactor(cond.OwnExperience)
	default: // RetreatNever
		return false
	}
}

// moraleCheck is the purely morale-driven stochastic withdrawal: chance
// scales with how shaken the force is, doubles under an evasive stance,
// and is suppressed entirely by all-out or never-retreat postures.
func moraleCheck(rng *rand.Rand, s *side, cond doctrine.BattleConditions) bool {
	if s.doc.Retreat.Rule == doctrine.RetreatNever || s.stance == model.StanceAllOut {
		return false
	}
	chance := (100 - cond.OwnMorale) / 200
	if s.stance == model.StanceEvasive {
		chance *= 2
	}
	return rng.Float64() < chance
}

// trainingTierFactor scales how much morale collapse a force absorbs
// before breaking: elite crews 1.2x, legendary crews 2x.
func trainingTierFactor(avgExperience float64) float64 {
	switch {
	case avgExperience >= 90:
		return 2.0
	case avgExperience >= 75:
		return 1.2
	default:
		return 1.0
	}
}
