package combat

import "github.com/kepler-games/aurora/battle-core/model"

// advantageMargin is how many more advantage rounds one side needs for a
// timed-out battle to count as its victory rather than a stalemate.
const advantageMargin = 2

// classifyOutcome turns the round history and final survivor counts into
// the battle's terminal classification, in strict priority order: retreat
// beats annihilation beats the advantage-round margin.
func classifyOutcome(rounds []model.Round, attackerAlive, defenderAlive int) model.Outcome {
	if len(rounds) > 0 {
		switch rounds[len(rounds)-1].Outcome {
		case model.RoundAttackerRetreats:
			return model.DefenderVictory
		case model.RoundDefenderRetreats:
			return model.AttackerVictory
		}
	}

	switch {
	case attackerAlive == 0 && defenderAlive == 0:
		return model.MutualDestruction
	case attackerAlive == 0:
		return model.DefenderVictory
	case defenderAlive == 0:
		return model.AttackerVictory
	}

	attackerRounds, defenderRounds := 0, 0
	for _, r := range rounds {
		switch r.Outcome {
		case model.RoundAttackerAdvantage:
			attackerRounds++
		case model.RoundDefenderAdvantage:
			defenderRounds++
		}
	}
	switch {
	case attackerRounds-defenderRounds > advantageMargin:
		return model.AttackerVictory
	case defenderRounds-attackerRounds > advantageMargin:
		return model.DefenderVictory
	default:
		return model.Stalemate
	}
}
