package session

import (
	"fmt"
	"strings"

	"github.com/kepler-games/aurora/battle-core/combat"
	"github.com/kepler-games/aurora/battle-core/ipc"
	"github.com/kepler-games/aurora/battle-core/model"
)

// Disorder this high at battle's end means the command structure was
// saturated; drill is the lever that brings it down.
const disorderConcern = 40

// Advise builds the after-action report for one side: a plain-text
// summary plus doctrine suggestions derived from the round history. The
// suggestions are purely advisory; applying them is the game layer's
// call.
func Advise(role combat.Role, result model.BattleResult, rounds []model.Round) ipc.AdviceMessage {
	return ipc.AdviceMessage{
		Side:        role.String(),
		Summary:     summarize(role, result, rounds),
		Adjustments: proposeAdjustments(role, result, rounds),
	}
}

// summarize produces a human-readable account of the battle from one
// side's point of view.
func summarize(role combat.Role, result model.BattleResult, rounds []model.Round) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Outcome: %s after %d rounds\n", result.Outcome.String(), result.Rounds)

	ownLost, enemyLost := result.AttackerLost, result.DefenderLost
	ownTotal, enemyTotal := len(result.AttackerReports), len(result.DefenderReports)
	if role == combat.RoleDefender {
		ownLost, enemyLost = enemyLost, ownLost
		ownTotal, enemyTotal = enemyTotal, ownTotal
	}
	fmt.Fprintf(&b, "Losses: %d of %d own, %d of %d enemy\n", ownLost, ownTotal, enemyLost, enemyTotal)

	ownAdv, enemyAdv := advantageRounds(role, rounds)
	fmt.Fprintf(&b, "Rounds carried: %d own, %d enemy\n", ownAdv, enemyAdv)

	if len(rounds) > 0 {
		fmt.Fprintf(&b, "Final disorder: %.0f\n", ownDisorder(role, rounds[len(rounds)-1]))
	}

	var events []string
	for _, r := range rounds {
		events = append(events, r.Events...)
	}
	if len(events) > 0 {
		fmt.Fprintf(&b, "Notable: %s\n", strings.Join(events, ", "))
	}

	return b.String()
}

// proposeAdjustments derives doctrine suggestions from what the round
// history shows. Every rule keys off recorded modifier factors and
// counts, so the same battle always yields the same advice.
func proposeAdjustments(role combat.Role, result model.BattleResult, rounds []model.Round) []ipc.Adjustment {
	var out []ipc.Adjustment
	if len(rounds) == 0 {
		return out
	}

	if f := avgFactor(role, rounds, combat.FactorFormation); f < 1.0 {
		out = append(out, ipc.Adjustment{
			Setting: "formation",
			Change:  "switch formation",
			Reason:  fmt.Sprintf("the enemy formation countered ours all battle (avg factor %.2f)", f),
		})
	}

	if d := ownDisorder(role, rounds[len(rounds)-1]); d >= disorderConcern {
		out = append(out, ipc.Adjustment{
			Setting: "drill",
			Change:  "increase",
			Reason:  fmt.Sprintf("disorder ended at %.0f; drilled forces shed command friction faster", d),
		})
	}

	if f := avgFactor(role, rounds, combat.FactorDoctrine); f < 1.05 {
		out = append(out, ipc.Adjustment{
			Setting: "orders",
			Change:  "add conditional orders and contingency plans",
			Reason:  "pre-battle planning contributed almost nothing to execution",
		})
	}

	ownLost := result.AttackerLost
	ownTotal := len(result.AttackerReports)
	if role == combat.RoleDefender {
		ownLost = result.DefenderLost
		ownTotal = len(result.DefenderReports)
	}
	if ownTotal > 0 && ownLost*2 > ownTotal && !retreated(role, rounds) {
		out = append(out, ipc.Adjustment{
			Setting: "retreat",
			Change:  "add a losses-above condition",
			Reason:  fmt.Sprintf("the force was ground down in place, losing %d of %d", ownLost, ownTotal),
		})
	}

	return out
}

func advantageRounds(role combat.Role, rounds []model.Round) (own, enemy int) {
	for _, r := range rounds {
		switch r.Outcome {
		case model.RoundAttackerAdvantage:
			if role == combat.RoleAttacker {
				own++
			} else {
				enemy++
			}
		case model.RoundDefenderAdvantage:
			if role == combat.RoleDefender {
				own++
			} else {
				enemy++
			}
		}
	}
	return own, enemy
}

func ownDisorder(role combat.Role, r model.Round) float64 {
	if role == combat.RoleDefender {
		return r.DefenderDisorder
	}
	return r.AttackerDisorder
}

func retreated(role combat.Role, rounds []model.Round) bool {
	last := rounds[len(rounds)-1].Outcome
	if role == combat.RoleAttacker {
		return last == model.RoundAttackerRetreats
	}
	return last == model.RoundDefenderRetreats
}

func avgFactor(role combat.Role, rounds []model.Round, label string) float64 {
	total := 0.0
	for _, r := range rounds {
		mods := r.AttackerModifiers
		if role == combat.RoleDefender {
			mods = r.DefenderModifiers
		}
		total += mods.Factor(label)
	}
	return total / float64(len(rounds))
}
