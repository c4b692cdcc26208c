package combat

import (
	"fmt"

	"github.com/kepler-games/aurora/battle-core/model"
)

// Notable battle events, detected by diffing consecutive battle states.
// They ride along on the round record for presentation clients.
const (
	EventFirstBlood           = "first_blood"
	EventAttackerFlagshipLost = "attacker_flagship_lost"
	EventDefenderFlagshipLost = "defender_flagship_lost"
	EventAttackerShieldsDown  = "attacker_shields_depleted"
	EventDefenderShieldsDown  = "defender_shields_depleted"
	EventAttackerMauled       = "attacker_mauled"
	EventDefenderMauled       = "defender_mauled"
	EventDefendersHold        = "defenders_hold"
)

// snapshot captures the diffable facts of a battle state. One is taken at
// battle start and after every round; detectEvents compares consecutive
// pairs.
type snapshot struct {
	attackerAlive     int
	defenderAlive     int
	attackerDestroyed int
	defenderDestroyed int
	attackerFlagship  bool // a flagship is still fighting
	defenderFlagship  bool
	attackerShields   int
	defenderShields   int
}

func (b *Battle) snapshotState() snapshot {
	return snapshot{
		attackerAlive:     b.attacker.aliveCount(),
		defenderAlive:     b.defender.aliveCount(),
		attackerDestroyed: len(b.attacker.initial) - b.attacker.aliveCount(),
		defenderDestroyed: len(b.defender.initial) - b.defender.aliveCount(),
		attackerFlagship:  flagshipAlive(b.attacker.units),
		defenderFlagship:  flagshipAlive(b.defender.units),
		attackerShields:   totalShields(b.attacker.units),
		defenderShields:   totalShields(b.defender.units),
	}
}

func flagshipAlive(units []model.Unit) bool {
	for _, u := range units {
		if u.Flagship && u.Alive() {
			return true
		}
	}
	return false
}

func totalShields(units []model.Unit) int {
	total := 0
	for _, u := range units {
		if u.Alive() {
			total += u.Shield
		}
	}
	return total
}

// detectEvents diffs two consecutive snapshots into notable-event labels,
// in a fixed order so round records stay byte-identical across replays.
func detectEvents(prev, cur snapshot, ground bool) []string {
	var events []string

	prevBlood := prev.attackerDestroyed+prev.defenderDestroyed > 0
	curBlood := cur.attackerDestroyed+cur.defenderDestroyed > 0
	if !prevBlood && curBlood {
		events = append(events, EventFirstBlood)
	}

	if prev.attackerFlagship && !cur.attackerFlagship {
		events = append(events, EventAttackerFlagshipLost)
	}
	if prev.defenderFlagship && !cur.defenderFlagship {
		events = append(events, EventDefenderFlagshipLost)
	}

	if !ground {
		if prev.attackerShields > 0 && cur.attackerShields == 0 {
			events = append(events, EventAttackerShieldsDown)
		}
		if prev.defenderShields > 0 && cur.defenderShields == 0 {
			events = append(events, EventDefenderShieldsDown)
		}
	}

	if lost := cur.attackerDestroyed - prev.attackerDestroyed; prev.attackerAlive > 0 && lost*3 >= prev.attackerAlive && lost > 0 {
		events = append(events, EventAttackerMauled)
	}
	if lost := cur.defenderDestroyed - prev.defenderDestroyed; prev.defenderAlive > 0 && lost*3 >= prev.defenderAlive && lost > 0 {
		events = append(events, EventDefenderMauled)
	}

	if ground && cur.defenderAlive > 0 &&
		cur.attackerAlive >= 3*cur.defenderAlive &&
		cur.defenderDestroyed == prev.defenderDestroyed {
		events = append(events, EventDefendersHold)
	}

	return events
}

// narrate renders one round as human-readable text for the battle log.
func narrate(r model.Round, attackerName, defenderName string) string {
	atkDealt := totalHullDamage(r.DefenderHits)
	defDealt := totalHullDamage(r.AttackerHits)

	switch r.Outcome {
	case model.RoundAttackerRetreats:
		return fmt.Sprintf("Round %d: %s breaks off and withdraws from the field.", r.Number, attackerName)
	case model.RoundDefenderRetreats:
		return fmt.Sprintf("Round %d: %s abandons the position and falls back.", r.Number, defenderName)
	case model.RoundAttackerAdvantage:
		return fmt.Sprintf("Round %d: %s presses the advantage, dealing %d against %d in return.", r.Number, attackerName, atkDealt, defDealt)
	case model.RoundDefenderAdvantage:
		return fmt.Sprintf("Round %d: %s holds firm, dealing %d against %d in return.", r.Number, defenderName, defDealt, atkDealt)
	default:
		return fmt.Sprintf("Round %d: the lines grind against each other; %d and %d damage exchanged.", r.Number, atkDealt, defDealt)
	}
}

func totalHullDamage(hits []model.DamageRecord) int {
	total := 0
	for _, h := range hits {
		total += h.HullDamage
	}
	return total
}
