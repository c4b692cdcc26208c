package model

// ModifierFactor is one labeled entry of a side's multiplicative power
// stack. The ordered breakdown is returned alongside every scalar total so
// balance work and tests can see exactly where power came from.
type ModifierFactor struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Breakdown is a side's full modifier stack for one round.
type Breakdown struct {
	Base    float64          `json:"base"` // aggregate attack+defense before modifiers
	Total   float64          `json:"total"`
	Factors []ModifierFactor `json:"factors"`
}

// Factor returns the value recorded under label, or 1.0 when the factor
// did not apply this round.
func (b Breakdown) Factor(label string) float64 {
	for _, f := range b.Factors {
		if f.Label == label {
			return f.Value
		}
	}
	return 1.0
}

// DamageRecord is one unit's damage for a single round. Shield damage is
// always zero for ground elements.
type DamageRecord struct {
	UnitID       int    `json:"unitId"`
	UnitName     string `json:"unitName"`
	HullDamage   int    `json:"hullDamage"`
	ShieldDamage int    `json:"shieldDamage"`
	Destroyed    bool   `json:"destroyed"`
}

// RoundOutcome classifies a single round. A retreat outcome supersedes the
// advantage classification and terminates the battle.
type RoundOutcome int

const (
	RoundStalemate RoundOutcome = iota
	RoundAttackerAdvantage
	RoundDefenderAdvantage
	RoundAttackerRetreats
	RoundDefenderRetreats
)

func (o RoundOutcome) String() string {
	switch o {
	case RoundStalemate:
		return "stalemate"
	case RoundAttackerAdvantage:
		return "attacker_advantage"
	case RoundDefenderAdvantage:
		return "defender_advantage"
	case RoundAttackerRetreats:
		return "attacker_retreats"
	case RoundDefenderRetreats:
		return "defender_retreats"
	default:
		return "unknown"
	}
}

// Retreat reports whether the round ended the battle by withdrawal.
func (o RoundOutcome) Retreat() bool {
	return o == RoundAttackerRetreats || o == RoundDefenderRetreats
}

// Round is the immutable record of one resolved round, appended to the
// battle log in order. Each record is self-contained so it can be streamed
// to a presentation client the moment it is produced.
type Round struct {
	BattleID          string         `json:"battleId"`
	Number            int            `json:"number"`
	Outcome           RoundOutcome   `json:"outcome"`
	AttackerPower     float64        `json:"attackerPower"` // post-variance effective power
	DefenderPower     float64        `json:"defenderPower"`
	AttackerModifiers Breakdown      `json:"attackerModifiers"`
	DefenderModifiers Breakdown      `json:"defenderModifiers"`
	AttackerHits      []DamageRecord `json:"attackerHits"` // damage suffered by the attacker
	DefenderHits      []DamageRecord `json:"defenderHits"`
	AttackerDisorder  float64        `json:"attackerDisorder"`
	DefenderDisorder  float64        `json:"defenderDisorder"`
	Events            []string       `json:"events,omitempty"`
	Narrative         string         `json:"narrative"`
}

// Outcome is the terminal classification of a whole battle.
type Outcome int

const (
	Stalemate Outcome = iota
	AttackerVictory
	DefenderVictory
	MutualDestruction
)

func (o Outcome) String() string {
	switch o {
	case Stalemate:
		return "stalemate"
	case AttackerVictory:
		return "attacker_victory"
	case DefenderVictory:
		return "defender_victory"
	case MutualDestruction:
		return "mutual_destruction"
	default:
		return "unknown"
	}
}

// UnitReport is a unit's cumulative battle damage, for the game layer to
// apply back onto its persistent roster.
type UnitReport struct {
	UnitID     int    `json:"unitId"`
	UnitName   string `json:"unitName"`
	HullDamage int    `json:"hullDamage"`
	Destroyed  bool   `json:"destroyed"`
}

// BattleResult is the final immutable summary of a resolved battle.
type BattleResult struct {
	BattleID        string       `json:"battleId"`
	Outcome         Outcome      `json:"outcome"`
	Rounds          int          `json:"rounds"`
	AttackerReports []UnitReport `json:"attackerReports"`
	DefenderReports []UnitReport `json:"defenderReports"`
	AttackerLost    int          `json:"attackerLost"` // destroyed unit count
	DefenderLost    int          `json:"defenderLost"`
}
