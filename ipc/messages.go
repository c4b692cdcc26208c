package ipc

import (
	"github.com/kepler-games/aurora/battle-core/combat"
	"github.com/kepler-games/aurora/battle-core/doctrine"
	"github.com/kepler-games/aurora/battle-core/model"
)

// ProtocolVersion is the battle protocol revision. The orchestrator states
// its version in the hello; the session rejects a mismatch up front rather
// than failing mid-battle on an unknown payload shape.
const ProtocolVersion = 1

// Message type constants — the protocol contract with the turn orchestrator.
const (
	TypeHello        = "hello"
	TypeAck          = "ack"
	TypeError        = "error"
	TypeStartBattle  = "start_battle"
	TypeIssueOrder   = "issue_order"
	TypeOrderAck     = "order_ack"
	TypeAdvance      = "advance"
	TypeRun          = "run"
	TypeRound        = "round"
	TypeBattleResult = "battle_result"
	TypeAdvice       = "advice"
)

type HelloMessage struct {
	Client  string `json:"client"`
	Version int    `json:"version"`
}

type AckMessage struct {
	Status   string `json:"status"`
	BattleID string `json:"battleId,omitempty"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// SideSpec is one side's input: the force snapshot, its doctrine (nil means
// standing orders), and whether a commander is present on the field.
type SideSpec struct {
	Force     model.Force              `json:"force"`
	Doctrine  *doctrine.BattleDoctrine `json:"doctrine,omitempty"`
	Commander bool                     `json:"commander"`
}

// StartBattleMessage opens a battle on the session. Arena is "space" or
// "ground". A zero seed still resolves deterministically.
type StartBattleMessage struct {
	Arena    string              `json:"arena"`
	BattleID string              `json:"battleId,omitempty"`
	Seed     int64               `json:"seed"`
	Context  model.CombatContext `json:"context"`
	Attacker SideSpec            `json:"attacker"`
	Defender SideSpec            `json:"defender"`
}

// IssueOrderMessage injects a live order between rounds.
// Side is "attacker" or "defender".
type IssueOrderMessage struct {
	Side  string           `json:"side"`
	Order combat.LiveOrder `json:"order"`
}

// OrderAckMessage reports what the live order cost in disorder terms.
type OrderAckMessage struct {
	Report combat.OrderChangeReport `json:"report"`
}

// AdviceMessage carries after-action doctrine suggestions for one side.
// The core never applies them itself; the training layer decides.
type AdviceMessage struct {
	Side        string       `json:"side"`
	Summary     string       `json:"summary"`
	Adjustments []Adjustment `json:"adjustments"`
}

// Adjustment is a single suggested doctrine change.
type Adjustment struct {
	Setting string `json:"setting"`
	Change  string `json:"change"`
	Reason  string `json:"reason"`
}
