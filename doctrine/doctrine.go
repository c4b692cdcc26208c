// Package doctrine holds a force's pre-planned battle configuration:
// formation, engagement policy, targeting, retreat rules, conditional
// orders, and the drill level that measures how well crews rehearse the
// plan. Doctrines are authored and mutated at base by the training layer;
// during a battle they are read-only.
package doctrine

import (
	"errors"
	"fmt"

	"github.com/kepler-games/aurora/battle-core/model"
)

// MaxConditionalOrders caps the if/then orders a doctrine may carry.
// Exceeding it is rejected at edit time, never during battle.
const MaxConditionalOrders = 10

// ErrTooManyOrders is returned when a doctrine edit would exceed the
// conditional-order cap.
var ErrTooManyOrders = errors.New("doctrine: conditional order limit reached")

// BattleRole is a pre-assigned job for a single unit. Roles don't change
// resolution mechanics directly; assigning them is planning work that
// raises doctrine effectiveness.
type BattleRole int

const (
	RoleNone BattleRole = iota
	RoleScreen
	RoleStrike
	RoleReserve
	RoleSupport
	RoleGuard
)

func (r BattleRole) String() string {
	switch r {
	case RoleScreen:
		return "screen"
	case RoleStrike:
		return "strike"
	case RoleReserve:
		return "reserve"
	case RoleSupport:
		return "support"
	case RoleGuard:
		return "guard"
	default:
		return "none"
	}
}

// RetreatRule selects how a force decides to withdraw.
type RetreatRule int

const (
	RetreatMoraleBreak      RetreatRule = iota // withdraw when average morale falls below Threshold
	RetreatLossesAbove                         // withdraw when loss percentage reaches Threshold
	RetreatFlagshipCritical                    // withdraw when the flagship is lost or crippled
	RetreatNever                               // fight to the end; suppresses morale checks too
)

func (r RetreatRule) String() string {
	switch r {
	case RetreatMoraleBreak:
		return "morale_break"
	case RetreatLossesAbove:
		return "losses_above"
	case RetreatFlagshipCritical:
		return "flagship_critical"
	case RetreatNever:
		return "never"
	default:
		return "unknown"
	}
}

// RetreatCondition is the doctrine's explicit withdrawal rule. Threshold
// is a percentage for loss rules and a morale value for break rules.
type RetreatCondition struct {
	Rule      RetreatRule `json:"rule"`
	Threshold float64     `json:"threshold"`
}

// ContingencyPlan is a named, switchable order set. Activating a plan
// mid-battle is a single live order — one disorder charge instead of one
// per changed setting.
type ContingencyPlan struct {
	Name      string               `json:"name"`
	Formation model.Formation      `json:"formation"`
	Priority  model.TargetPriority `json:"priority"`
	Stance    model.Stance         `json:"stance"`
}

// BattleDoctrine is a force's long-lived combat plan. Drill is 0-100,
// raised by training between battles; it speeds disorder recovery and
// contributes to planning effectiveness.
type BattleDoctrine struct {
	Name      string               `json:"name"`
	Formation model.Formation      `json:"formation"`
	Policy    model.Stance         `json:"policy"`
	Priority  model.TargetPriority `json:"priority"`
	Retreat   RetreatCondition     `json:"retreat"`
	Drill     float64              `json:"drill"` // 0-100
	Orders    []ConditionalOrder   `json:"orders,omitempty"`
	UnitRoles map[int]BattleRole   `json:"unitRoles,omitempty"`
	Plans     []ContingencyPlan    `json:"plans,omitempty"`
}

// Default returns the unplanned baseline doctrine: line formation,
// balanced policy, withdraw on morale collapse. It scores zero planning
// points by construction.
func Default() BattleDoctrine {
	return BattleDoctrine{
		Name:      "Standing Orders",
		Formation: model.FormationLine,
		Policy:    model.StanceBalanced,
		Priority:  model.PriorityBalanced,
		Retreat:   RetreatCondition{Rule: RetreatMoraleBreak, Threshold: 20},
	}
}

// AddOrder appends a conditional order, enforcing the cap at edit time.
func (d *BattleDoctrine) AddOrder(o ConditionalOrder) error {
	if len(d.Orders) >= MaxConditionalOrders {
		return ErrTooManyOrders
	}
	d.Orders = append(d.Orders, o)
	return nil
}

// Plan returns the named contingency plan, or false if none matches.
func (d BattleDoctrine) Plan(name string) (ContingencyPlan, bool) {
	for _, p := range d.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return ContingencyPlan{}, false
}

// Validate clamps numeric fields into their domains and rejects
// configurations that cannot be resolved. It is the only error gate: once
// a doctrine passes, battle resolution never fails on its account.
func (d *BattleDoctrine) Validate() error {
	d.Drill = clamp(d.Drill, 0, 100)
	d.Retreat.Threshold = clamp(d.Retreat.Threshold, 0, 100)
	if len(d.Orders) > MaxConditionalOrders {
		return fmt.Errorf("%w: %d configured, max %d", ErrTooManyOrders, len(d.Orders), MaxConditionalOrders)
	}
	for i := range d.Orders {
		if err := d.Orders[i].validate(); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
	}
	return nil
}

// PlanningPoints accrue for every element the commander configured away
// from the defaults. They are capped at 50 inside Effectiveness so drill
// always matters.
func (d BattleDoctrine) PlanningPoints() float64 {
	pts := 0.0
	if d.Policy != model.StanceBalanced {
		pts += 5
	}
	if d.Formation != model.FormationLine {
		pts += 5
	}
	if d.Priority != model.PriorityBalanced {
		pts += 5
	}
	pts += 3 * float64(len(d.Orders))
	rolePts := float64(len(d.UnitRoles))
	if rolePts > 10 {
		rolePts = 10
	}
	pts += rolePts
	pts += 5 * float64(len(d.Plans))
	return pts
}

// Effectiveness scores how much the plan plus rehearsal is worth:
// min(50, planning points) + drill/2, range 0-100.
func (d BattleDoctrine) Effectiveness() float64 {
	pts := d.PlanningPoints()
	if pts > 50 {
		pts = 50
	}
	return pts + clamp(d.Drill, 0, 100)/2
}

// ExecutionFactor converts effectiveness into the combat-power multiplier
// used by the modifier stack: 1.0 for an unplanned force, up to 2.0 for a
// fully planned, fully drilled one.
func (d BattleDoctrine) ExecutionFactor() float64 {
	return 1 + d.Effectiveness()/100
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
