package doctrine

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/kepler-games/aurora/battle-core/model"
)

// Trigger selects which live battle quantity a conditional order watches.
type Trigger int

const (
	TriggerOwnLossPct Trigger = iota
	TriggerEnemyLossPct
	TriggerOwnMorale
	TriggerEnemyMorale
	TriggerRound
	TriggerOwnDisorder
	TriggerFlagshipCritical // boolean; comparison and threshold are ignored
)

// Comparison relates the watched quantity to the threshold.
type Comparison int

const (
	AtLeast Comparison = iota
	Above
	AtMost
	Below
)

func (c Comparison) operator() string {
	switch c {
	case AtLeast:
		return ">="
	case Above:
		return ">"
	case AtMost:
		return "<="
	case Below:
		return "<"
	default:
		return ">="
	}
}

// OrderAction is what fires when a conditional order's trigger is true.
type OrderAction int

const (
	ActionChangeFormation OrderAction = iota
	ActionChangePriority
	ActionActivatePlan
	ActionRetreat
)

func (a OrderAction) String() string {
	switch a {
	case ActionChangeFormation:
		return "change_formation"
	case ActionChangePriority:
		return "change_priority"
	case ActionActivatePlan:
		return "activate_plan"
	case ActionRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// ConditionalOrder is a pre-declared if/then rule evaluated automatically
// each round. Because the crew rehearsed it, firing one costs no disorder —
// the identical change issued live mid-battle does.
type ConditionalOrder struct {
	Name       string               `json:"name"`
	Trigger    Trigger              `json:"trigger"`
	Comparison Comparison           `json:"comparison"`
	Threshold  float64              `json:"threshold"`
	Action     OrderAction          `json:"action"`
	Formation  model.Formation      `json:"formation,omitempty"` // ActionChangeFormation
	Priority   model.TargetPriority `json:"priority,omitempty"`  // ActionChangePriority
	Plan       string               `json:"plan,omitempty"`      // ActionActivatePlan
	OneShot    bool                 `json:"oneShot"`
}

// exprSource renders the trigger as expr source against BattleConditions.
// All sources are generated here via Sprintf — user input never reaches
// the expression compiler as raw text.
func (o ConditionalOrder) exprSource() string {
	switch o.Trigger {
	case TriggerFlagshipCritical:
		return "FlagshipCritical()"
	case TriggerRound:
		return fmt.Sprintf("RoundNumber() %s %d", o.Comparison.operator(), int(o.Threshold))
	default:
		return fmt.Sprintf("%s %s %.2f", o.Trigger.method(), o.Comparison.operator(), o.Threshold)
	}
}

func (t Trigger) method() string {
	switch t {
	case TriggerOwnLossPct:
		return "OwnLossPct()"
	case TriggerEnemyLossPct:
		return "EnemyLossPct()"
	case TriggerOwnMorale:
		return "OwnAvgMorale()"
	case TriggerEnemyMorale:
		return "EnemyAvgMorale()"
	case TriggerOwnDisorder:
		return "OwnDisorder()"
	default:
		return "RoundNumber()"
	}
}

func (o *ConditionalOrder) validate() error {
	o.Threshold = clamp(o.Threshold, 0, 100)
	if o.Action == ActionActivatePlan && o.Plan == "" {
		return fmt.Errorf("activate_plan order %q names no plan", o.Name)
	}
	return nil
}

// CompiledOrder pairs an order with its expr bytecode plus the per-battle
// fired flag for one-shot semantics. Instances belong to a single battle.
type CompiledOrder struct {
	Order   ConditionalOrder
	program *vm.Program
	fired   bool
}

// CompileOrders compiles every conditional order of a doctrine into expr
// bytecode. Called once at battle setup; a compile failure is a setup
// error, never a mid-battle one.
func CompileOrders(d BattleDoctrine) ([]*CompiledOrder, error) {
	out := make([]*CompiledOrder, 0, len(d.Orders))
	for _, o := range d.Orders {
		prog, err := expr.Compile(o.exprSource(), expr.Env(BattleConditions{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile order %q: %w", o.Name, err)
		}
		out = append(out, &CompiledOrder{Order: o, program: prog})
	}
	return out, nil
}

// Evaluate runs the compiled trigger against the current conditions and
// returns whether the order fires this round, respecting one-shot state.
func (c *CompiledOrder) Evaluate(cond BattleConditions) (bool, error) {
	if c.Order.OneShot && c.fired {
		return false, nil
	}
	result, err := vm.Run(c.program, cond)
	if err != nil {
		return false, fmt.Errorf("evaluate order %q: %w", c.Order.Name, err)
	}
	match, ok := result.(bool)
	if !ok || !match {
		return false, nil
	}
	c.fired = true
	return true, nil
}
