package doctrine

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/kepler-games/aurora/battle-core/model"
)

func TestExprSourcesCompile(t *testing.T) {
	triggers := []Trigger{
		TriggerOwnLossPct, TriggerEnemyLossPct, TriggerOwnMorale,
		TriggerEnemyMorale, TriggerRound, TriggerOwnDisorder, TriggerFlagshipCritical,
	}
	comparisons := []Comparison{AtLeast, Above, AtMost, Below}

	for _, tr := range triggers {
		for _, cmp := range comparisons {
			o := ConditionalOrder{Trigger: tr, Comparison: cmp, Threshold: 50}
			src := o.exprSource()
			if _, err := expr.Compile(src, expr.Env(BattleConditions{}), expr.AsBool()); err != nil {
				t.Errorf("trigger %d comparison %d failed to compile: %v\nsource: %s", tr, cmp, err, src)
			}
		}
	}
}

func TestCompiledOrderEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		order ConditionalOrder
		cond  BattleConditions
		want  bool
	}{
		{
			name:  "loss threshold crossed",
			order: ConditionalOrder{Trigger: TriggerOwnLossPct, Comparison: AtLeast, Threshold: 50},
			cond:  BattleConditions{Round: 4, OwnUnits: 2, OwnLosses: 60},
			want:  true,
		},
		{
			name:  "loss threshold not reached",
			order: ConditionalOrder{Trigger: TriggerOwnLossPct, Comparison: AtLeast, Threshold: 50},
			cond:  BattleConditions{Round: 4, OwnUnits: 8, OwnLosses: 20},
			want:  false,
		},
		{
			name:  "morale below",
			order: ConditionalOrder{Trigger: TriggerOwnMorale, Comparison: Below, Threshold: 30},
			cond:  BattleConditions{OwnUnits: 3, OwnMorale: 25},
			want:  true,
		},
		{
			name:  "round trigger uses integer comparison",
			order: ConditionalOrder{Trigger: TriggerRound, Comparison: AtLeast, Threshold: 3},
			cond:  BattleConditions{Round: 3},
			want:  true,
		},
		{
			name:  "flagship critical ignores threshold",
			order: ConditionalOrder{Trigger: TriggerFlagshipCritical, Threshold: 99},
			cond:  BattleConditions{FlagshipDown: true},
			want:  true,
		},
		{
			name:  "disorder above",
			order: ConditionalOrder{Trigger: TriggerOwnDisorder, Comparison: Above, Threshold: 40},
			cond:  BattleConditions{Disorder: 41},
			want:  true,
		},
		{
			name:  "enemy losses at most",
			order: ConditionalOrder{Trigger: TriggerEnemyLossPct, Comparison: AtMost, Threshold: 10},
			cond:  BattleConditions{EnemyLosses: 25},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Default()
			d.Orders = []ConditionalOrder{tt.order}
			compiled, err := CompileOrders(d)
			if err != nil {
				t.Fatalf("CompileOrders: %v", err)
			}
			got, err := compiled[0].Evaluate(tt.cond)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOneShotFiresOnce(t *testing.T) {
	d := Default()
	d.Orders = []ConditionalOrder{{
		Name:       "break once",
		Trigger:    TriggerRound,
		Comparison: AtLeast,
		Threshold:  1,
		Action:     ActionChangeFormation,
		Formation:  model.FormationSphere,
		OneShot:    true,
	}}
	compiled, err := CompileOrders(d)
	if err != nil {
		t.Fatalf("CompileOrders: %v", err)
	}

	cond := BattleConditions{Round: 2}
	first, err := compiled[0].Evaluate(cond)
	if err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	if !first {
		t.Fatal("one-shot order did not fire on first match")
	}

	second, err := compiled[0].Evaluate(cond)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if second {
		t.Error("one-shot order fired twice")
	}
}

func TestRepeatingOrderKeepsFiring(t *testing.T) {
	d := Default()
	d.Orders = []ConditionalOrder{{
		Name:       "hold pattern",
		Trigger:    TriggerOwnDisorder,
		Comparison: AtLeast,
		Threshold:  10,
	}}
	compiled, err := CompileOrders(d)
	if err != nil {
		t.Fatalf("CompileOrders: %v", err)
	}

	cond := BattleConditions{Disorder: 50}
	for i := 0; i < 3; i++ {
		fired, err := compiled[0].Evaluate(cond)
		if err != nil {
			t.Fatalf("Evaluate %d: %v", i, err)
		}
		if !fired {
			t.Errorf("repeating order stopped firing on evaluation %d", i)
		}
	}
}
