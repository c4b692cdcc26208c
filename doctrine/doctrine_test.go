package doctrine

import (
	"errors"
	"testing"

	"github.com/kepler-games/aurora/battle-core/model"
)

func TestDefaultScoresZeroPlanningPoints(t *testing.T) {
	d := Default()
	if pts := d.PlanningPoints(); pts != 0 {
		t.Errorf("Default() planning points = %v, want 0", pts)
	}
	if f := d.ExecutionFactor(); f != 1.0 {
		t.Errorf("Default() execution factor = %v, want 1.0", f)
	}
}

func TestPlanningPoints(t *testing.T) {
	tests := []struct {
		name string
		d    BattleDoctrine
		want float64
	}{
		{
			name: "non-default policy, formation, priority",
			d: BattleDoctrine{
				Policy:    model.StanceAggressive,
				Formation: model.FormationWedge,
				Priority:  model.PriorityWeakest,
			},
			want: 15,
		},
		{
			name: "orders worth three each",
			d: BattleDoctrine{
				Orders: []ConditionalOrder{{}, {}},
			},
			want: 6,
		},
		{
			name: "unit roles cap at ten",
			d: BattleDoctrine{
				UnitRoles: map[int]BattleRole{
					1: RoleScreen, 2: RoleScreen, 3: RoleScreen, 4: RoleScreen,
					5: RoleStrike, 6: RoleStrike, 7: RoleStrike, 8: RoleStrike,
					9: RoleGuard, 10: RoleGuard, 11: RoleGuard, 12: RoleGuard,
				},
			},
			want: 10,
		},
		{
			name: "plans worth five each",
			d: BattleDoctrine{
				Plans: []ContingencyPlan{{Name: "a"}, {Name: "b"}},
			},
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.PlanningPoints(); got != tt.want {
				t.Errorf("PlanningPoints() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectivenessCapsPlanningAtFifty(t *testing.T) {
	d := BattleDoctrine{
		Policy:    model.StanceAllOut,
		Formation: model.FormationSphere,
		Priority:  model.PriorityFlagships,
		Drill:     100,
	}
	// 25 orders would be 75 raw planning points; Validate would reject
	// this many, but Effectiveness must still cap regardless.
	for i := 0; i < 25; i++ {
		d.Orders = append(d.Orders, ConditionalOrder{})
	}
	if got := d.Effectiveness(); got != 100 {
		t.Errorf("Effectiveness() = %v, want 100 (50 planning cap + 50 drill)", got)
	}
	if got := d.ExecutionFactor(); got != 2.0 {
		t.Errorf("ExecutionFactor() = %v, want 2.0", got)
	}
}

func TestAddOrderEnforcesCap(t *testing.T) {
	d := Default()
	for i := 0; i < MaxConditionalOrders; i++ {
		if err := d.AddOrder(ConditionalOrder{Name: "ok"}); err != nil {
			t.Fatalf("AddOrder %d: unexpected error %v", i, err)
		}
	}
	err := d.AddOrder(ConditionalOrder{Name: "one too many"})
	if !errors.Is(err, ErrTooManyOrders) {
		t.Errorf("AddOrder over cap = %v, want ErrTooManyOrders", err)
	}
	if len(d.Orders) != MaxConditionalOrders {
		t.Errorf("order count after rejected add = %d, want %d", len(d.Orders), MaxConditionalOrders)
	}
}

func TestValidateClampsAndRejects(t *testing.T) {
	d := Default()
	d.Drill = 250
	d.Retreat.Threshold = -10
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Drill != 100 {
		t.Errorf("drill after validate = %v, want 100", d.Drill)
	}
	if d.Retreat.Threshold != 0 {
		t.Errorf("retreat threshold after validate = %v, want 0", d.Retreat.Threshold)
	}

	over := Default()
	for i := 0; i <= MaxConditionalOrders; i++ {
		over.Orders = append(over.Orders, ConditionalOrder{})
	}
	if err := over.Validate(); !errors.Is(err, ErrTooManyOrders) {
		t.Errorf("Validate over cap = %v, want ErrTooManyOrders", err)
	}

	missing := Default()
	missing.Orders = []ConditionalOrder{{Name: "fallback", Action: ActionActivatePlan}}
	if err := missing.Validate(); err == nil {
		t.Error("Validate accepted activate_plan order naming no plan")
	}
}

func TestPlanLookup(t *testing.T) {
	d := Default()
	d.Plans = []ContingencyPlan{
		{Name: "envelop", Formation: model.FormationScattered, Priority: model.PriorityEscorts, Stance: model.StanceAggressive},
	}

	p, ok := d.Plan("envelop")
	if !ok {
		t.Fatal("Plan(envelop) not found")
	}
	if p.Formation != model.FormationScattered {
		t.Errorf("plan formation = %v, want scattered", p.Formation)
	}

	if _, ok := d.Plan("missing"); ok {
		t.Error("Plan(missing) found a plan that does not exist")
	}
}
