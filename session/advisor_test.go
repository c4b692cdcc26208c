package session

import (
	"strings"
	"testing"

	"github.com/kepler-games/aurora/battle-core/combat"
	"github.com/kepler-games/aurora/battle-core/model"
)

func lostResult() (model.BattleResult, []model.Round) {
	result := model.BattleResult{
		BattleID: "b1",
		Outcome:  model.DefenderVictory,
		Rounds:   3,
		AttackerReports: []model.UnitReport{
			{UnitID: 1, Destroyed: true},
			{UnitID: 2, Destroyed: true},
			{UnitID: 3, Destroyed: true},
			{UnitID: 4},
		},
		DefenderReports: []model.UnitReport{
			{UnitID: 11},
			{UnitID: 12},
		},
		AttackerLost: 3,
		DefenderLost: 0,
	}

	mods := func(formation, doc float64) model.Breakdown {
		return model.Breakdown{
			Base:    100,
			Total:   100 * formation * doc,
			Factors: []model.ModifierFactor{
				{Label: combat.FactorFormation, Value: formation},
				{Label: combat.FactorDoctrine, Value: doc},
			},
		}
	}

	rounds := []model.Round{
		{Number: 1, Outcome: model.RoundDefenderAdvantage, AttackerModifiers: mods(0.9, 1.0), AttackerDisorder: 45, Events: []string{combat.EventFirstBlood}},
		{Number: 2, Outcome: model.RoundDefenderAdvantage, AttackerModifiers: mods(0.9, 1.0), AttackerDisorder: 50},
		{Number: 3, Outcome: model.RoundDefenderAdvantage, AttackerModifiers: mods(0.9, 1.0), AttackerDisorder: 55},
	}
	return result, rounds
}

func TestAdviseFlagsTheObviousProblems(t *testing.T) {
	result, rounds := lostResult()
	advice := Advise(combat.RoleAttacker, result, rounds)

	if advice.Side != "attacker" {
		t.Errorf("side = %q, want attacker", advice.Side)
	}

	settings := make(map[string]bool)
	for _, a := range advice.Adjustments {
		settings[a.Setting] = true
	}
	for _, want := range []string{"formation", "drill", "orders", "retreat"} {
		if !settings[want] {
			t.Errorf("advice missing %q adjustment; got %+v", want, advice.Adjustments)
		}
	}
}

func TestAdviseIsDeterministic(t *testing.T) {
	result, rounds := lostResult()
	a := Advise(combat.RoleAttacker, result, rounds)
	b := Advise(combat.RoleAttacker, result, rounds)

	if a.Summary != b.Summary {
		t.Error("same battle produced different summaries")
	}
	if len(a.Adjustments) != len(b.Adjustments) {
		t.Fatal("same battle produced different adjustment counts")
	}
	for i := range a.Adjustments {
		if a.Adjustments[i] != b.Adjustments[i] {
			t.Errorf("adjustment %d differs: %+v vs %+v", i, a.Adjustments[i], b.Adjustments[i])
		}
	}
}

func TestAdviseStaysQuietForAWellRunVictory(t *testing.T) {
	result := model.BattleResult{
		Outcome: model.AttackerVictory,
		Rounds:  4,
		AttackerReports: []model.UnitReport{
			{UnitID: 1}, {UnitID: 2}, {UnitID: 3}, {UnitID: 4},
		},
		DefenderReports: []model.UnitReport{
			{UnitID: 11, Destroyed: true}, {UnitID: 12, Destroyed: true},
		},
		DefenderLost: 2,
	}
	good := model.Breakdown{
		Base:    100,
		Total:   100,
		Factors: []model.ModifierFactor{
			{Label: combat.FactorFormation, Value: 1.15},
			{Label: combat.FactorDoctrine, Value: 1.6},
		},
	}
	rounds := []model.Round{
		{Number: 1, Outcome: model.RoundAttackerAdvantage, AttackerModifiers: good},
		{Number: 2, Outcome: model.RoundAttackerAdvantage, AttackerModifiers: good},
	}

	advice := Advise(combat.RoleAttacker, result, rounds)
	if len(advice.Adjustments) != 0 {
		t.Errorf("clean victory produced adjustments: %+v", advice.Adjustments)
	}
}

func TestSummarizeFromEachSide(t *testing.T) {
	result, rounds := lostResult()

	atk := summarize(combat.RoleAttacker, result, rounds)
	if !strings.Contains(atk, "Losses: 3 of 4 own, 0 of 2 enemy") {
		t.Errorf("attacker summary losses wrong:\n%s", atk)
	}
	if !strings.Contains(atk, "Rounds carried: 0 own, 3 enemy") {
		t.Errorf("attacker summary advantage counts wrong:\n%s", atk)
	}
	if !strings.Contains(atk, combat.EventFirstBlood) {
		t.Errorf("attacker summary should list notable events:\n%s", atk)
	}

	def := summarize(combat.RoleDefender, result, rounds)
	if !strings.Contains(def, "Losses: 0 of 2 own, 3 of 4 enemy") {
		t.Errorf("defender summary losses wrong:\n%s", def)
	}
}
