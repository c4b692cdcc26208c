package combat

import (
	"testing"

	"github.com/kepler-games/aurora/battle-core/model"
)

func TestAggregateStats(t *testing.T) {
	units := []model.Unit{
		{ID: 1, Hull: 10, Attack: 4, Defense: 2, Morale: 80, Experience: 60},
		{ID: 2, Hull: 20, Attack: 6, Defense: 4, Morale: 40, Experience: 20},
		{ID: 3, Hull: 0, Attack: 100, Defense: 100, Morale: 100, Experience: 100}, // dead, ignored
	}

	stats := AggregateStats(units)
	if stats.Units != 2 {
		t.Errorf("Units = %d, want 2", stats.Units)
	}
	if stats.Attack != 10 || stats.Defense != 6 {
		t.Errorf("Attack/Defense = %v/%v, want 10/6", stats.Attack, stats.Defense)
	}
	if stats.Base() != 16 {
		t.Errorf("Base() = %v, want 16", stats.Base())
	}
	if stats.AvgMorale != 60 {
		t.Errorf("AvgMorale = %v, want 60", stats.AvgMorale)
	}
	if stats.AvgExperience != 40 {
		t.Errorf("AvgExperience = %v, want 40", stats.AvgExperience)
	}
}

func TestAggregateStatsZeroSentinel(t *testing.T) {
	if stats := AggregateStats(nil); !stats.Zero() {
		t.Error("empty roster should aggregate to the zero sentinel")
	}
	dead := []model.Unit{{ID: 1, Hull: 0, Destroyed: true, Attack: 5}}
	if stats := AggregateStats(dead); !stats.Zero() {
		t.Error("fully destroyed roster should aggregate to the zero sentinel")
	}
}
