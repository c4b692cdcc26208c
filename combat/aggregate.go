// Package combat is the tactical resolution engine: it reduces two
// opposing forces, a battlefield context, and optional doctrines into a
// deterministic round-by-round battle log and a classified outcome. It is
// a pure function of its inputs plus a seeded random source — no storage,
// no transport, no global state.
package combat

import "github.com/kepler-games/aurora/battle-core/model"

// ForceStats are a roster's aggregate combat statistics, computed over
// non-destroyed units only.
type ForceStats struct {
	Attack        float64
	Defense       float64
	Units         int
	AvgMorale     float64
	AvgExperience float64
}

// Zero reports whether the side has nothing left to fight with. Callers
// treat zero stats as "this side has lost" — it is a sentinel, not an
// error.
func (s ForceStats) Zero() bool { return s.Units == 0 }

// Base is the stat total the modifier stack multiplies into.
func (s ForceStats) Base() float64 { return s.Attack + s.Defense }

// AggregateStats reduces a unit list to its aggregate statistics. An empty
// or fully destroyed roster yields the zero sentinel rather than failing.
func AggregateStats(units []model.Unit) ForceStats {
	var stats ForceStats
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		stats.Units++
		stats.Attack += float64(u.Attack)
		stats.Defense += float64(u.Defense)
		stats.AvgMorale += u.Morale
		stats.AvgExperience += u.Experience
	}
	if stats.Units == 0 {
		return ForceStats{}
	}
	stats.AvgMorale /= float64(stats.Units)
	stats.AvgExperience /= float64(stats.Units)
	return stats
}
