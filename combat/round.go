package combat

import (
	"math"
	"math/rand"
	"sort"

	"github.com/kepler-games/aurora/battle-core/model"
)

// roundParams are the per-arena tuning knobs for a single round.
type roundParams struct {
	varianceMin    float64
	varianceMax    float64
	damageFraction float64 // share of effective power dealt per round
	maxTargets     int     // focused distributions hit at most this many units
	shielded       bool    // space: shields absorb before hull
	proportional   bool    // ground: force-on-force attrition across the line
}

// focusBonus is the damage premium for concentrating fire on one class of
// target (weakest or flagships).
const focusBonus = 1.2

// advantageRatio is the effective-power edge a side needs for the round to
// count as its advantage rather than a stalemate.
const advantageRatio = 1.2

// remainingStrength sums hull plus shields across live units.
func remainingStrength(units []model.Unit) float64 {
	total := 0.0
	for _, u := range units {
		if u.Alive() {
			total += float64(u.Hull + u.Shield)
		}
	}
	return total
}

// roundDamage converts one side's effective power into the damage it deals
// this round: power x fraction, floored at 1, capped so no single round
// eliminates more than a third of the target's remaining strength.
func roundDamage(power float64, params roundParams, priority model.TargetPriority, targets []model.Unit) float64 {
	dmg := power * params.damageFraction
	if priority == model.PriorityWeakest || priority == model.PriorityFlagships {
		dmg *= focusBonus
	}
	if dmg < 1 {
		dmg = 1
	}
	if cap := remainingStrength(targets) / 3; dmg > cap {
		dmg = cap
	}
	return dmg
}

// distributeDamage applies dmg across the target roster in place and
// returns the per-unit records, ordered by application. Focused
// priorities concentrate on up to maxTargets units with front-loaded
// weights; balanced and proportional modes spread across the whole line.
func distributeDamage(rng *rand.Rand, dmg float64, units []model.Unit, priority model.TargetPriority, params roundParams) []model.DamageRecord {
	alive := aliveIndexes(units)
	if len(alive) == 0 || dmg <= 0 {
		return nil
	}

	var shares map[int]float64 // unit index -> damage share
	if params.proportional {
		shares = proportionalShares(units, alive, dmg)
	} else {
		switch priority {
		case model.PriorityBalanced:
			shares = evenShares(alive, dmg)
		case model.PriorityRandom:
			shares = weightedShares(pickRandom(rng, alive, params.maxTargets), dmg)
		default:
			shares = weightedShares(pickOrdered(units, alive, priority, params.maxTargets), dmg)
		}
	}

	records := make([]model.DamageRecord, 0, len(shares))
	for _, idx := range alive {
		share, ok := shares[idx]
		if !ok || share <= 0 {
			continue
		}
		records = append(records, applyDamage(&units[idx], share, params.shielded))
	}
	return records
}

// applyDamage pushes damage through one unit's shields and hull. Once
// shields are depleted, the remainder leaks to hull at 80% (space only);
// ground elements take it all on strength. Hull is clamped at zero and
// the destroyed flag flipped.
func applyDamage(u *model.Unit, dmg float64, shielded bool) model.DamageRecord {
	rec := model.DamageRecord{UnitID: u.ID, UnitName: u.Name}

	if shielded && u.Shield > 0 {
		absorbed := math.Min(float64(u.Shield), dmg)
		u.Shield -= int(math.Round(absorbed))
		if u.Shield < 0 {
			u.Shield = 0
		}
		rec.ShieldDamage = int(math.Round(absorbed))
		dmg -= absorbed
		dmg *= 0.8 // leakage reduction once shields are down
	}

	hullDmg := int(math.Round(dmg))
	if hullDmg > u.Hull {
		hullDmg = u.Hull
	}
	u.Hull -= hullDmg
	rec.HullDamage = hullDmg
	if u.Hull <= 0 {
		u.Hull = 0
		u.Destroyed = true
		rec.Destroyed = true
	}
	return rec
}

func aliveIndexes(units []model.Unit) []int {
	var out []int
	for i := range units {
		if units[i].Alive() {
			out = append(out, i)
		}
	}
	return out
}

// pickOrdered selects up to n target indexes ranked by the priority rule.
// Ties break on unit ID so distribution stays deterministic.
func pickOrdered(units []model.Unit, alive []int, priority model.TargetPriority, n int) []int {
	ranked := append([]int(nil), alive...)
	sort.Slice(ranked, func(a, b int) bool {
		ua, ub := units[ranked[a]], units[ranked[b]]
		switch priority {
		case model.PriorityWeakest:
			sa, sb := ua.Hull+ua.Shield, ub.Hull+ub.Shield
			if sa != sb {
				return sa < sb
			}
		case model.PriorityFlagships:
			if ua.Flagship != ub.Flagship {
				return ua.Flagship
			}
			if ua.Size != ub.Size {
				return ua.Size > ub.Size
			}
		case model.PriorityEscorts:
			if ua.Size != ub.Size {
				return ua.Size < ub.Size
			}
		}
		return ua.ID < ub.ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// pickRandom selects up to n distinct targets using the battle's RNG.
func pickRandom(rng *rand.Rand, alive []int, n int) []int {
	if len(alive) <= n {
		return append([]int(nil), alive...)
	}
	perm := rng.Perm(len(alive))
	out := make([]int, 0, n)
	for _, p := range perm[:n] {
		out = append(out, alive[p])
	}
	return out
}

// weightedShares front-loads damage onto the first selected targets:
// 50/30/20 for three, renormalized for fewer.
var targetWeights = []float64{0.5, 0.3, 0.2}

func weightedShares(targets []int, dmg float64) map[int]float64 {
	if len(targets) == 0 {
		return nil
	}
	n := len(targets)
	if n > len(targetWeights) {
		n = len(targetWeights)
	}
	sum := 0.0
	for _, w := range targetWeights[:n] {
		sum += w
	}
	shares := make(map[int]float64, n)
	for i := 0; i < n; i++ {
		shares[targets[i]] = dmg * targetWeights[i] / sum
	}
	return shares
}

func evenShares(alive []int, dmg float64) map[int]float64 {
	shares := make(map[int]float64, len(alive))
	per := dmg / float64(len(alive))
	for _, idx := range alive {
		shares[idx] = per
	}
	return shares
}

// proportionalShares models force-on-force attrition: each element takes
// casualties in proportion to its share of the line.
func proportionalShares(units []model.Unit, alive []int, dmg float64) map[int]float64 {
	total := 0.0
	for _, idx := range alive {
		total += float64(units[idx].Hull)
	}
	if total <= 0 {
		return nil
	}
	shares := make(map[int]float64, len(alive))
	for _, idx := range alive {
		shares[idx] = dmg * float64(units[idx].Hull) / total
	}
	return shares
}

// classifyRound reports which side held the advantage this round.
func classifyRound(attackerPower, defenderPower float64) model.RoundOutcome {
	switch {
	case attackerPower > advantageRatio*defenderPower:
		return model.RoundAttackerAdvantage
	case defenderPower > advantageRatio*attackerPower:
		return model.RoundDefenderAdvantage
	default:
		return model.RoundStalemate
	}
}
