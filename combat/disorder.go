package combat

// OrderChangeReport describes what one live order change cost. A failed
// change means the order was lost in the chaos: the disorder is still
// charged but the change does not take effect.
type OrderChangeReport struct {
	Cost     float64 `json:"cost"`
	Disorder float64 `json:"disorder"` // level after the change
	Failed   bool    `json:"failed"`
}

// DisorderTracker accumulates command confusion for one side. Reactive
// mid-battle order changes raise it; drill bleeds it off between rounds;
// the modifier stack converts it into a power penalty. Conditional orders
// never touch it — that asymmetry is the whole reward for pre-planning.
type DisorderTracker struct {
	level      float64
	drill      float64
	changes    int // live order changes so far this battle
	lastChange int // round of the previous change; -1 before the first
}

// NewDisorderTracker starts a side at zero disorder with the doctrine's
// drill level governing decay.
func NewDisorderTracker(drill float64) *DisorderTracker {
	return &DisorderTracker{drill: clamp(drill, 0, 100), lastChange: -1}
}

// Level returns the current disorder, always within [0, 100].
func (t *DisorderTracker) Level() float64 { return t.level }

// RecordChange charges a live order change issued during the given round.
// Base cost 15; +25 without a commander on the field; +20 when the
// previous change was this round or the one before (rapid-fire changes
// compound confusion); +5 per prior change this battle; minus up to 20
// for a well-drilled force; never below 5. If total disorder reaches 100
// the change itself fails.
func (t *DisorderTracker) RecordChange(round int, commanderPresent bool) OrderChangeReport {
	cost := 15.0
	if !commanderPresent {
		cost += 25
	}
	if t.lastChange >= 0 && round-t.lastChange <= 1 {
		cost += 20
	}
	cost += 5 * float64(t.changes)
	cost -= t.drill / 5
	if cost < 5 {
		cost = 5
	}

	t.level = clamp(t.level+cost, 0, 100)
	t.changes++
	t.lastChange = round

	return OrderChangeReport{
		Cost:     cost,
		Disorder: t.level,
		Failed:   t.level >= 100,
	}
}

// Decay runs the per-round recovery: drill/20 points, so a fully drilled
// force sheds 5 disorder a round and an undrilled one none.
func (t *DisorderTracker) Decay() {
	t.level = clamp(t.level-t.drill/20, 0, 100)
}
