package combat

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/kepler-games/aurora/battle-core/doctrine"
	"github.com/kepler-games/aurora/battle-core/model"
)

// ErrBattleComplete is returned when a caller tries to drive or command a
// battle that already has a classified result. A finished battle never
// resumes.
var ErrBattleComplete = errors.New("combat: battle already resolved")

// arena is the per-combat-type strategy: space and ground battles share
// the round/retreat/classification skeleton and plug in their own terrain
// table, round cap, and damage tuning.
type arena interface {
	name() string
	maxRounds() int
	params() roundParams
	terrain() map[model.Terrain]terrainEffect
	ground() bool
}

// SideConfig is one side's input snapshot. The doctrine is optional; a
// nil doctrine means the standing orders baseline.
type SideConfig struct {
	Force     model.Force
	Doctrine  *doctrine.BattleDoctrine
	Commander bool
}

// BattleConfig is the full input contract for one battle. Seed zero uses
// a fixed default so replays stay reproducible either way; BattleID is
// derived from the seed when the caller leaves it empty.
type BattleConfig struct {
	BattleID string
	Attacker SideConfig
	Defender SideConfig
	Context  model.CombatContext
	Seed     int64
}

// LiveOrder is a reactive mid-battle command, applied between rounds.
// Exactly one order change is charged per call; activating a contingency
// plan swaps the whole order set for that single charge.
type LiveOrder struct {
	Formation *model.Formation      `json:"formation,omitempty"`
	Priority  *model.TargetPriority `json:"priority,omitempty"`
	Stance    *model.Stance         `json:"stance,omitempty"`
	Plan      string                `json:"plan,omitempty"`
}

// side is one force's private battle state: working unit copies, the
// currently active orders (which may diverge from doctrine after
// mid-battle changes), and its disorder tracker.
type side struct {
	role      Role
	name      string
	initial   []model.Unit // roster snapshot at battle start
	units     []model.Unit // live working copies
	stance    model.Stance
	formation model.Formation
	priority  model.TargetPriority
	doc       doctrine.BattleDoctrine
	orders    []*doctrine.CompiledOrder
	disorder  *DisorderTracker
	commander bool
}

func newSide(cfg SideConfig, role Role) (*side, error) {
	doc := doctrine.Default()
	if cfg.Doctrine != nil {
		doc = *cfg.Doctrine
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s doctrine: %w", role, err)
	}
	orders, err := doctrine.CompileOrders(doc)
	if err != nil {
		return nil, fmt.Errorf("%s doctrine: %w", role, err)
	}

	stance := cfg.Force.Stance
	if cfg.Doctrine != nil {
		stance = doc.Policy
	}

	units := append([]model.Unit(nil), cfg.Force.Units...)
	return &side{
		role:      role,
		name:      cfg.Force.Name,
		initial:   append([]model.Unit(nil), units...),
		units:     units,
		stance:    stance,
		formation: doc.Formation,
		priority:  doc.Priority,
		doc:       doc,
		orders:    orders,
		disorder:  NewDisorderTracker(doc.Drill),
		commander: cfg.Commander,
	}, nil
}

func (s *side) aliveCount() int {
	n := 0
	for _, u := range s.units {
		if u.Alive() {
			n++
		}
	}
	return n
}

func (s *side) lossPct() float64 {
	if len(s.initial) == 0 {
		return 0
	}
	lost := len(s.initial) - s.aliveCount()
	return 100 * float64(lost) / float64(len(s.initial))
}

// flagshipCritical reports whether any flagship is destroyed or below a
// quarter of its hull. Forces without a flagship never trip it.
func (s *side) flagshipCritical() bool {
	for _, u := range s.units {
		if !u.Flagship {
			continue
		}
		if u.Destroyed || (u.MaxHull > 0 && u.Hull*4 < u.MaxHull) {
			return true
		}
	}
	return false
}

// conditions snapshots the side's view of the battle for conditional-order
// and retreat evaluation.
func (s *side) conditions(enemy *side, round int) doctrine.BattleConditions {
	own := AggregateStats(s.units)
	theirs := AggregateStats(enemy.units)
	return doctrine.BattleConditions{
		Round:         round,
		OwnUnits:      own.Units,
		EnemyUnits:    theirs.Units,
		OwnLosses:     s.lossPct(),
		EnemyLosses:   enemy.lossPct(),
		OwnMorale:     own.AvgMorale,
		EnemyMorale:   theirs.AvgMorale,
		OwnExperience: own.AvgExperience,
		Disorder:      s.disorder.Level(),
		FlagshipDown:  s.flagshipCritical(),
	}
}

// Battle is a single engagement being resolved. All mutable state is
// private to the instance, so independent battles can run concurrently;
// only the immutable lookup tables are shared.
type Battle struct {
	id       string
	arena    arena
	rng      *rand.Rand
	ctx      model.CombatContext
	attacker *side
	defender *side
	rounds   []model.Round
	result   *model.BattleResult
	prev     snapshot
}

// NewSpaceBattle prepares a fleet engagement (round cap 10).
func NewSpaceBattle(cfg BattleConfig) (*Battle, error) {
	return newBattle(cfg, spaceArena{})
}

// NewGroundBattle prepares a ground engagement (round cap 15).
func NewGroundBattle(cfg BattleConfig) (*Battle, error) {
	return newBattle(cfg, groundArena{})
}

func newBattle(cfg BattleConfig, a arena) (*Battle, error) {
	attacker, err := newSide(cfg.Attacker, RoleAttacker)
	if err != nil {
		return nil, err
	}
	defender, err := newSide(cfg.Defender, RoleDefender)
	if err != nil {
		return nil, err
	}

	// Saturating clamps: out-of-range context values are pulled into
	// domain silently, never rejected.
	ctx := cfg.Context
	ctx.Fortification = clampInt(ctx.Fortification, 0, 5)
	ctx.AttackerOrbital = clampInt(ctx.AttackerOrbital, 0, 3)
	ctx.DefenderOrbital = clampInt(ctx.DefenderOrbital, 0, 3)
	ctx.AttackerSupply = clampInt(ctx.AttackerSupply, 0, 100)

	id := cfg.BattleID
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "aurora-%s-battle-%d", a.name(), cfg.Seed)).String()
	}

	b := &Battle{
		id:       id,
		arena:    a,
		rng:      newRNG(cfg.Seed),
		ctx:      ctx,
		attacker: attacker,
		defender: defender,
	}
	b.prev = b.snapshotState()

	slog.Debug("battle prepared",
		"battle", id,
		"arena", a.name(),
		"terrain", ctx.Terrain.String(),
		"attackerUnits", attacker.aliveCount(),
		"defenderUnits", defender.aliveCount(),
	)
	return b, nil
}

// ID returns the battle identifier stamped on every round record.
func (b *Battle) ID() string { return b.id }

// Rounds returns the append-only battle log so far.
func (b *Battle) Rounds() []model.Round { return b.rounds }

// Result returns the terminal summary, or nil while the battle is live.
func (b *Battle) Result() *model.BattleResult { return b.result }

// Done reports whether the battle has been classified.
func (b *Battle) Done() bool { return b.result != nil }

// IssueOrder applies a reactive command between rounds, charging the
// side's disorder. Returns the charge report; a failed report means the
// order was lost in the chaos (disorder applied, change not).
func (b *Battle) IssueOrder(role Role, order LiveOrder) (OrderChangeReport, error) {
	if b.Done() {
		return OrderChangeReport{}, ErrBattleComplete
	}
	s := b.attacker
	if role == RoleDefender {
		s = b.defender
	}

	var plan doctrine.ContingencyPlan
	if order.Plan != "" {
		p, ok := s.doc.Plan(order.Plan)
		if !ok {
			return OrderChangeReport{}, fmt.Errorf("no contingency plan %q", order.Plan)
		}
		plan = p
	}

	report := s.disorder.RecordChange(len(b.rounds)+1, s.commander)
	if report.Failed {
		slog.Debug("live order lost in the chaos", "battle", b.id, "side", role.String(), "disorder", report.Disorder)
		return report, nil
	}

	switch {
	case order.Plan != "":
		s.formation = plan.Formation
		s.priority = plan.Priority
		s.stance = plan.Stance
	default:
		if order.Formation != nil {
			s.formation = *order.Formation
		}
		if order.Priority != nil {
			s.priority = *order.Priority
		}
		if order.Stance != nil {
			s.stance = *order.Stance
		}
	}
	slog.Debug("live order applied", "battle", b.id, "side", role.String(), "cost", report.Cost, "disorder", report.Disorder)
	return report, nil
}

// Advance resolves exactly one round and reports whether the battle is
// now complete. Calling Advance on a finished battle returns done without
// producing a round.
func (b *Battle) Advance() (model.Round, bool) {
	if b.Done() {
		return model.Round{}, true
	}

	num := len(b.rounds) + 1

	// An empty side resolves immediately: one uncontested round, then
	// classification. Not an error — the zero-stats sentinel is a loss.
	if b.attacker.aliveCount() == 0 || b.defender.aliveCount() == 0 {
		return b.uncontestedRound(num), true
	}

	b.applyConditionalOrders(b.attacker, b.defender, num)
	b.applyConditionalOrders(b.defender, b.attacker, num)

	surprise := b.ctx.Ambush && num == 1
	atkBreakdown := b.modifiers(b.attacker, b.defender, surprise)
	defBreakdown := b.modifiers(b.defender, b.attacker, surprise)

	params := b.arena.params()
	effAtk := atkBreakdown.Total * variance(b.rng, params.varianceMin, params.varianceMax)
	effDef := defBreakdown.Total * variance(b.rng, params.varianceMin, params.varianceMax)

	// Both damage totals are computed against pre-round state, then
	// applied, so neither side gains from resolution order.
	dmgToDefender := roundDamage(effAtk, params, b.attacker.priority, b.defender.units)
	dmgToAttacker := roundDamage(effDef, params, b.defender.priority, b.attacker.units)
	defenderHits := distributeDamage(b.rng, dmgToDefender, b.defender.units, b.attacker.priority, params)
	attackerHits := distributeDamage(b.rng, dmgToAttacker, b.attacker.units, b.defender.priority, params)

	outcome := classifyRound(effAtk, effDef)
	if wantsRetreat(b.rng, b.attacker, b.defender, num) {
		outcome = model.RoundAttackerRetreats
	} else if wantsRetreat(b.rng, b.defender, b.attacker, num) {
		outcome = model.RoundDefenderRetreats
	}

	b.attacker.disorder.Decay()
	b.defender.disorder.Decay()

	cur := b.snapshotState()
	events := detectEvents(b.prev, cur, b.arena.ground())
	b.prev = cur

	round := model.Round{
		BattleID:          b.id,
		Number:            num,
		Outcome:           outcome,
		AttackerPower:     effAtk,
		DefenderPower:     effDef,
		AttackerModifiers: atkBreakdown,
		DefenderModifiers: defBreakdown,
		AttackerHits:      attackerHits,
		DefenderHits:      defenderHits,
		AttackerDisorder:  b.attacker.disorder.Level(),
		DefenderDisorder:  b.defender.disorder.Level(),
		Events:            events,
	}
	round.Narrative = narrate(round, b.attacker.name, b.defender.name)
	b.rounds = append(b.rounds, round)

	slog.Debug("round resolved",
		"battle", b.id,
		"round", num,
		"outcome", outcome.String(),
		"attackerPower", effAtk,
		"defenderPower", effDef,
	)

	done := outcome.Retreat() ||
		b.attacker.aliveCount() == 0 ||
		b.defender.aliveCount() == 0 ||
		num >= b.arena.maxRounds()
	if done {
		b.finalize()
	}
	return round, done
}

// Run drives the battle to its terminal condition and returns the result.
func (b *Battle) Run() model.BattleResult {
	for {
		if _, done := b.Advance(); done {
			return *b.result
		}
	}
}

// modifiers builds one side's labeled power stack for the current round.
func (b *Battle) modifiers(s, enemy *side, surprise bool) model.Breakdown {
	return ComputeModifiers(ModifierInput{
		Stats:          AggregateStats(s.units),
		Units:          s.units,
		Role:           s.role,
		Stance:         s.stance,
		Formation:      s.formation,
		EnemyFormation: enemy.formation,
		Commander:      s.commander,
		SurpriseRound:  surprise,
		Context:        b.ctx,
		EnemyUnits:     enemy.aliveCount(),
		Disorder:       s.disorder.Level(),
		DoctrineScore:  s.doc.Effectiveness(),
		Terrain:        b.arena.terrain(),
		GroundRules:    b.arena.ground(),
	})
}

// applyConditionalOrders evaluates a side's pre-declared rules against the
// current conditions and applies any that fire — at zero disorder cost,
// which is the entire reward for planning ahead. Retreat-action orders are
// deferred to the post-damage retreat check.
func (b *Battle) applyConditionalOrders(s, enemy *side, round int) {
	cond := s.conditions(enemy, round)
	for _, co := range s.orders {
		if co.Order.Action == doctrine.ActionRetreat {
			continue
		}
		fired, err := co.Evaluate(cond)
		if err != nil {
			slog.Warn("conditional order evaluation failed", "battle", b.id, "side", s.role.String(), "order", co.Order.Name, "error", err)
			continue
		}
		if !fired {
			continue
		}
		switch co.Order.Action {
		case doctrine.ActionChangeFormation:
			s.formation = co.Order.Formation
		case doctrine.ActionChangePriority:
			s.priority = co.Order.Priority
		case doctrine.ActionActivatePlan:
			if plan, ok := s.doc.Plan(co.Order.Plan); ok {
				s.formation = plan.Formation
				s.priority = plan.Priority
				s.stance = plan.Stance
			}
		}
		slog.Debug("conditional order fired", "battle", b.id, "side", s.role.String(), "order", co.Order.Name, "action", co.Order.Action.String())
	}
}

// uncontestedRound records the degenerate single round when a side shows
// up with nothing, then classifies the battle.
func (b *Battle) uncontestedRound(num int) model.Round {
	outcome := model.RoundStalemate
	switch {
	case b.attacker.aliveCount() == 0 && b.defender.aliveCount() > 0:
		outcome = model.RoundDefenderAdvantage
	case b.defender.aliveCount() == 0 && b.attacker.aliveCount() > 0:
		outcome = model.RoundAttackerAdvantage
	}
	round := model.Round{
		BattleID:  b.id,
		Number:    num,
		Outcome:   outcome,
		Narrative: "The field is uncontested.",
	}
	b.rounds = append(b.rounds, round)
	b.finalize()
	return round
}

func (b *Battle) finalize() {
	outcome := classifyOutcome(b.rounds, b.attacker.aliveCount(), b.defender.aliveCount())
	b.result = &model.BattleResult{
		BattleID:        b.id,
		Outcome:         outcome,
		Rounds:          len(b.rounds),
		AttackerReports: buildReports(b.attacker),
		DefenderReports: buildReports(b.defender),
		AttackerLost:    len(b.attacker.initial) - b.attacker.aliveCount(),
		DefenderLost:    len(b.defender.initial) - b.defender.aliveCount(),
	}
	slog.Info("battle resolved",
		"battle", b.id,
		"arena", b.arena.name(),
		"outcome", outcome.String(),
		"rounds", len(b.rounds),
		"attackerLost", b.result.AttackerLost,
		"defenderLost", b.result.DefenderLost,
	)
}

// buildReports diffs the working copies against the starting snapshot so
// the game layer can apply damage back onto its persistent roster.
func buildReports(s *side) []model.UnitReport {
	reports := make([]model.UnitReport, 0, len(s.units))
	for i, u := range s.units {
		start := s.initial[i]
		reports = append(reports, model.UnitReport{
			UnitID:     u.ID,
			UnitName:   u.Name,
			HullDamage: start.Hull - u.Hull,
			Destroyed:  u.Destroyed,
		})
	}
	return reports
}
