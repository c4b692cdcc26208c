package doctrine

// BattleConditions is the expression environment a side's conditional
// orders evaluate against each round. All quantities are from that side's
// point of view ("own" vs "enemy") and reflect the state after the most
// recent round's damage.
type BattleConditions struct {
	Round         int
	OwnUnits      int
	EnemyUnits    int
	OwnLosses     float64 // percentage of starting units destroyed, 0-100
	EnemyLosses   float64
	OwnMorale     float64 // live average, 0-100
	EnemyMorale   float64
	OwnExperience float64 // live average, 0-100
	Disorder      float64 // own accumulated disorder, 0-100
	FlagshipDown  bool    // own flagship destroyed or below quarter hull
}

func (c BattleConditions) RoundNumber() int          { return c.Round }
func (c BattleConditions) OwnUnitCount() int         { return c.OwnUnits }
func (c BattleConditions) EnemyUnitCount() int       { return c.EnemyUnits }
func (c BattleConditions) OwnLossPct() float64       { return c.OwnLosses }
func (c BattleConditions) EnemyLossPct() float64     { return c.EnemyLosses }
func (c BattleConditions) OwnAvgMorale() float64     { return c.OwnMorale }
func (c BattleConditions) EnemyAvgMorale() float64   { return c.EnemyMorale }
func (c BattleConditions) OwnAvgExperience() float64 { return c.OwnExperience }
func (c BattleConditions) OwnDisorder() float64      { return c.Disorder }
func (c BattleConditions) FlagshipCritical() bool    { return c.FlagshipDown }
