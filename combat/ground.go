package combat

import "github.com/kepler-games/aurora/battle-core/model"

// groundArena tunes ground engagements: tighter variance, grinding
// force-on-force attrition instead of per-unit targeting, steeper terrain
// and fortification swings, and a 15-round cap.
type groundArena struct{}

func (groundArena) name() string   { return "ground" }
func (groundArena) maxRounds() int { return 15 }
func (groundArena) ground() bool   { return true }

func (groundArena) terrain() map[model.Terrain]terrainEffect { return groundTerrain }

func (groundArena) params() roundParams {
	return roundParams{
		varianceMin:    0.7,
		varianceMax:    1.3,
		damageFraction: 0.12,
		maxTargets:     3,
		proportional:   true,
	}
}
