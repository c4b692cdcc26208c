package combat

import "github.com/kepler-games/aurora/battle-core/model"

// spaceArena tunes fleet engagements: wider variance, harder-hitting
// rounds, shields in front of hull, and a 10-round cap.
type spaceArena struct{}

func (spaceArena) name() string   { return "space" }
func (spaceArena) maxRounds() int { return 10 }
func (spaceArena) ground() bool   { return false }

func (spaceArena) terrain() map[model.Terrain]terrainEffect { return spaceTerrain }

func (spaceArena) params() roundParams {
	return roundParams{
		varianceMin:    0.6,
		varianceMax:    1.4,
		damageFraction: 0.15,
		maxTargets:     3,
		shielded:       true,
	}
}
