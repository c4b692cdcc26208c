package model

// Terrain classifies the battlefield. Space and ground battles draw from
// disjoint subsets; chokepoints gate the outnumbered-defender bonus.
type Terrain int

const (
	OpenSpace Terrain = iota
	AsteroidField
	Nebula
	DebrisField
	JumpGate // narrow transit corridor — space chokepoint

	OpenGround
	Forest
	Urban
	Mountains
	MountainPass // ground chokepoint
)

func (t Terrain) String() string {
	switch t {
	case OpenSpace:
		return "open_space"
	case AsteroidField:
		return "asteroid_field"
	case Nebula:
		return "nebula"
	case DebrisField:
		return "debris_field"
	case JumpGate:
		return "jump_gate"
	case OpenGround:
		return "open_ground"
	case Forest:
		return "forest"
	case Urban:
		return "urban"
	case Mountains:
		return "mountains"
	case MountainPass:
		return "mountain_pass"
	default:
		return "unknown"
	}
}

// Space reports whether the terrain belongs to space battles.
func (t Terrain) Space() bool { return t <= JumpGate }

// Chokepoint reports whether the terrain is narrow enough to anchor a
// heavily outnumbered defense.
func (t Terrain) Chokepoint() bool { return t == JumpGate || t == MountainPass }

// CombatContext carries the immutable per-battle facts. Built once by the
// caller, read-only throughout resolution. Out-of-range values are clamped
// at battle setup, never rejected.
type CombatContext struct {
	Terrain            Terrain `json:"terrain"`
	Ambush             bool    `json:"ambush"`             // attacker achieved surprise
	DefenderEntrenched bool    `json:"defenderEntrenched"` // prepared positions
	Fortification      int     `json:"fortification"`      // 0-5
	AttackerOrbital    int     `json:"attackerOrbital"`    // 0-3 fire-support level
	DefenderOrbital    int     `json:"defenderOrbital"`    // 0-3
	AttackerSupply     int     `json:"attackerSupply"`     // supply strain 0-100, attacker only
}
