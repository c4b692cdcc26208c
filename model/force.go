package model

// SizeClass buckets units for targeting and terrain composition effects.
type SizeClass int

const (
	SizeSmall   SizeClass = iota // fighters, scouts, light infantry
	SizeMedium                   // frigates, line infantry, light armor
	SizeLarge                    // cruisers, heavy armor
	SizeCapital                  // battleships, command elements
)

func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeCapital:
		return "capital"
	default:
		return "unknown"
	}
}

// Stance is a force's engagement policy for the whole battle. The same
// stance yields different power factors depending on whether the force
// is attacking or defending.
type Stance int

const (
	StanceBalanced Stance = iota
	StanceAggressive
	StanceDefensive
	StanceEvasive
	StanceAllOut
)

func (s Stance) String() string {
	switch s {
	case StanceBalanced:
		return "balanced"
	case StanceAggressive:
		return "aggressive"
	case StanceDefensive:
		return "defensive"
	case StanceEvasive:
		return "evasive"
	case StanceAllOut:
		return "all_out"
	default:
		return "unknown"
	}
}

// Formation is the spatial arrangement a force fights in. Matchups between
// formations grant directional advantages (see combat.FormationDelta).
type Formation int

const (
	FormationLine Formation = iota
	FormationWedge
	FormationSphere
	FormationScattered
	FormationEchelon
)

func (f Formation) String() string {
	switch f {
	case FormationLine:
		return "line"
	case FormationWedge:
		return "wedge"
	case FormationSphere:
		return "sphere"
	case FormationScattered:
		return "scattered"
	case FormationEchelon:
		return "echelon"
	default:
		return "unknown"
	}
}

// TargetPriority selects which enemy units absorb a round's damage.
type TargetPriority int

const (
	PriorityBalanced  TargetPriority = iota // spread evenly
	PriorityWeakest                         // finish off the wounded (focused fire)
	PriorityFlagships                       // decapitation: largest classes first (focused fire)
	PriorityEscorts                         // smallest classes first
	PriorityRandom                          // unordered
)

func (p TargetPriority) String() string {
	switch p {
	case PriorityBalanced:
		return "balanced"
	case PriorityWeakest:
		return "weakest"
	case PriorityFlagships:
		return "flagships"
	case PriorityEscorts:
		return "escorts"
	case PriorityRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Unit is a single ship or ground element. Hull doubles as ground strength;
// ground elements carry zero shields. Units persist across battles on the
// owning game layer, which applies returned damage and removes the dead —
// the combat core only ever mutates its own working copies.
type Unit struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Class      string    `json:"class"` // display type, e.g. "frigate", "shock infantry"
	Size       SizeClass `json:"size"`
	Hull       int       `json:"hull"`
	MaxHull    int       `json:"maxHull"`
	Shield     int       `json:"shield"`
	MaxShield  int       `json:"maxShield"`
	Attack     int       `json:"attack"`
	Defense    int       `json:"defense"`
	Morale     float64   `json:"morale"`     // 0-100
	Experience float64   `json:"experience"` // 0-100
	Maneuver   float64   `json:"maneuver"`   // 0-1, terrain composition scaling
	Flagship   bool      `json:"flagship"`
	Destroyed  bool      `json:"destroyed"`
}

// Alive reports whether the unit still fights.
func (u Unit) Alive() bool { return !u.Destroyed && u.Hull > 0 }

// Force is one side of a battle: an ordered roster plus its engagement
// policy. The combat core borrows it read-only and returns damage records;
// it never deletes units from the caller's roster.
type Force struct {
	Name   string `json:"name"`
	Stance Stance `json:"stance"`
	Units  []Unit `json:"units"`
}

// AliveUnits returns the subset of the roster still fighting.
func (f Force) AliveUnits() []Unit {
	var out []Unit
	for _, u := range f.Units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}
