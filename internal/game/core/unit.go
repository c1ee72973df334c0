package core

import (
	"fmt"
	"strings"
)

// Faction identifies which side a unit fights for
type Faction int

const (
	Elf Faction = iota
	Goblin
)

// Factions lists every faction in a stable order
var Factions = []Faction{Elf, Goblin}

const (
	DefaultHitPoints   = 200
	DefaultAttackPower = 3

	// NoTarget marks a unit that did not attack on its latest turn
	NoTarget = -1
)

// Enemy returns the opposing faction
func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// Rune returns the map character for the faction
func (f Faction) Rune() rune {
	switch f {
	case Elf:
		return 'E'
	case Goblin:
		return 'G'
	default:
		return '?'
	}
}

func (f Faction) String() string {
	switch f {
	case Elf:
		return "Elves"
	case Goblin:
		return "Goblins"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// FactionFromRune maps a map character to a faction
func FactionFromRune(r rune) (Faction, bool) {
	switch r {
	case 'E':
		return Elf, true
	case 'G':
		return Goblin, true
	default:
		return 0, false
	}
}

// ParseFaction accepts "elf", "elves", "goblin", "goblins" or the map
// character, in any case
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(s) {
	case "elf", "elves", "e":
		return Elf, nil
	case "goblin", "goblins", "g":
		return Goblin, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", s)
	}
}

// Unit is a single combatant. Units are identified by ID and never hold
// references to each other; TargetID is resolved through the Registry.
type Unit struct {
	ID          int
	Faction     Faction
	HitPoints   int
	AttackPower int
	Position    Coordinate
	TargetID    int
}

func (u *Unit) IsAlive() bool { return u.HitPoints > 0 }

// IsEnemyOf reports whether other is a living unit of the opposing faction
func (u *Unit) IsEnemyOf(other *Unit) bool {
	return other != nil && other.Faction != u.Faction && other.IsAlive()
}

func (u *Unit) String() string {
	return fmt.Sprintf("%c%d%s(%d)", u.Faction.Rune(), u.ID, u.Position, u.HitPoints)
}
