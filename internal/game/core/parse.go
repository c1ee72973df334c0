package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TileWall = '#'
	TileOpen = '.'
)

// UnitStats holds the starting stats applied to parsed units
type UnitStats struct {
	HitPoints   int
	AttackPower map[Faction]int
}

// DefaultUnitStats returns 200 hit points and attack power 3 for both factions
func DefaultUnitStats() UnitStats {
	return UnitStats{
		HitPoints: DefaultHitPoints,
		AttackPower: map[Faction]int{
			Elf:    DefaultAttackPower,
			Goblin: DefaultAttackPower,
		},
	}
}

func (s UnitStats) power(f Faction) int {
	if p, ok := s.AttackPower[f]; ok {
		return p
	}
	return DefaultAttackPower
}

// ParseMap reads a text grid of '#', '.', 'E' and 'G'. Trailing whitespace is
// trimmed from every row and blank rows at either end are dropped. Rows shorter
// than the widest one are padded with walls. Unit IDs follow reading order.
func ParseMap(text string, stats UnitStats) (*Grid, *Registry, error) {
	if stats.HitPoints <= 0 {
		return nil, nil, ErrInvalidHealth
	}
	for _, f := range Factions {
		if stats.power(f) < 0 {
			return nil, nil, fmt.Errorf("%s: %w", f, ErrInvalidPower)
		}
	}

	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, nil, ErrEmptyMap
	}

	width := 0
	for _, row := range rows {
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
	}

	grid := NewGrid(width, len(rows))
	type placement struct {
		faction Faction
		pos     Coordinate
	}
	var units []placement

	for y, row := range rows {
		x := 0
		for _, ch := range row {
			pos := Coordinate{X: x, Y: y}
			switch ch {
			case TileWall:
				grid.setWall(pos)
			case TileOpen:
			default:
				f, ok := FactionFromRune(ch)
				if !ok {
					return nil, nil, fmt.Errorf("line %d column %d: %q: %w", y+1, x+1, ch, ErrInvalidTile)
				}
				units = append(units, placement{faction: f, pos: pos})
			}
			x++
		}
		for ; x < width; x++ {
			grid.setWall(Coordinate{X: x, Y: y})
		}
	}

	reg := NewRegistry(grid)
	for _, p := range units {
		if _, err := reg.Add(p.faction, p.pos, stats.HitPoints, stats.power(p.faction)); err != nil {
			return nil, nil, err
		}
	}
	return grid, reg, nil
}

func splitRows(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.TrimRight(line, " \t\r"))
	}
	for len(rows) > 0 && rows[0] == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Render draws the grid with the living units of reg, one row per line
func Render(reg *Registry) string {
	g := reg.Grid()
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := Coordinate{X: x, Y: y}
			if u, ok := reg.UnitAt(p); ok {
				sb.WriteRune(u.Faction.Rune())
			} else if g.IsWall(p) {
				sb.WriteRune(TileWall)
			} else {
				sb.WriteRune(TileOpen)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
