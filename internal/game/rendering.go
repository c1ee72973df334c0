package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
)

// This file contains the map rendering used for round-by-round traces.

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[90m"
)

var factionColors = map[core.Faction]string{
	core.Elf:    ColorGreen,
	core.Goblin: ColorRed,
}

// Board returns the current map with each row followed by the hit points of
// the units on it, e.g. "#..G#   G(200)". A unit whose latest attack hit a
// still living enemy also shows that enemy, e.g. "E(197)->G(194)". With color
// set, units and walls are wrapped in ANSI color codes.
func (e *Engine) Board(color bool) string {
	g := e.grid
	var sb strings.Builder
	// Each cell can take ~10 bytes with color codes, plus the HP annotations
	sb.Grow((g.W*10 + 32) * g.H)

	for y := 0; y < g.H; y++ {
		var row []*core.Unit
		for x := 0; x < g.W; x++ {
			p := core.Coordinate{X: x, Y: y}
			if u, ok := e.units.UnitAt(p); ok {
				row = append(row, u)
				writeCell(&sb, string(u.Faction.Rune()), factionColors[u.Faction], color)
			} else if g.IsWall(p) {
				writeCell(&sb, string(core.TileWall), ColorGray, color)
			} else {
				sb.WriteRune(core.TileOpen)
			}
		}
		for i, u := range row {
			if i == 0 {
				sb.WriteString("   ")
			} else {
				sb.WriteString(", ")
			}
			writeHitPoints(&sb, u)
			if t, ok := e.units.Target(u); ok {
				sb.WriteString("->")
				writeHitPoints(&sb, t)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeHitPoints(sb *strings.Builder, u *core.Unit) {
	sb.WriteRune(u.Faction.Rune())
	sb.WriteByte('(')
	sb.WriteString(strconv.Itoa(u.HitPoints))
	sb.WriteByte(')')
}

func writeCell(sb *strings.Builder, symbol, c string, color bool) {
	if !color {
		sb.WriteString(symbol)
		return
	}
	sb.WriteString(c)
	sb.WriteString(symbol)
	sb.WriteString(ColorReset)
}
