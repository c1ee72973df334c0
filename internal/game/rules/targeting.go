package rules

import (
	"slices"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
)

// HasLivingEnemy reports whether any unit hostile to u is still alive
func HasLivingEnemy(reg *core.Registry, u *core.Unit) bool {
	return reg.Count(u.Faction.Enemy()) > 0
}

// AdjacentEnemies returns the living enemies orthogonally next to u, in reading order
func AdjacentEnemies(reg *core.Registry, u *core.Unit) []*core.Unit {
	var out []*core.Unit
	for _, n := range u.Position.Neighbors() {
		if other, ok := reg.UnitAt(n); ok && u.IsEnemyOf(other) {
			out = append(out, other)
		}
	}
	return out
}

// SelectAttackTarget picks the adjacent enemy with the fewest hit points,
// breaking ties by reading order of its position.
func SelectAttackTarget(reg *core.Registry, u *core.Unit) (*core.Unit, bool) {
	var best *core.Unit
	for _, e := range AdjacentEnemies(reg, u) {
		if best == nil ||
			e.HitPoints < best.HitPoints ||
			(e.HitPoints == best.HitPoints && e.Position.Less(best.Position)) {
			best = e
		}
	}
	return best, best != nil
}

// InRangeSquares returns every open square adjacent to a living enemy of u,
// deduplicated and in reading order.
func InRangeSquares(reg *core.Registry, u *core.Unit) []core.Coordinate {
	seen := make(map[core.Coordinate]bool)
	var out []core.Coordinate
	for _, e := range reg.Living(u.Faction.Enemy()) {
		for _, n := range e.Position.Neighbors() {
			if seen[n] || reg.Occupied(n) {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	slices.SortFunc(out, core.Coordinate.Compare)
	return out
}
