// Package pathfind implements uniform-cost breadth-first search over the
// currently open squares of a combat grid.
package pathfind

import (
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
)

const unreached = -1

// Blocker reports whether a square is currently impassable (wall or living unit).
// *core.Registry satisfies it.
type Blocker interface {
	Occupied(p core.Coordinate) bool
}

// Field is the result of one flood from a start square. Each reached square
// records its distance and the square it was first reached from; neighbors are
// expanded in reading order.
type Field struct {
	grid   *core.Grid
	start  core.Coordinate
	dist   []int
	parent []int
}

// Flood runs BFS from start over unblocked squares. The start square itself is
// never treated as blocked.
func Flood(grid *core.Grid, start core.Coordinate, blocker Blocker) *Field {
	n := grid.W * grid.H
	f := &Field{
		grid:   grid,
		start:  start,
		dist:   make([]int, n),
		parent: make([]int, n),
	}
	for i := range f.dist {
		f.dist[i] = unreached
		f.parent[i] = unreached
	}
	if !grid.InBounds(start) {
		return f
	}

	startIdx := start.ToIndex(grid.W)
	f.dist[startIdx] = 0
	queue := make([]core.Coordinate, 0, n)
	queue = append(queue, start)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		curIdx := cur.ToIndex(grid.W)
		for _, next := range cur.Neighbors() {
			if !grid.InBounds(next) || blocker.Occupied(next) {
				continue
			}
			idx := next.ToIndex(grid.W)
			if f.dist[idx] != unreached {
				continue
			}
			f.dist[idx] = f.dist[curIdx] + 1
			f.parent[idx] = curIdx
			queue = append(queue, next)
		}
	}
	return f
}

// Start returns the square the field was flooded from
func (f *Field) Start() core.Coordinate { return f.start }

// Distance returns the number of steps from the start to p
func (f *Field) Distance(p core.Coordinate) (int, bool) {
	if !f.grid.InBounds(p) {
		return 0, false
	}
	d := f.dist[p.ToIndex(f.grid.W)]
	return d, d != unreached
}

// Reachable reports whether p was reached by the flood
func (f *Field) Reachable(p core.Coordinate) bool {
	_, ok := f.Distance(p)
	return ok
}

// PathTo reconstructs a minimal-length path from the start to goal, exclusive
// of the start. A goal equal to the start yields an empty path.
func (f *Field) PathTo(goal core.Coordinate) ([]core.Coordinate, bool) {
	d, ok := f.Distance(goal)
	if !ok {
		return nil, false
	}
	path := make([]core.Coordinate, d)
	idx := goal.ToIndex(f.grid.W)
	for i := d - 1; i >= 0; i-- {
		path[i] = core.FromIndex(idx, f.grid.W)
		idx = f.parent[idx]
	}
	return path, true
}

// ShortestPath returns a minimal-length path from start to goal through
// unblocked squares, exclusive of start. It reports false when goal is
// unreachable. When several shortest paths exist any one of them may be
// returned; callers that need a specific first step use NextStep.
func ShortestPath(grid *core.Grid, start, goal core.Coordinate, blocker Blocker) ([]core.Coordinate, bool) {
	if start == goal {
		return []core.Coordinate{}, true
	}
	return Flood(grid, start, blocker).PathTo(goal)
}

// Nearest picks the reachable candidate with the smallest distance, breaking
// ties by reading order of the candidate square.
func Nearest(f *Field, candidates []core.Coordinate) (core.Coordinate, int, bool) {
	var (
		best     core.Coordinate
		bestDist int
		found    bool
	)
	for _, c := range candidates {
		d, ok := f.Distance(c)
		if !ok {
			continue
		}
		if !found || d < bestDist || (d == bestDist && c.Less(best)) {
			best, bestDist, found = c, d, true
		}
	}
	return best, bestDist, found
}

// NextStep chooses the first move from `from` toward target, where dist is the
// known shortest distance between them. Of from's unblocked neighbors, it
// returns the reading-order-first one that lies dist-1 steps from target.
func NextStep(grid *core.Grid, from, target core.Coordinate, dist int, blocker Blocker) (core.Coordinate, bool) {
	if dist <= 0 {
		return core.Coordinate{}, false
	}
	back := Flood(grid, target, blocker)
	for _, n := range from.Neighbors() {
		if !grid.InBounds(n) || blocker.Occupied(n) {
			continue
		}
		if d, ok := back.Distance(n); ok && d == dist-1 {
			return n, true
		}
	}
	return core.Coordinate{}, false
}
