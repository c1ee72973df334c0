package core

// Grid holds the immutable wall layout of a combat map.
// Walls are stored row-major; anything outside the bounds counts as a wall.
type Grid struct {
	W, H  int
	walls []bool
}

// NewGrid creates an open grid of the given size
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, walls: make([]bool, w*h)}
}

func (g *Grid) Width() int  { return g.W }
func (g *Grid) Height() int { return g.H }

// InBounds checks if the coordinate is inside the grid
func (g *Grid) InBounds(p Coordinate) bool {
	return p.IsValid(g.W, g.H)
}

// IsWall reports whether p is a wall or lies outside the grid
func (g *Grid) IsWall(p Coordinate) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.walls[p.ToIndex(g.W)]
}

// setWall is only used while the grid is being built by the parser and tests.
func (g *Grid) setWall(p Coordinate) {
	if g.InBounds(p) {
		g.walls[p.ToIndex(g.W)] = true
	}
}

// Neighbors4 returns the in-bounds orthogonal neighbors of p in reading order
func (g *Grid) Neighbors4(p Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range p.Neighbors() {
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// OpenNeighbors returns the non-wall neighbors of p in reading order.
// Units are not considered; see Registry.Occupied for that.
func (g *Grid) OpenNeighbors(p Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range p.Neighbors() {
		if !g.IsWall(n) {
			out = append(out, n)
		}
	}
	return out
}

// WallCount returns the number of wall tiles
func (g *Grid) WallCount() int {
	n := 0
	for _, w := range g.walls {
		if w {
			n++
		}
	}
	return n
}
