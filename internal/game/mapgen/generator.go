// Package mapgen builds random combat maps in the text format read by
// core.ParseMap. Generation is deterministic for a given RNG seed.
package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
)

// ErrNoSpace is returned when the interior cannot hold the requested units
var ErrNoSpace = errors.New("not enough open squares for units")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width   int
	Height  int
	Elves   int
	Goblins int
	// WallRatio places one interior wall per N interior squares; 0 disables walls
	WallRatio int
	// MinFactionSpacing is the Manhattan distance kept between opposing units
	MinFactionSpacing int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int) MapConfig {
	return MapConfig{
		Width:             w,
		Height:            h,
		Elves:             2,
		Goblins:           4,
		WallRatio:         8,
		MinFactionSpacing: 3,
	}
}

// Validate checks that the configuration can describe a map
func (c MapConfig) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("map must be at least 3x3, got %dx%d", c.Width, c.Height)
	}
	if c.Elves < 0 || c.Goblins < 0 {
		return errors.New("unit counts must be non-negative")
	}
	if c.Elves+c.Goblins == 0 {
		return core.ErrNoUnits
	}
	if c.WallRatio < 0 || c.MinFactionSpacing < 0 {
		return errors.New("wall ratio and spacing must be non-negative")
	}
	if c.Elves+c.Goblins > (c.Width-2)*(c.Height-2) {
		return ErrNoSpace
	}
	return nil
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap returns a walled map with the configured units placed on it
func (g *Generator) GenerateMap() (string, error) {
	if err := g.config.Validate(); err != nil {
		return "", err
	}

	rows := make([][]rune, g.config.Height)
	for y := range rows {
		rows[y] = make([]rune, g.config.Width)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == g.config.Width-1 || y == g.config.Height-1 {
				rows[y][x] = core.TileWall
			} else {
				rows[y][x] = core.TileOpen
			}
		}
	}

	g.placeWalls(rows)
	if err := g.placeUnits(rows); err != nil {
		return "", err
	}

	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String(), nil
}

func (g *Generator) interior() int {
	return (g.config.Width - 2) * (g.config.Height - 2)
}

func (g *Generator) randomInterior() core.Coordinate {
	return core.NewCoordinate(1+g.rng.Intn(g.config.Width-2), 1+g.rng.Intn(g.config.Height-2))
}

// placeWalls never fills squares needed by the units
func (g *Generator) placeWalls(rows [][]rune) {
	if g.config.WallRatio == 0 {
		return
	}
	want := g.interior() / g.config.WallRatio
	if spare := g.interior() - g.config.Elves - g.config.Goblins; want > spare {
		want = spare
	}

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	placed := 0
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		p := g.randomInterior()
		if rows[p.Y][p.X] == core.TileOpen {
			rows[p.Y][p.X] = core.TileWall
			placed++
		}
	}
}

func (g *Generator) placeUnits(rows [][]rune) error {
	var placed []UnitPlacement
	queue := make([]core.Faction, 0, g.config.Elves+g.config.Goblins)
	for i := 0; i < g.config.Elves; i++ {
		queue = append(queue, core.Elf)
	}
	for i := 0; i < g.config.Goblins; i++ {
		queue = append(queue, core.Goblin)
	}

	for _, f := range queue {
		p, err := g.findUnitLocation(rows, f, placed)
		if err != nil {
			return err
		}
		rows[p.Y][p.X] = f.Rune()
		placed = append(placed, UnitPlacement{Faction: f, Position: p})
	}
	return nil
}

func (g *Generator) findUnitLocation(rows [][]rune, f core.Faction, existing []UnitPlacement) (core.Coordinate, error) {
	maxAttempts := g.interior() * 4

	for attempts := 0; attempts < maxAttempts; attempts++ {
		p := g.randomInterior()
		if rows[p.Y][p.X] != core.TileOpen {
			continue
		}

		// Check minimum distance from existing enemies
		valid := true
		for _, other := range existing {
			if other.Faction != f && p.DistanceTo(other.Position) < g.config.MinFactionSpacing {
				valid = false
				break
			}
		}
		if valid {
			return p, nil
		}
	}

	// Fallback: first open square in reading order, ignoring spacing
	for y := 1; y < g.config.Height-1; y++ {
		for x := 1; x < g.config.Width-1; x++ {
			if rows[y][x] == core.TileOpen {
				return core.NewCoordinate(x, y), nil
			}
		}
	}
	return core.Coordinate{}, ErrNoSpace
}

// UnitPlacement tracks where a unit was placed
type UnitPlacement struct {
	Faction  core.Faction
	Position core.Coordinate
}
