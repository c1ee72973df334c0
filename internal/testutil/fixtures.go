package testutil

import "github.com/mitchelldurbincs/GridCombat/internal/game/core"

// Sample is a reference map with its known baseline outcome and, when
// SearchPower is non-zero, the known minimal elf power for a no-loss win
type Sample struct {
	Name        string
	Map         string
	Rounds      int
	Winner      core.Faction
	RemainingHP int

	SearchPower  int
	SearchRounds int
	SearchHP     int
}

// Score is the baseline rounds times remaining hit points
func (s Sample) Score() int { return s.Rounds * s.RemainingHP }

// SearchScore is the score of the run at the minimal winning power
func (s Sample) SearchScore() int { return s.SearchRounds * s.SearchHP }

// HasSearch reports whether a search expectation is recorded
func (s Sample) HasSearch() bool { return s.SearchPower > 0 }

const ArenaMap = `#####
#E..#
#...#
#..G#
#####`

const TieBreakMap = `#######
#.E...#
#.....#
#...G.#
#######`

const MovementMap = `#########
#G..G..G#
#.......#
#.......#
#G..E..G#
#.......#
#.......#
#G..G..G#
#########`

// WalledOffMap has two factions with no path between them
const WalledOffMap = `#######
#E.#.G#
#######`

// Samples are the reference combats used across packages
var Samples = []Sample{
	{
		Name: "first",
		Map: `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######`,
		Rounds: 47, Winner: core.Goblin, RemainingHP: 590,
		SearchPower: 15, SearchRounds: 29, SearchHP: 172,
	},
	{
		Name: "elves_hold",
		Map: `#######
#G..#E#
#E#E.E#
#G.##.#
#...#E#
#...E.#
#######`,
		Rounds: 37, Winner: core.Elf, RemainingHP: 982,
	},
	{
		Name: "elves_sweep",
		Map: `#######
#E..EG#
#.#G.E#
#E.##E#
#G..#.#
#..E#.#
#######`,
		Rounds: 46, Winner: core.Elf, RemainingHP: 859,
		SearchPower: 4, SearchRounds: 33, SearchHP: 948,
	},
	{
		Name: "goblin_corner",
		Map: `#######
#E.G#.#
#.#G..#
#G.#.G#
#G..#.#
#...E.#
#######`,
		Rounds: 35, Winner: core.Goblin, RemainingHP: 793,
		SearchPower: 15, SearchRounds: 37, SearchHP: 94,
	},
	{
		Name: "corridor",
		Map: `#######
#.E...#
#.#..G#
#.###.#
#E#G#G#
#...#G#
#######`,
		Rounds: 54, Winner: core.Goblin, RemainingHP: 536,
		SearchPower: 12, SearchRounds: 39, SearchHP: 166,
	},
	{
		Name: "large",
		Map: `#########
#G......#
#.E.#...#
#..##..G#
#...##..#
#...#...#
#.G...G.#
#.....G.#
#########`,
		Rounds: 20, Winner: core.Goblin, RemainingHP: 937,
		SearchPower: 34, SearchRounds: 30, SearchHP: 38,
	},
	{
		Name:   "movement",
		Map:    MovementMap,
		Rounds: 18, Winner: core.Goblin, RemainingHP: 1546,
	},
}
