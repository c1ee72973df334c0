package game

import "github.com/mitchelldurbincs/GridCombat/internal/game/core"

// Outcome summarizes a finished simulation
type Outcome struct {
	Rounds      int                  `json:"rounds" yaml:"rounds"`
	Winner      core.Faction         `json:"-" yaml:"-"`
	WinnerName  string               `json:"winner" yaml:"winner"`
	RemainingHP int                  `json:"remaining_hp" yaml:"remaining_hp"`
	Survivors   int                  `json:"survivors" yaml:"survivors"`
	Losses      map[core.Faction]int `json:"-" yaml:"-"`
	// Aborted is set when the run stopped early on the first loss of a watched faction
	Aborted bool `json:"aborted,omitempty" yaml:"aborted,omitempty"`
}

// Score is the conventional combat summary: completed rounds times remaining hit points
func (o Outcome) Score() int {
	return o.Rounds * o.RemainingHP
}

// NoLossWin reports whether f won the full simulation without losing a unit
func (o Outcome) NoLossWin(f core.Faction) bool {
	return !o.Aborted && o.Winner == f && o.Losses[f] == 0
}
