package rules

import (
	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles combat-over detection and winner determination
type WinConditionChecker struct {
	logger        zerolog.Logger
	initialCounts map[core.Faction]int
}

// NewWinConditionChecker creates a checker that remembers each faction's starting size
func NewWinConditionChecker(logger zerolog.Logger, reg *core.Registry) *WinConditionChecker {
	counts := make(map[core.Faction]int, len(core.Factions))
	for _, f := range core.Factions {
		counts[f] = reg.Count(f)
	}
	return &WinConditionChecker{
		logger:        logger.With().Str("component", "WinConditionChecker").Logger(),
		initialCounts: counts,
	}
}

// InitialCount returns how many units faction f started with
func (wc *WinConditionChecker) InitialCount(f core.Faction) int {
	return wc.initialCounts[f]
}

// Losses returns how many units of faction f have died so far
func (wc *WinConditionChecker) Losses(reg *core.Registry, f core.Faction) int {
	return wc.initialCounts[f] - reg.Count(f)
}

// CheckCombatOver reports whether at most one faction has living units.
// Returns (isOver, winner); winner is meaningless when isOver is false.
func (wc *WinConditionChecker) CheckCombatOver(reg *core.Registry) (bool, core.Faction) {
	var alive []core.Faction
	for _, f := range core.Factions {
		if reg.Count(f) > 0 {
			alive = append(alive, f)
		}
	}

	over := len(alive) <= 1
	var winner core.Faction
	if len(alive) == 1 {
		winner = alive[0]
		wc.logger.Debug().Str("winner", winner.String()).Msg("Winner determined")
	}

	wc.logger.Debug().Bool("is_combat_over", over).Int("alive_factions", len(alive)).Msg("Combat over check complete")
	return over, winner
}
