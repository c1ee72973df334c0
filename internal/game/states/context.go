package states

import (
	"time"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/rs/zerolog"
)

// CombatContext carries simulation-specific information that states use to
// validate transitions and log lifecycle changes
type CombatContext struct {
	// CombatID uniquely identifies this simulation
	CombatID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// UnitCounts holds the number of living units per faction, refreshed by the engine
	UnitCounts map[core.Faction]int

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// Rounds is the number of completed rounds
	Rounds int

	// Winner is only meaningful once HasWinner is true
	Winner    core.Faction
	HasWinner bool

	// Aborted marks a run stopped early on the first loss of a watched faction
	Aborted bool

	// Error holds whatever caused the transition to PhaseError
	Error error
}

// NewCombatContext creates a new combat context
func NewCombatContext(combatID string, logger zerolog.Logger) *CombatContext {
	return &CombatContext{
		CombatID:   combatID,
		Logger:     logger.With().Str("combat_id", combatID).Logger(),
		UnitCounts: make(map[core.Faction]int),
	}
}

// FactionsAlive returns how many factions still have living units
func (cc *CombatContext) FactionsAlive() int {
	n := 0
	for _, count := range cc.UnitCounts {
		if count > 0 {
			n++
		}
	}
	return n
}

// GetElapsedTime returns the time spent in PhaseRunning
func (cc *CombatContext) GetElapsedTime() time.Duration {
	if cc.StartTime.IsZero() {
		return 0
	}
	if !cc.EndTime.IsZero() {
		return cc.EndTime.Sub(cc.StartTime)
	}
	return time.Since(cc.StartTime)
}
