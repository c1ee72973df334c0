package events

import (
	"time"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
)

// Event type constants
const (
	TypeCombatStarted   = "combat.started"
	TypeCombatEnded     = "combat.ended"
	TypeRoundStarted    = "round.started"
	TypeRoundEnded      = "round.ended"
	TypeUnitMoved       = "unit.moved"
	TypeUnitAttacked    = "unit.attacked"
	TypeUnitDied        = "unit.died"
	TypeStateTransition = "state.transition"
)

// CombatStartedEvent is published when a simulation begins
type CombatStartedEvent struct {
	BaseEvent
	MapWidth  int
	MapHeight int
	Units     map[core.Faction]int
}

// NewCombatStartedEvent creates a new CombatStartedEvent
func NewCombatStartedEvent(combatID string, width, height int, units map[core.Faction]int) *CombatStartedEvent {
	return &CombatStartedEvent{
		BaseEvent: newBase(TypeCombatStarted, combatID),
		MapWidth:  width,
		MapHeight: height,
		Units:     units,
	}
}

// CombatEndedEvent is published when a simulation finishes
type CombatEndedEvent struct {
	BaseEvent
	Winner      core.Faction
	Rounds      int
	RemainingHP int
	Aborted     bool
	Duration    time.Duration
}

// NewCombatEndedEvent creates a new CombatEndedEvent
func NewCombatEndedEvent(combatID string, winner core.Faction, rounds, remainingHP int, aborted bool, duration time.Duration) *CombatEndedEvent {
	return &CombatEndedEvent{
		BaseEvent:   newBase(TypeCombatEnded, combatID),
		Winner:      winner,
		Rounds:      rounds,
		RemainingHP: remainingHP,
		Aborted:     aborted,
		Duration:    duration,
	}
}

// RoundStartedEvent is published before the first turn of a round
type RoundStartedEvent struct {
	BaseEvent
	Round     int
	TurnOrder []int
}

// NewRoundStartedEvent creates a new RoundStartedEvent. turnOrder lists unit IDs.
func NewRoundStartedEvent(combatID string, round int, turnOrder []int) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: newBase(TypeRoundStarted, combatID),
		Round:     round,
		TurnOrder: turnOrder,
	}
}

// RoundEndedEvent is published after every unit has taken its turn
type RoundEndedEvent struct {
	BaseEvent
	Round   int
	Moves   int
	Attacks int
	Deaths  int
}

// NewRoundEndedEvent creates a new RoundEndedEvent
func NewRoundEndedEvent(combatID string, round, moves, attacks, deaths int) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent: newBase(TypeRoundEnded, combatID),
		Round:     round,
		Moves:     moves,
		Attacks:   attacks,
		Deaths:    deaths,
	}
}

// UnitMovedEvent is published when a unit steps to a new square
type UnitMovedEvent struct {
	BaseEvent
	UnitID  int
	Faction core.Faction
	From    core.Coordinate
	To      core.Coordinate
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(combatID string, u *core.Unit, from core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, combatID),
		UnitID:    u.ID,
		Faction:   u.Faction,
		From:      from,
		To:        u.Position,
	}
}

// UnitAttackedEvent is published when a unit hits an adjacent enemy
type UnitAttackedEvent struct {
	BaseEvent
	AttackerID       int
	DefenderID       int
	Damage           int
	DefenderHP       int
	DefenderKilled   bool
	DefenderPosition core.Coordinate
}

// NewUnitAttackedEvent creates a new UnitAttackedEvent
func NewUnitAttackedEvent(combatID string, attacker, defender *core.Unit, killed bool) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent:        newBase(TypeUnitAttacked, combatID),
		AttackerID:       attacker.ID,
		DefenderID:       defender.ID,
		Damage:           attacker.AttackPower,
		DefenderHP:       defender.HitPoints,
		DefenderKilled:   killed,
		DefenderPosition: defender.Position,
	}
}

// UnitDiedEvent is published when a dead unit is purged from the registry
type UnitDiedEvent struct {
	BaseEvent
	UnitID   int
	Faction  core.Faction
	Position core.Coordinate
	Round    int
}

// NewUnitDiedEvent creates a new UnitDiedEvent
func NewUnitDiedEvent(combatID string, u *core.Unit, round int) *UnitDiedEvent {
	return &UnitDiedEvent{
		BaseEvent: newBase(TypeUnitDied, combatID),
		UnitID:    u.ID,
		Faction:   u.Faction,
		Position:  u.Position,
		Round:     round,
	}
}

// StateTransitionEvent is published when the combat state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(combatID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, combatID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
