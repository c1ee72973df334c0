package game

import (
	"fmt"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
	"github.com/mitchelldurbincs/GridCombat/internal/game/pathfind"
	"github.com/mitchelldurbincs/GridCombat/internal/game/rules"
	"github.com/rs/zerolog"
)

// TurnResult describes what one unit did during its turn
type TurnResult struct {
	UnitID     int
	Moved      bool
	From, To   core.Coordinate
	Attacked   bool
	TargetID   int
	Killed     bool
	CombatOver bool
}

// TurnProcessor executes a single unit's turn: war check, adjacency check,
// movement toward the nearest in-range square, then attack.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// TakeTurn runs the turn of u against the engine's current registry.
// CombatOver is set when u finds no living enemy; nothing else happens then.
func (tp *TurnProcessor) TakeTurn(u *core.Unit) (TurnResult, error) {
	res := TurnResult{UnitID: u.ID, From: u.Position, To: u.Position, TargetID: core.NoTarget}
	if !u.IsAlive() {
		return res, nil
	}
	u.TargetID = core.NoTarget

	reg := tp.engine.units
	if !rules.HasLivingEnemy(reg, u) {
		res.CombatOver = true
		return res, nil
	}

	if len(rules.AdjacentEnemies(reg, u)) == 0 {
		moved, err := tp.move(u)
		if err != nil {
			return res, err
		}
		res.Moved = moved
		res.To = u.Position
		if len(rules.AdjacentEnemies(reg, u)) == 0 {
			return res, nil
		}
	}

	target, killed, err := tp.attack(u)
	if err != nil {
		return res, err
	}
	res.Attacked = true
	res.TargetID = target.ID
	res.Killed = killed
	return res, nil
}

// move steps u one square toward the nearest reachable in-range square.
// It reports false when no in-range square is reachable.
func (tp *TurnProcessor) move(u *core.Unit) (bool, error) {
	reg := tp.engine.units
	grid := tp.engine.grid

	inRange := rules.InRangeSquares(reg, u)
	if len(inRange) == 0 {
		return false, nil
	}

	field := pathfind.Flood(grid, u.Position, reg)
	target, dist, ok := pathfind.Nearest(field, inRange)
	if !ok {
		return false, nil
	}

	step, ok := pathfind.NextStep(grid, u.Position, target, dist, reg)
	if !ok {
		return false, fmt.Errorf("unit %d at %s has no first step toward %s at distance %d", u.ID, u.Position, target, dist)
	}

	from := u.Position
	if err := reg.Move(u.ID, step); err != nil {
		return false, err
	}

	tp.logger.Debug().
		Int("unit_id", u.ID).
		Stringer("from", from).
		Stringer("to", step).
		Stringer("destination", target).
		Int("distance", dist).
		Msg("Unit moved")
	if tp.engine.publisher != nil {
		tp.engine.publisher.Publish(events.NewUnitMovedEvent(tp.engine.combatID, u, from))
	}
	return true, nil
}

// attack hits the adjacent enemy with the fewest hit points (reading order on ties)
func (tp *TurnProcessor) attack(u *core.Unit) (*core.Unit, bool, error) {
	reg := tp.engine.units
	target, ok := rules.SelectAttackTarget(reg, u)
	if !ok {
		return nil, false, fmt.Errorf("unit %d at %s: %w", u.ID, u.Position, core.ErrNoTarget)
	}

	killed, err := reg.Damage(target.ID, u.AttackPower)
	if err != nil {
		return nil, false, err
	}
	u.TargetID = target.ID

	tp.logger.Debug().
		Int("attacker_id", u.ID).
		Int("defender_id", target.ID).
		Int("damage", u.AttackPower).
		Int("defender_hp", target.HitPoints).
		Bool("killed", killed).
		Msg("Unit attacked")
	if tp.engine.publisher != nil {
		tp.engine.publisher.Publish(events.NewUnitAttackedEvent(tp.engine.combatID, u, target, killed))
	}
	return target, killed, nil
}
