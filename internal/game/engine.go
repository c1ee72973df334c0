package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
	"github.com/mitchelldurbincs/GridCombat/internal/game/rules"
	"github.com/mitchelldurbincs/GridCombat/internal/game/states"
	"github.com/rs/zerolog"
)

// Engine drives one simulation. It owns a private unit registry; the grid is
// shared read-only. Rounds are played strictly sequentially.
type Engine struct {
	combatID     string
	grid         *core.Grid
	units        *core.Registry
	rounds       int
	maxRounds    int
	abortOnLoss  bool
	watch        core.Faction
	logger       zerolog.Logger
	publisher    events.Publisher
	stateMachine *states.StateMachine
	winChecker   *rules.WinConditionChecker
	turns        *TurnProcessor
	outcome      *Outcome
	err          error
}

// Step plays one round. Every living unit acts once, in reading order of its
// position at the start of the round. Dead units are purged after every turn.
// done is true once the combat has ended; the round in which a unit first
// finds no enemy is not counted.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	phase := e.stateMachine.CurrentPhase()
	if phase.IsTerminal() {
		if e.err != nil {
			return true, e.err
		}
		return true, core.ErrCombatOver
	}
	if err := ctx.Err(); err != nil {
		return false, e.fail(err, "context done")
	}
	if phase == states.PhaseInitializing {
		e.refreshContext()
		if err := e.stateMachine.TransitionTo(states.PhaseRunning, "first round"); err != nil {
			return false, e.fail(err, "cannot start")
		}
	}

	round := e.rounds + 1
	order := e.units.LivingAll()
	roundLogger := e.logger.With().Int("round", round).Logger()
	if e.publisher != nil {
		ids := make([]int, len(order))
		for i, u := range order {
			ids[i] = u.ID
		}
		e.publisher.Publish(events.NewRoundStartedEvent(e.combatID, round, ids))
	}

	hpBefore := e.units.TotalHitPoints()
	var moves, attacks, deaths int
	for _, u := range order {
		if !u.IsAlive() {
			continue
		}
		res, err := e.turns.TakeTurn(u)
		if err != nil {
			return false, e.fail(fmt.Errorf("round %d turn of unit %d: %w", round, u.ID, err), "turn failed")
		}
		if res.CombatOver {
			roundLogger.Debug().Int("unit_id", u.ID).Msg("No enemies left, round not counted")
			return true, e.finish(false)
		}
		if res.Moved {
			moves++
		}
		if res.Attacked {
			attacks++
		}

		dead := e.purgeDead(round)
		deaths += len(dead)
		if e.abortOnLoss && lost(dead, e.watch) {
			roundLogger.Debug().Str("faction", e.watch.String()).Msg("Watched faction lost a unit, aborting")
			return true, e.finish(true)
		}
	}

	e.rounds++
	if e.publisher != nil {
		e.publisher.Publish(events.NewRoundEndedEvent(e.combatID, round, moves, attacks, deaths))
	}
	roundLogger.Debug().
		Int("moves", moves).
		Int("attacks", attacks).
		Int("deaths", deaths).
		Msg("Round complete")

	// Attacks that deal no damage leave the state unchanged
	if moves == 0 && e.units.TotalHitPoints() == hpBefore {
		return false, e.fail(fmt.Errorf("after round %d: %w", e.rounds, core.ErrStalemate), "stalemate")
	}
	if e.maxRounds > 0 && e.rounds >= e.maxRounds {
		if over, _ := e.winChecker.CheckCombatOver(e.units); !over {
			return false, e.fail(fmt.Errorf("%d rounds: %w", e.rounds, core.ErrRoundLimit), "round limit")
		}
	}
	return false, nil
}

// Run plays rounds until the combat ends and returns its outcome
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	for {
		done, err := e.Step(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if done {
			return *e.outcome, nil
		}
	}
}

func (e *Engine) purgeDead(round int) []*core.Unit {
	dead := e.units.RemoveDead()
	for _, u := range dead {
		e.logger.Debug().
			Int("unit_id", u.ID).
			Str("faction", u.Faction.String()).
			Stringer("position", u.Position).
			Int("round", round).
			Msg("Unit died")
		if e.publisher != nil {
			e.publisher.Publish(events.NewUnitDiedEvent(e.combatID, u, round))
		}
	}
	return dead
}

func lost(dead []*core.Unit, f core.Faction) bool {
	for _, u := range dead {
		if u.Faction == f {
			return true
		}
	}
	return false
}

// finish records the outcome and moves the state machine to PhaseEnded
func (e *Engine) finish(aborted bool) error {
	_, winner := e.winChecker.CheckCombatOver(e.units)
	o := Outcome{
		Rounds:      e.rounds,
		Winner:      winner,
		RemainingHP: e.units.TotalHitPoints(),
		Survivors:   e.units.Count(winner),
		Losses:      make(map[core.Faction]int, len(core.Factions)),
		Aborted:     aborted,
	}
	for _, f := range core.Factions {
		o.Losses[f] = e.winChecker.Losses(e.units, f)
	}
	o.WinnerName = o.Winner.String()
	if aborted {
		o.WinnerName = ""
	}
	e.outcome = &o

	ctx := e.stateMachine.GetContext()
	e.refreshContext()
	ctx.Winner = winner
	ctx.HasWinner = !aborted
	ctx.Aborted = aborted
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, "combat over"); err != nil {
		return e.fail(err, "cannot end")
	}

	if e.publisher != nil {
		e.publisher.Publish(events.NewCombatEndedEvent(e.combatID, winner, o.Rounds, o.RemainingHP, aborted, ctx.GetElapsedTime()))
	}
	e.logger.Debug().
		Str("winner", o.WinnerName).
		Int("rounds", o.Rounds).
		Int("remaining_hp", o.RemainingHP).
		Bool("aborted", aborted).
		Msg("Combat finished")
	return nil
}

// fail moves the engine into PhaseError and returns err for the caller
func (e *Engine) fail(err error, reason string) error {
	e.err = err
	ctx := e.stateMachine.GetContext()
	e.refreshContext()
	ctx.Error = err
	if e.stateMachine.CanTransitionTo(states.PhaseError) {
		if terr := e.stateMachine.TransitionTo(states.PhaseError, reason); terr != nil {
			e.logger.Error().Err(terr).Msg("Failed to enter error state")
		}
	}
	return err
}

func (e *Engine) refreshContext() {
	ctx := e.stateMachine.GetContext()
	ctx.Rounds = e.rounds
	for _, f := range core.Factions {
		ctx.UnitCounts[f] = e.units.Count(f)
	}
}

// Public accessors
func (e *Engine) CombatID() string             { return e.combatID }
func (e *Engine) Rounds() int                  { return e.rounds }
func (e *Engine) Units() *core.Registry        { return e.units }
func (e *Engine) Grid() *core.Grid             { return e.grid }
func (e *Engine) Phase() states.CombatPhase    { return e.stateMachine.CurrentPhase() }
func (e *Engine) IsOver() bool                 { return e.stateMachine.CurrentPhase().IsTerminal() }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

// Outcome returns the result once the combat has ended
func (e *Engine) Outcome() (Outcome, bool) {
	if e.outcome == nil {
		return Outcome{}, false
	}
	return *e.outcome, true
}

// Elapsed returns the wall time spent playing rounds
func (e *Engine) Elapsed() time.Duration {
	return e.stateMachine.GetContext().GetElapsedTime()
}
