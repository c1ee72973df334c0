package states

import (
	"fmt"
	"time"
)

// InitializingState represents a simulation whose units are placed but not yet acting
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() CombatPhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *CombatContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *CombatContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *CombatContext) error {
	return nil
}

// RunningState represents a simulation that is playing rounds
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() CombatPhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *CombatContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Debug().
		Interface("unit_counts", ctx.UnitCounts).
		Msg("Combat started")
	return nil
}

func (s *RunningState) Exit(ctx *CombatContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("rounds", ctx.Rounds).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *CombatContext) error {
	total := 0
	for _, n := range ctx.UnitCounts {
		total += n
	}
	if total == 0 {
		return fmt.Errorf("cannot run combat with no units")
	}
	return nil
}

// EndedState represents a finished simulation with a winner
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() CombatPhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *CombatContext) error {
	ctx.Logger.Debug().
		Str("winner", ctx.Winner.String()).
		Int("rounds", ctx.Rounds).
		Msg("Combat ended")
	return nil
}

func (s *EndedState) Exit(ctx *CombatContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *CombatContext) error {
	if ctx.Aborted {
		return nil
	}
	if !ctx.HasWinner {
		return fmt.Errorf("ended state requires a winner")
	}
	if ctx.FactionsAlive() > 1 {
		return fmt.Errorf("ended state requires a single surviving faction, have %d", ctx.FactionsAlive())
	}
	return nil
}

// ErrorState represents a simulation that cannot produce an outcome
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() CombatPhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *CombatContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	ctx.Logger.Warn().
		Err(ctx.Error).
		Int("rounds", ctx.Rounds).
		Msg("Combat entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *CombatContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *CombatContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error")
	}
	return nil
}
