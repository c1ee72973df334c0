package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GridCombat/internal/game/events"
)

// State represents a combat phase with lifecycle callbacks
type State interface {
	// Phase returns the CombatPhase this state represents
	Phase() CombatPhase

	// Enter is called when transitioning into this state
	Enter(ctx *CombatContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *CombatContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *CombatContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      CombatPhase
	To        CombatPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages combat phase transitions and history. A simulation
// runs on one goroutine, so the machine is not safe for concurrent use.
type StateMachine struct {
	currentPhase CombatPhase
	states       map[CombatPhase]State
	context      *CombatContext
	history      []Transition
	publisher    events.Publisher
}

// NewStateMachine creates a new state machine. publisher may be nil.
func NewStateMachine(ctx *CombatContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase: PhaseInitializing,
		states:       make(map[CombatPhase]State),
		context:      ctx,
		history:      make([]Transition, 0, 4),
		publisher:    publisher,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewErrorState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current combat phase
func (sm *StateMachine) CurrentPhase() CombatPhase {
	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase CombatPhase, reason string) error {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	sm.history = append(sm.history, Transition{
		From:      sm.currentPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.CombatID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the combat context
func (sm *StateMachine) GetContext() *CombatContext {
	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase CombatPhase) bool {
	return sm.currentPhase.CanTransitionTo(targetPhase)
}
