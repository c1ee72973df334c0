package states

import "fmt"

// CombatPhase represents the current phase of a simulation
type CombatPhase int

const (
	// PhaseInitializing - Map parsed, units placed
	PhaseInitializing CombatPhase = iota

	// PhaseRunning - Rounds are being played
	PhaseRunning

	// PhaseEnded - One faction has no living units left
	PhaseEnded

	// PhaseError - Stalemate, round limit, cancellation or invariant violation
	PhaseError
)

// String returns the string representation of a CombatPhase
func (p CombatPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p CombatPhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanPlayRounds returns true if rounds may be executed in this phase
func (p CombatPhase) CanPlayRounds() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p CombatPhase) AllowedTransitions() []CombatPhase {
	switch p {
	case PhaseInitializing:
		return []CombatPhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []CombatPhase{PhaseEnded, PhaseError}
	default:
		return []CombatPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p CombatPhase) CanTransitionTo(target CombatPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
