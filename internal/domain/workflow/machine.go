package workflow

import "context"

// StateMachine tracks the current state of one lifecycle and validates transitions
type StateMachine interface {
	State() State

	// CanFire returns true if the trigger is configured for the current state
	CanFire(trigger Trigger) bool

	// Fire moves to the first permitted target state and runs its entry actions.
	// On failure the state is unchanged.
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers lists the triggers configured for the current state
	PermittedTriggers() []Trigger
}
