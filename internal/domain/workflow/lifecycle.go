package workflow

import (
	"fmt"

	"github.com/garyjia/expense-companion/internal/domain/status"
)

// DraftHooks binds the draft lifecycle to the owner of the selection and form
type DraftHooks struct {
	// HasSelection guards Idle -> Collecting
	HasSelection GuardFunc
	// FormValid guards Collecting -> Submitted
	FormValid GuardFunc
	// OnSubmitted runs on entering Submitted, before the automatic reset
	OnSubmitted EntryAction
	// OnReset clears the form on entering Reset
	OnReset EntryAction
}

// NewDraftMachine builds the report-draft lifecycle:
//
//	Idle --Open--> Collecting --Confirm--> Submitted --Reset--> Reset --Finish--> Idle
//	Collecting --Cancel--> Idle
func NewDraftMachine(hooks DraftHooks) StateMachine {
	b := NewBuilder()

	b.Configure(StateIdle).
		PermitIf(TriggerOpen, StateCollecting, hooks.HasSelection)

	b.Configure(StateCollecting).
		PermitIf(TriggerConfirm, StateSubmitted, hooks.FormValid).
		Permit(TriggerCancel, StateIdle)

	b.Configure(StateSubmitted).
		OnEntry(hooks.OnSubmitted).
		Permit(TriggerReset, StateReset)

	b.Configure(StateReset).
		OnEntry(hooks.OnReset).
		Permit(TriggerFinish, StateIdle)

	return b.Build(StateIdle)
}

// NewDecisionMachine builds the approval lifecycle starting from a report's current status.
// Approved and Rejected have no outgoing transitions.
func NewDecisionMachine(current status.Status) (StateMachine, error) {
	initial, err := StateForStatus(current)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Configure(StatePending).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected)
	b.Configure(StateApproved)
	b.Configure(StateRejected)

	return b.Build(initial), nil
}

// StateForStatus maps a canonical item status onto the decision lifecycle
func StateForStatus(s status.Status) (State, error) {
	switch s {
	case status.Pending:
		return StatePending, nil
	case status.Approved:
		return StateApproved, nil
	case status.Rejected:
		return StateRejected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
}

// StatusForState is the inverse of StateForStatus
func StatusForState(s State) (status.Status, error) {
	switch s {
	case StatePending:
		return status.Pending, nil
	case StateApproved:
		return status.Approved, nil
	case StateRejected:
		return status.Rejected, nil
	default:
		return "", fmt.Errorf("%w: %s is not a decision state", ErrInvalidState, s)
	}
}
