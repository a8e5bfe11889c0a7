package workflow

// State is a node of either the report-draft lifecycle or the report-decision lifecycle
type State string

// Draft lifecycle
const (
	StateIdle       State = "IDLE"
	StateCollecting State = "COLLECTING"
	StateSubmitted  State = "SUBMITTED"
	StateReset      State = "RESET"
)

// Decision lifecycle
const (
	StatePending  State = "PENDING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
)

var validStates = map[State]bool{
	StateIdle:       true,
	StateCollecting: true,
	StateSubmitted:  true,
	StateReset:      true,
	StatePending:    true,
	StateApproved:   true,
	StateRejected:   true,
}

// Decisions are irreversible
var terminalStates = map[State]bool{
	StateApproved: true,
	StateRejected: true,
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state belongs to one of the lifecycles
func (s State) IsValid() bool {
	return validStates[s]
}
