package workflow

import (
	"context"
	"fmt"
	"sort"
)

// GuardFunc decides whether a transition may be taken
type GuardFunc func(ctx context.Context) bool

// EntryAction runs after the machine has moved into a state
type EntryAction func(ctx context.Context)

// StateMachineBuilder builds a configured state machine
type StateMachineBuilder interface {
	// Configure returns the configuration for the given state, creating it on first use
	Configure(state State) StateConfiguration

	// Build creates an independent machine starting in initialState
	Build(initialState State) StateMachine
}

// StateConfiguration configures transitions out of a single state
type StateConfiguration interface {
	// Permit allows a trigger to move to the target state unconditionally
	Permit(trigger Trigger, toState State) StateConfiguration

	// PermitIf allows a trigger to move to the target state when guard passes.
	// Several guarded transitions may share a trigger; the first passing one wins.
	PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration

	// OnEntry registers an action run each time the state is entered through Fire
	OnEntry(action EntryAction) StateConfiguration
}

type transition struct {
	toState State
	guard   GuardFunc
}

type stateConfig struct {
	transitions map[Trigger][]transition
	onEntry     []EntryAction
}

func newStateConfig() *stateConfig {
	return &stateConfig{transitions: make(map[Trigger][]transition)}
}

func (c *stateConfig) clone() *stateConfig {
	cp := newStateConfig()
	for trigger, ts := range c.transitions {
		cp.transitions[trigger] = append([]transition{}, ts...)
	}
	cp.onEntry = append([]EntryAction{}, c.onEntry...)
	return cp
}

type stateMachineBuilder struct {
	configurations map[State]*stateConfig
}

type stateMachine struct {
	currentState   State
	configurations map[State]*stateConfig
}

// NewBuilder creates an empty state machine builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{
		configurations: make(map[State]*stateConfig),
	}
}

// Configure panics on a state outside the known lifecycles
func (b *stateMachineBuilder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}

	config, exists := b.configurations[state]
	if !exists {
		config = newStateConfig()
		b.configurations[state] = config
	}
	return config
}

// Build copies the configuration so later builder changes do not leak into built machines
func (b *stateMachineBuilder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	configs := make(map[State]*stateConfig, len(b.configurations))
	for state, config := range b.configurations {
		configs[state] = config.clone()
	}

	return &stateMachine{
		currentState:   initialState,
		configurations: configs,
	}
}

func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	return c.PermitIf(trigger, toState, nil)
}

func (c *stateConfig) PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}

	c.transitions[trigger] = append(c.transitions[trigger], transition{
		toState: toState,
		guard:   guard,
	})
	return c
}

func (c *stateConfig) OnEntry(action EntryAction) StateConfiguration {
	if action != nil {
		c.onEntry = append(c.onEntry, action)
	}
	return c
}

func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire reports whether the trigger has any transition out of the current state.
// Guards are not evaluated.
func (m *stateMachine) CanFire(trigger Trigger) bool {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return false
	}
	return len(config.transitions[trigger]) > 0
}

func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s (no configuration)", ErrInvalidTransition, trigger, m.currentState)
	}

	transitions := config.transitions[trigger]
	if len(transitions) == 0 {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	for _, t := range transitions {
		if t.guard != nil && !t.guard(ctx) {
			continue
		}
		m.currentState = t.toState
		if target, ok := m.configurations[t.toState]; ok {
			for _, action := range target.onEntry {
				action(ctx)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.currentState)
}

// PermittedTriggers returns the triggers configured for the current state in name order
func (m *stateMachine) PermittedTriggers() []Trigger {
	config, exists := m.configurations[m.currentState]
	if !exists {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(config.transitions))
	for trigger := range config.transitions {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
