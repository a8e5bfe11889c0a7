// Package draft implements the report-draft workflow: a selection of source
// items on one screen becomes a validated payload for the report-detail screen.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/workflow"
)

// AmountLookup resolves a source item to its amount; ok is false for unknown ids
type AmountLookup func(id string) (amount float64, ok bool)

// Clock returns the current time
type Clock func() time.Time

// Draft is the draft workflow of one source screen.
// It is not safe for concurrent use; callers serialise commands.
type Draft struct {
	source   string
	lookup   AmountLookup
	clock    Clock
	selected []string
	form     Form
	machine  workflow.StateMachine
	payload  Payload
}

// New creates an idle draft for source. A nil clock uses time.Now.
func New(source string, lookup AmountLookup, clock Clock) (*Draft, error) {
	if !ValidSource(source) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if lookup == nil {
		return nil, errors.New("amount lookup is required")
	}
	if clock == nil {
		clock = time.Now
	}

	d := &Draft{
		source: source,
		lookup: lookup,
		clock:  clock,
	}
	d.form = d.defaultForm()
	d.machine = workflow.NewDraftMachine(workflow.DraftHooks{
		HasSelection: func(context.Context) bool { return len(d.selected) > 0 },
		FormValid:    func(context.Context) bool { return validateForm(d.form) == nil },
		OnSubmitted:  d.handOff,
		OnReset:      func(context.Context) { d.form = d.defaultForm() },
	})
	return d, nil
}

// Source returns the screen tag the draft belongs to
func (d *Draft) Source() string { return d.source }

// State returns the current workflow state
func (d *Draft) State() workflow.State { return d.machine.State() }

// Form returns the current form contents
func (d *Draft) Form() Form { return d.form }

// Toggle adds id to the selection, or removes it if already selected.
// It returns whether id is selected afterwards.
func (d *Draft) Toggle(id string) (bool, error) {
	if d.State() == workflow.StateCollecting {
		return false, ErrDraftOpen
	}
	for i, sel := range d.selected {
		if sel == id {
			d.selected = append(d.selected[:i:i], d.selected[i+1:]...)
			return false, nil
		}
	}
	if _, ok := d.lookup(id); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	d.selected = append(d.selected, id)
	return true, nil
}

// Selected returns the selected ids in selection order
func (d *Draft) Selected() []string {
	return append([]string{}, d.selected...)
}

// SelectedTotal sums the amounts of the selected items as they are now
func (d *Draft) SelectedTotal() float64 {
	total := 0.0
	for _, id := range d.selected {
		if amount, ok := d.lookup(id); ok {
			total += amount
		}
	}
	return total
}

// Open starts collecting form input. The selection must not be empty.
func (d *Draft) Open(ctx context.Context) error {
	if d.State() == workflow.StateCollecting {
		return ErrDraftOpen
	}
	if err := d.machine.Fire(ctx, workflow.TriggerOpen); err != nil {
		if errors.Is(err, workflow.ErrGuardFailed) {
			return ErrEmptySelection
		}
		return err
	}
	return nil
}

// UpdateForm replaces the form contents while the draft is open
func (d *Draft) UpdateForm(form Form) error {
	if d.State() != workflow.StateCollecting {
		return ErrNoDraftOpen
	}
	d.form = form
	return nil
}

// Confirm validates the form and hands off the payload. On success the
// selection is cleared and the draft is back to Idle with a fresh form.
// On a validation failure the draft stays open and nothing changes.
func (d *Draft) Confirm(ctx context.Context) (Payload, error) {
	if d.State() != workflow.StateCollecting {
		return Payload{}, ErrNoDraftOpen
	}
	if err := validateForm(d.form); err != nil {
		return Payload{}, err
	}

	if err := d.machine.Fire(ctx, workflow.TriggerConfirm); err != nil {
		return Payload{}, err
	}
	payload := d.payload

	if err := d.machine.Fire(ctx, workflow.TriggerReset); err != nil {
		return Payload{}, err
	}
	if err := d.machine.Fire(ctx, workflow.TriggerFinish); err != nil {
		return Payload{}, err
	}
	return payload, nil
}

// Cancel discards the form and returns to Idle. The selection is kept.
func (d *Draft) Cancel(ctx context.Context) error {
	if d.State() != workflow.StateCollecting {
		return ErrNoDraftOpen
	}
	if err := d.machine.Fire(ctx, workflow.TriggerCancel); err != nil {
		return err
	}
	d.form = d.defaultForm()
	return nil
}

// Restore reopens a payload that Confirm handed off but the receiver could
// not use. The selection and form come back and the draft is Collecting
// again, as if Confirm had failed validation.
func (d *Draft) Restore(ctx context.Context, p Payload) error {
	if p.Source != d.source {
		return fmt.Errorf("%w: %q", ErrUnknownSource, p.Source)
	}
	if d.State() != workflow.StateIdle {
		return ErrDraftOpen
	}
	if len(p.SourceIDs) == 0 {
		return ErrEmptySelection
	}

	d.selected = append([]string(nil), p.SourceIDs...)
	if err := d.machine.Fire(ctx, workflow.TriggerOpen); err != nil {
		return err
	}
	d.form = Form{
		Name:            p.Name,
		Date:            p.Date,
		BusinessPurpose: p.BusinessPurpose,
		Comment:         p.Comment,
		AssignTo:        p.AssignTo,
	}
	return nil
}

func (d *Draft) handOff(context.Context) {
	form := d.form
	if form.Date == "" {
		form.Date = d.today()
	}
	// the form was validated before Confirm fired
	payload, _ := NewPayload(form, d.source, d.selected)
	d.payload = payload
	d.selected = nil
}

func (d *Draft) defaultForm() Form {
	return Form{Date: d.today()}
}

func (d *Draft) today() string {
	return d.clock().Format(entity.DateLayout)
}

// Set holds one draft per source screen
type Set struct {
	drafts map[string]*Draft
}

// NewSet indexes drafts by source
func NewSet(drafts ...*Draft) *Set {
	s := &Set{drafts: make(map[string]*Draft, len(drafts))}
	for _, d := range drafts {
		s.drafts[d.source] = d
	}
	return s
}

// Get returns the draft for source
func (s *Set) Get(source string) (*Draft, error) {
	d, ok := s.drafts[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return d, nil
}

// InProgress counts drafts holding a selection or an open form
func (s *Set) InProgress() int {
	n := 0
	for _, d := range s.drafts {
		if len(d.selected) > 0 || d.State() == workflow.StateCollecting {
			n++
		}
	}
	return n
}
