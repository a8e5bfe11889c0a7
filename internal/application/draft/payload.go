package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/expense-companion/internal/domain/entity"
)

// Destination is the screen a confirmed draft is handed to
const Destination = "report-detail"

// Router parameter keys
const (
	ParamName            = "name"
	ParamDate            = "date"
	ParamBusinessPurpose = "businessPurpose"
	ParamComment         = "comment"
	ParamAssignTo        = "assignTo"
	ParamSource          = "source"
	ParamSelectedIDs     = "selectedIds"
)

// Form holds the fields of the create-report dialog
type Form struct {
	Name            string `json:"name"`
	Date            string `json:"date"`
	BusinessPurpose string `json:"business_purpose"`
	Comment         string `json:"comment"`
	AssignTo        string `json:"assign_to"`
}

// Payload is a validated report draft ready for the report-detail screen
type Payload struct {
	Name            string   `json:"name"`
	Date            string   `json:"date"`
	BusinessPurpose string   `json:"business_purpose"`
	Comment         string   `json:"comment,omitempty"`
	AssignTo        string   `json:"assign_to,omitempty"`
	Source          string   `json:"source"`
	SourceIDs       []string `json:"source_ids"`
}

// ValidSource reports whether source names a screen drafts can start from
func ValidSource(source string) bool {
	return source == entity.SourceExpenses || source == entity.SourceCreditCards
}

// NewPayload validates form and builds the handoff payload.
// Name and business purpose are trimmed and required; date must already be set.
// Each source id may appear once.
func NewPayload(form Form, source string, ids []string) (Payload, error) {
	if !ValidSource(source) {
		return Payload{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if len(ids) == 0 {
		return Payload{}, ErrEmptySelection
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return Payload{}, fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		seen[id] = true
	}
	if err := validateForm(form); err != nil {
		return Payload{}, err
	}
	date := strings.TrimSpace(form.Date)
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return Payload{}, fmt.Errorf("%w: %q", ErrInvalidDate, form.Date)
	}

	return Payload{
		Name:            strings.TrimSpace(form.Name),
		Date:            date,
		BusinessPurpose: strings.TrimSpace(form.BusinessPurpose),
		Comment:         strings.TrimSpace(form.Comment),
		AssignTo:        strings.TrimSpace(form.AssignTo),
		Source:          source,
		SourceIDs:       append([]string(nil), ids...),
	}, nil
}

// Params flattens the payload into the router's string bag
func (p Payload) Params() map[string]string {
	params := map[string]string{
		ParamName:            p.Name,
		ParamDate:            p.Date,
		ParamBusinessPurpose: p.BusinessPurpose,
		ParamComment:         p.Comment,
		ParamSource:          p.Source,
		ParamSelectedIDs:     strings.Join(p.SourceIDs, ","),
	}
	if p.AssignTo != "" {
		params[ParamAssignTo] = p.AssignTo
	}
	return params
}

// PayloadFromParams rebuilds a payload from the router's string bag, re-validating it
func PayloadFromParams(params map[string]string) (Payload, error) {
	var ids []string
	for _, id := range strings.Split(params[ParamSelectedIDs], ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	form := Form{
		Name:            params[ParamName],
		Date:            params[ParamDate],
		BusinessPurpose: params[ParamBusinessPurpose],
		Comment:         params[ParamComment],
		AssignTo:        params[ParamAssignTo],
	}
	return NewPayload(form, params[ParamSource], ids)
}

func validateForm(form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(form.BusinessPurpose) == "" {
		return ErrMissingBusinessPurpose
	}
	if d := strings.TrimSpace(form.Date); d != "" {
		if _, err := time.Parse(entity.DateLayout, d); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, form.Date)
		}
	}
	return nil
}
