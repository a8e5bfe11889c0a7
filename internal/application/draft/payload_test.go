package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/domain/entity"
)

func TestNewPayload(t *testing.T) {
	valid := Form{Name: " Trip ", Date: "2025-03-04", BusinessPurpose: "Client visit "}

	tests := []struct {
		name    string
		form    Form
		source  string
		ids     []string
		wantErr error
	}{
		{"valid", valid, entity.SourceExpenses, []string{"1"}, nil},
		{"unknown source", valid, "dashboard", []string{"1"}, ErrUnknownSource},
		{"no ids", valid, entity.SourceExpenses, nil, ErrEmptySelection},
		{"blank name", Form{Name: "\t", Date: "2025-03-04", BusinessPurpose: "x"}, entity.SourceExpenses, []string{"1"}, ErrMissingName},
		{"blank purpose", Form{Name: "Trip", Date: "2025-03-04"}, entity.SourceExpenses, []string{"1"}, ErrMissingBusinessPurpose},
		{"missing date", Form{Name: "Trip", BusinessPurpose: "x"}, entity.SourceExpenses, []string{"1"}, ErrInvalidDate},
		{"bad date", Form{Name: "Trip", BusinessPurpose: "x", Date: "2025-13-01"}, entity.SourceExpenses, []string{"1"}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPayload(tt.form, tt.source, tt.ids)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Trip", p.Name)
			assert.Equal(t, "Client visit", p.BusinessPurpose)
		})
	}
}

func TestPayload_RoundTripsThroughParams(t *testing.T) {
	p, err := NewPayload(Form{
		Name:            "Q1 cards",
		Date:            "2025-03-04",
		BusinessPurpose: "Quarterly reconciliation",
		Comment:         "see attached",
		AssignTo:        "Sarah Johnson",
	}, entity.SourceCreditCards, []string{"1", "3"})
	require.NoError(t, err)

	params := p.Params()
	assert.Equal(t, "1,3", params[ParamSelectedIDs])
	assert.Equal(t, entity.SourceCreditCards, params[ParamSource])

	back, err := PayloadFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestPayload_ParamsOmitEmptyAssignee(t *testing.T) {
	p, err := NewPayload(Form{Name: "Trip", Date: "2025-03-04", BusinessPurpose: "x"}, entity.SourceExpenses, []string{"2"})
	require.NoError(t, err)

	_, ok := p.Params()[ParamAssignTo]
	assert.False(t, ok)
}

func TestPayloadFromParams_Invalid(t *testing.T) {
	_, err := PayloadFromParams(map[string]string{
		ParamName:            "Trip",
		ParamDate:            "2025-03-04",
		ParamBusinessPurpose: "x",
		ParamSource:          entity.SourceExpenses,
		ParamSelectedIDs:     " , ",
	})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestPayload_RejectsDuplicateIDs(t *testing.T) {
	form := Form{Name: "Trip", Date: "2025-03-04", BusinessPurpose: "x"}

	_, err := NewPayload(form, entity.SourceExpenses, []string{"1", "2", "1"})
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.True(t, IsValidation(err))

	_, err = PayloadFromParams(map[string]string{
		ParamName:            "Trip",
		ParamDate:            "2025-03-04",
		ParamBusinessPurpose: "x",
		ParamSource:          entity.SourceCreditCards,
		ParamSelectedIDs:     "3,3",
	})
	assert.ErrorIs(t, err, ErrDuplicateItem)
}
