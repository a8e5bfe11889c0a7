package draft

import "errors"

// Validation failures carry the message shown to the user
var (
	ErrEmptySelection         = errors.New("Please select at least one item")
	ErrMissingName            = errors.New("Please enter a report name")
	ErrMissingBusinessPurpose = errors.New("Please enter a business purpose")
	ErrInvalidDate            = errors.New("Please enter a date as YYYY-MM-DD")
	ErrUnknownSource          = errors.New("unknown draft source")
	ErrUnknownItem            = errors.New("item not found")
	ErrDuplicateItem          = errors.New("Each item can only be added once")
)

// Precondition failures
var (
	ErrDraftOpen   = errors.New("a report draft is already open")
	ErrNoDraftOpen = errors.New("no report draft is open")
)

// IsValidation reports whether err is a user-correctable input error
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmptySelection,
		ErrMissingName,
		ErrMissingBusinessPurpose,
		ErrInvalidDate,
		ErrUnknownSource,
		ErrDuplicateItem,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
