package scenario

import "errors"

var (
	// ErrNoCases indicates a scenario with an empty cases list.
	ErrNoCases = errors.New("scenario: at least one case is required")

	// ErrMissingCaseName indicates a case without a name.
	ErrMissingCaseName = errors.New("scenario: case name is required")

	// ErrUnknownAction indicates a step whose action is not one of the
	// supported primitives.
	ErrUnknownAction = errors.New("scenario: unknown action")

	// ErrMissingField indicates a step missing a field its action requires.
	ErrMissingField = errors.New("scenario: missing required step field")
)
