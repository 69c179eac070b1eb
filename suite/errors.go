package suite

import "errors"

var (
	// ErrSuiteClosed indicates a Suite was used after Close.
	ErrSuiteClosed = errors.New("suite: already closed")

	// ErrMissingCaseName indicates CaseOptions.Name was empty.
	ErrMissingCaseName = errors.New("suite: test case name is required")

	// ErrNilDriver indicates Start was given a nil browser driver.
	ErrNilDriver = errors.New("suite: driver is nil")
)

// AssertionError is the failure raised by assert-style actions on mismatch.
// The message is reproducible and reaches span status, the correlated error
// log, and the caller unchanged.
type AssertionError struct {
	msg string
}

func (e *AssertionError) Error() string { return e.msg }

func assertionFailed(msg string) error {
	return &AssertionError{msg: msg}
}
