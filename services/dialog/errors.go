package dialog

import "fmt"

// Rule violation codes.
const (
	RuleLeadTime     = "leadTime"
	RuleOutsideHours = "outsideHours"
	RuleOffGrid      = "offGrid"
)

// RuleViolation reports a business rule rejecting a proposed slot. The
// dialog stays at its current stage so the user can pick another time.
type RuleViolation struct {
	Code    string
	Message string
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationError reports malformed or out-of-range user input. The dialog
// stays at its current stage and the user is re-prompted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StaleStateError reports an event that references a stage the user is not
// in (e.g. confirming with no draft). Recovery resets the user to NONE.
type StaleStateError struct {
	Message string
}

func (e *StaleStateError) Error() string {
	return e.Message
}
