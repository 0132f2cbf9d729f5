package models

import "fmt"

// InboundEvent kinds. The transport adapter normalizes platform webhooks
// into exactly one of these before the dialog machine sees them.
const (
	EventText      = "text"      // free-form user text
	EventSelection = "selection" // a value picked from a widget
	EventAction    = "action"    // a postback button press
)

// Action identifiers carried by EventAction and emitted in reply intents.
const (
	ActionSelectDateTime = "select_datetime"
	ActionConfirmYes     = "confirm_yes"
	ActionConfirmNo      = "confirm_no"
)

// Selection kinds carried by EventSelection.
const SelectionDateTime = "datetime"

// InboundEvent is a normalized user event, a tagged variant over Type.
type InboundEvent struct {
	Type     string `json:"type" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	Text     string `json:"text,omitempty"`          // EventText
	Kind     string `json:"selectionKind,omitempty"` // EventSelection
	Value    string `json:"value,omitempty"`         // EventSelection
	ActionID string `json:"actionId,omitempty"`      // EventAction
}

// Validate checks that the variant carries the fields its tag requires.
func (e *InboundEvent) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("event is missing a user id")
	}
	switch e.Type {
	case EventText:
		if e.Text == "" {
			return fmt.Errorf("text event with empty text")
		}
	case EventSelection:
		if e.Kind != SelectionDateTime {
			return fmt.Errorf("unsupported selection kind %q", e.Kind)
		}
		if e.Value == "" {
			return fmt.Errorf("selection event with empty value")
		}
	case EventAction:
		if e.ActionID == "" {
			return fmt.Errorf("action event with empty action id")
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}
