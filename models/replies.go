package models

// ReplyIntent kinds. The core never builds platform payloads; the
// transport adapter renders these into whatever the chat platform needs.
const (
	ReplyText           = "text"
	ReplyConfirm        = "confirm"
	ReplyDateTimePicker = "datetime_picker"
)

// ReplyIntent is a platform-agnostic description of one outbound message,
// a tagged variant over Type.
type ReplyIntent struct {
	Type        string `json:"type"`
	Body        string `json:"body,omitempty"`
	YesActionID string `json:"yesActionId,omitempty"` // ReplyConfirm
	NoActionID  string `json:"noActionId,omitempty"`  // ReplyConfirm
	Label       string `json:"label,omitempty"`       // ReplyDateTimePicker
	ActionID    string `json:"actionId,omitempty"`    // ReplyDateTimePicker
}

func NewPlainText(body string) ReplyIntent {
	return ReplyIntent{Type: ReplyText, Body: body}
}

func NewConfirmPrompt(body, yesActionID, noActionID string) ReplyIntent {
	return ReplyIntent{
		Type:        ReplyConfirm,
		Body:        body,
		YesActionID: yesActionID,
		NoActionID:  noActionID,
	}
}

func NewDateTimePickerPrompt(label, actionID string) ReplyIntent {
	return ReplyIntent{Type: ReplyDateTimePicker, Label: label, ActionID: actionID}
}
