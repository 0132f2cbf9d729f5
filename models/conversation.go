package models

import (
	"fmt"
	"time"
)

// Stage identifies how far a user has progressed through the reservation
// dialog. The absence of a state record means StageNone.
type Stage string

const (
	StageNone           Stage = "NONE"
	StageAskingDateTime Stage = "ASKING_DATETIME"
	StageAskingPeople   Stage = "ASKING_PEOPLE"
	StageConfirming     Stage = "CONFIRMING"
)

// Draft holds the in-progress, unconfirmed reservation data accumulated
// while the dialog advances. Zero values mean "not collected yet".
type Draft struct {
	DateTime  string `json:"dateTime,omitempty"`  // slot key, set from ASKING_PEOPLE onwards
	PartySize int    `json:"partySize,omitempty"` // set only at CONFIRMING
}

// ConversationState is the single live dialog record for a user.
// It is overwritten on every transition and deleted when the dialog
// completes or aborts; there is no history.
type ConversationState struct {
	UserID    string    `json:"userId"`
	Stage     Stage     `json:"stage"`
	Draft     Draft     `json:"draft"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate rejects structurally invalid states at the stage boundary:
// a draft field may only be present in the stages that collected it.
func (s *ConversationState) Validate() error {
	switch s.Stage {
	case StageAskingDateTime:
		if s.Draft.DateTime != "" || s.Draft.PartySize != 0 {
			return fmt.Errorf("stage %s must carry an empty draft", s.Stage)
		}
	case StageAskingPeople:
		if s.Draft.DateTime == "" {
			return fmt.Errorf("stage %s requires a proposed datetime", s.Stage)
		}
		if s.Draft.PartySize != 0 {
			return fmt.Errorf("stage %s must not carry a party size", s.Stage)
		}
	case StageConfirming:
		if s.Draft.DateTime == "" || s.Draft.PartySize == 0 {
			return fmt.Errorf("stage %s requires a complete draft", s.Stage)
		}
	default:
		return fmt.Errorf("unknown dialog stage %q", s.Stage)
	}
	if s.Draft.DateTime != "" {
		if _, err := ParseSlotKey(s.Draft.DateTime); err != nil {
			return fmt.Errorf("draft datetime: %w", err)
		}
	}
	return nil
}
