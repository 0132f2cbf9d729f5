package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStateRoundTrip(t *testing.T) {
	original := ConversationState{
		UserID: "u1",
		Stage:  StageConfirming,
		Draft: Draft{
			DateTime:  "2030-06-15T18:30:00",
			PartySize: 4,
		},
		UpdatedAt: time.Date(2030, 6, 14, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ConversationState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestConversationStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   ConversationState
		wantErr bool
	}{
		{
			name:  "asking datetime with empty draft",
			state: ConversationState{UserID: "u1", Stage: StageAskingDateTime},
		},
		{
			name: "asking datetime must not carry a datetime",
			state: ConversationState{
				UserID: "u1", Stage: StageAskingDateTime,
				Draft: Draft{DateTime: "2030-06-15T18:30:00"},
			},
			wantErr: true,
		},
		{
			name: "asking people with proposed datetime",
			state: ConversationState{
				UserID: "u1", Stage: StageAskingPeople,
				Draft: Draft{DateTime: "2030-06-15T18:30:00"},
			},
		},
		{
			name:    "asking people without datetime",
			state:   ConversationState{UserID: "u1", Stage: StageAskingPeople},
			wantErr: true,
		},
		{
			name: "asking people must not carry a party size",
			state: ConversationState{
				UserID: "u1", Stage: StageAskingPeople,
				Draft: Draft{DateTime: "2030-06-15T18:30:00", PartySize: 2},
			},
			wantErr: true,
		},
		{
			name: "confirming with complete draft",
			state: ConversationState{
				UserID: "u1", Stage: StageConfirming,
				Draft: Draft{DateTime: "2030-06-15T18:30:00", PartySize: 2},
			},
		},
		{
			name: "confirming without party size",
			state: ConversationState{
				UserID: "u1", Stage: StageConfirming,
				Draft: Draft{DateTime: "2030-06-15T18:30:00"},
			},
			wantErr: true,
		},
		{
			name: "draft datetime must be a canonical slot key",
			state: ConversationState{
				UserID: "u1", Stage: StageAskingPeople,
				Draft: Draft{DateTime: "june 15th, around 6"},
			},
			wantErr: true,
		},
		{
			name:    "unknown stage",
			state:   ConversationState{UserID: "u1", Stage: "HALF_CONFIRMED"},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.state.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInboundEventValidate(t *testing.T) {
	valid := []InboundEvent{
		{Type: EventText, UserID: "u1", Text: "reserve"},
		{Type: EventSelection, UserID: "u1", Kind: SelectionDateTime, Value: "2030-06-15T18:30"},
		{Type: EventAction, UserID: "u1", ActionID: ActionConfirmYes},
	}
	for _, e := range valid {
		assert.NoError(t, e.Validate(), "event %+v", e)
	}

	invalid := []InboundEvent{
		{Type: EventText, Text: "reserve"},                               // no user
		{Type: EventText, UserID: "u1"},                                  // no text
		{Type: EventSelection, UserID: "u1", Value: "2030-06-15T18:30"},  // no kind
		{Type: EventSelection, UserID: "u1", Kind: SelectionDateTime},    // no value
		{Type: EventAction, UserID: "u1"},                                // no action
		{Type: "sticker", UserID: "u1"},                                  // unknown type
	}
	for _, e := range invalid {
		assert.Error(t, e.Validate(), "event %+v", e)
	}
}
