package dialog

import (
	"context"

	bookingRepo "tablebot/database/repository/booking"
	conversationRepo "tablebot/database/repository/conversation"
	"tablebot/models"
)

// DialogService drives the reservation dialog: it interprets one normalized
// inbound event against the user's conversation state and returns the
// ordered reply intents for the transport adapter to deliver.
//
// State is always persisted before replies are returned, so a failed
// delivery can never leave the stored dialog ahead of what the user saw.
type DialogService interface {
	HandleEvent(ctx context.Context, event models.InboundEvent) ([]models.ReplyIntent, error)
}

// DefaultDialogService implements DialogService.
type DefaultDialogService struct {
	Rules    SlotRules
	Policy   models.BookingPolicy
	Bookings bookingRepo.BookingRepository
	States   conversationRepo.ConversationRepository
}

// NewDefaultDialogService wires the dialog machine.
func NewDefaultDialogService(
	policy models.BookingPolicy,
	bookings bookingRepo.BookingRepository,
	states conversationRepo.ConversationRepository,
) *DefaultDialogService {
	return &DefaultDialogService{
		Rules:    NewSlotRules(policy),
		Policy:   policy,
		Bookings: bookings,
		States:   states,
	}
}
