package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	bookingRepo "tablebot/database/repository/booking"
	"tablebot/models"
	"tablebot/utils"

	"go.uber.org/zap"
)

// reserveCommand is the literal text command that starts a dialog.
const reserveCommand = "reserve"

// HandleEvent interprets one inbound event against the user's current
// stage and advances the dialog. It returns a non-empty reply sequence for
// every well-formed event; an error is returned only for events the
// transport should never have produced.
func (svc *DefaultDialogService) HandleEvent(ctx context.Context, event models.InboundEvent) ([]models.ReplyIntent, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	logger := utils.GetLogger()

	state, err := svc.States.Load(ctx, event.UserID)
	if err != nil {
		logger.Error("failed to load conversation state",
			zap.String("userID", event.UserID), zap.Error(err))
		return replyTransient(), nil
	}
	stage := models.StageNone
	if state != nil {
		stage = state.Stage
	}

	switch {
	case event.Type == models.EventText && strings.EqualFold(strings.TrimSpace(event.Text), reserveCommand):
		// "reserve" restarts the dialog from any stage.
		return svc.startDialog(ctx, event.UserID)

	case event.Type == models.EventSelection:
		return svc.applyDateTimeSelection(ctx, event, stage)

	case event.Type == models.EventText && stage == models.StageAskingPeople:
		return svc.applyPartySize(ctx, event, state)

	case event.Type == models.EventAction && event.ActionID == models.ActionConfirmYes && stage == models.StageConfirming:
		return svc.commitReservation(ctx, event.UserID, state)

	case event.Type == models.EventAction && event.ActionID == models.ActionConfirmNo && stage == models.StageConfirming:
		return svc.abandonDialog(ctx, event.UserID)

	case event.Type == models.EventAction && event.ActionID == models.ActionSelectDateTime:
		// Picker opened but no value came back. Only meaningful while we
		// are actually waiting for a datetime.
		if stage == models.StageAskingDateTime {
			return replyValidation(&ValidationError{Message: "No date/time was received. Please choose from the picker."}), nil
		}
		return svc.resetStale(ctx, event.UserID)

	case event.Type == models.EventAction && stage == models.StageNone:
		// Duplicate or late confirm button press after the dialog already
		// ended: harmless, answer with the generic help.
		return replyHelp(""), nil

	case event.Type == models.EventAction:
		// A confirm action in a stage that never issued one.
		return svc.resetStale(ctx, event.UserID)

	default:
		return replyHelp(strings.TrimSpace(event.Text)), nil
	}
}

// startDialog resets any draft and asks for a date/time.
func (svc *DefaultDialogService) startDialog(ctx context.Context, userID string) ([]models.ReplyIntent, error) {
	state := &models.ConversationState{
		UserID: userID,
		Stage:  models.StageAskingDateTime,
	}
	if err := svc.States.Save(ctx, state); err != nil {
		utils.GetLogger().Error("failed to save conversation state",
			zap.String("userID", userID), zap.Error(err))
		return replyTransient(), nil
	}
	return replyStartDialog(), nil
}

// applyDateTimeSelection validates a picked datetime against the slot rules
// and current availability, then advances to ASKING_PEOPLE. Every rejection
// keeps the user at ASKING_DATETIME so another time can be picked.
func (svc *DefaultDialogService) applyDateTimeSelection(ctx context.Context, event models.InboundEvent, stage models.Stage) ([]models.ReplyIntent, error) {
	logger := utils.GetLogger()

	if stage != models.StageAskingDateTime {
		return svc.resetStale(ctx, event.UserID)
	}

	t, err := models.ParseSelection(event.Value)
	if err != nil {
		return replyValidation(&ValidationError{Message: "The date/time format wasn't recognized. Please choose again."}), nil
	}
	if v := svc.Rules.Check(t, time.Now()); v != nil {
		return replyRuleViolation(v), nil
	}

	slotKey := models.SlotKey(t)
	count, err := svc.Bookings.CountConfirmed(ctx, slotKey)
	if err != nil {
		logger.Error("availability check failed",
			zap.String("slot", slotKey), zap.Error(err))
		return replyTransient(), nil
	}
	if count >= svc.Policy.MaxPerSlot {
		return replySlotTaken(), nil
	}

	state := &models.ConversationState{
		UserID: event.UserID,
		Stage:  models.StageAskingPeople,
		Draft:  models.Draft{DateTime: slotKey},
	}
	if err := svc.States.Save(ctx, state); err != nil {
		logger.Error("failed to save conversation state",
			zap.String("userID", event.UserID), zap.Error(err))
		return replyTransient(), nil
	}
	return replyAskPartySize(t, svc.Policy.PartySizeMin, svc.Policy.PartySizeMax), nil
}

// applyPartySize records the party size and advances to CONFIRMING.
func (svc *DefaultDialogService) applyPartySize(ctx context.Context, event models.InboundEvent, state *models.ConversationState) ([]models.ReplyIntent, error) {
	n, err := strconv.Atoi(strings.TrimSpace(event.Text))
	if err != nil || n < svc.Policy.PartySizeMin || n > svc.Policy.PartySizeMax {
		return replyValidation(&ValidationError{Message: fmt.Sprintf(
			"Please send the number of guests as digits between %d and %d (e.g. 2).",
			svc.Policy.PartySizeMin, svc.Policy.PartySizeMax)}), nil
	}

	state.Stage = models.StageConfirming
	state.Draft.PartySize = n
	if err := svc.States.Save(ctx, state); err != nil {
		utils.GetLogger().Error("failed to save conversation state",
			zap.String("userID", event.UserID), zap.Error(err))
		return replyTransient(), nil
	}
	return replyConfirmSummary(state.Draft.DateTime, n), nil
}

// commitReservation finalizes a confirmed dialog. The capacity re-check and
// the insert are one atomic store operation, so a slot can never be
// committed past its capacity no matter how many dialogs race on it.
func (svc *DefaultDialogService) commitReservation(ctx context.Context, userID string, state *models.ConversationState) ([]models.ReplyIntent, error) {
	logger := utils.GetLogger()

	if state == nil || state.Draft.DateTime == "" || state.Draft.PartySize == 0 {
		return svc.resetStale(ctx, userID)
	}
	t, err := models.ParseSlotKey(state.Draft.DateTime)
	if err != nil {
		return svc.resetStale(ctx, userID)
	}

	// A dialog can outlive a configuration change; re-validate the rules
	// against the current policy before committing.
	if v := svc.Rules.Check(t, time.Now()); v != nil {
		if err := svc.States.Clear(ctx, userID); err != nil {
			logger.Error("failed to clear conversation state",
				zap.String("userID", userID), zap.Error(err))
			return replyTransient(), nil
		}
		return append(replyRuleViolation(v),
			models.NewPlainText(`Please send "reserve" to pick a new time.`)), nil
	}

	reservation, err := svc.Bookings.InsertConfirmed(ctx, userID, state.Draft.DateTime, state.Draft.PartySize)
	if errors.Is(err, bookingRepo.ErrSlotFull) {
		// Lost the slot to a competing dialog between proposal and
		// confirmation. The draft is no longer bookable.
		if clearErr := svc.States.Clear(ctx, userID); clearErr != nil {
			logger.Error("failed to clear conversation state",
				zap.String("userID", userID), zap.Error(clearErr))
		}
		return replyBecameFull(), nil
	}
	if err != nil {
		// Commit did not happen. Keep the state so the same confirm_yes
		// can be retried once the store recovers.
		logger.Error("reservation commit failed",
			zap.String("userID", userID), zap.Error(err))
		return replyTransient(), nil
	}

	if err := svc.States.Clear(ctx, userID); err != nil {
		// The reservation is committed; the leftover state will expire
		// with the dialog TTL.
		logger.Warn("failed to clear conversation state after booking",
			zap.String("userID", userID), zap.Error(err))
	}
	logger.Info("reservation confirmed",
		zap.Int64("reservationID", reservation.ID),
		zap.String("userID", userID),
		zap.String("slot", reservation.DateTime),
		zap.Int("partySize", reservation.PartySize))
	return replyBooked(reservation), nil
}

// abandonDialog handles an explicit "no" at the confirmation prompt.
func (svc *DefaultDialogService) abandonDialog(ctx context.Context, userID string) ([]models.ReplyIntent, error) {
	if err := svc.States.Clear(ctx, userID); err != nil {
		utils.GetLogger().Error("failed to clear conversation state",
			zap.String("userID", userID), zap.Error(err))
		return replyTransient(), nil
	}
	return replyCancelled(), nil
}

// resetStale recovers from an event that references a stage the user is
// not in: the in-progress draft is invalidated and the user starts over.
func (svc *DefaultDialogService) resetStale(ctx context.Context, userID string) ([]models.ReplyIntent, error) {
	if err := svc.States.Clear(ctx, userID); err != nil {
		utils.GetLogger().Error("failed to clear conversation state",
			zap.String("userID", userID), zap.Error(err))
		return replyTransient(), nil
	}
	return replyStale(), nil
}
