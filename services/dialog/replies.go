package dialog

import (
	"fmt"
	"time"

	"tablebot/models"
)

// displayLayout is how datetimes are shown to users in replies.
const displayLayout = "Mon, Jan 2 2006 at 15:04"

func displayTime(slotKey string) string {
	t, err := models.ParseSlotKey(slotKey)
	if err != nil {
		return slotKey
	}
	return t.Format(displayLayout)
}

func replyStartDialog() []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText("Let's book your table. Please choose a date and time."),
		models.NewDateTimePickerPrompt("Choose date & time", models.ActionSelectDateTime),
	}
}

func replyAskPartySize(t time.Time, min, max int) []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText(fmt.Sprintf(
			"%s it is. How many guests? Please reply with a number (%d-%d).",
			t.Format(displayLayout), min, max)),
	}
}

func replyConfirmSummary(dateTime string, partySize int) []models.ReplyIntent {
	body := fmt.Sprintf(
		"Shall I confirm this reservation?\nWhen: %s\nGuests: %d",
		displayTime(dateTime), partySize)
	return []models.ReplyIntent{
		models.NewConfirmPrompt(body, models.ActionConfirmYes, models.ActionConfirmNo),
	}
}

func replyBooked(reservation *models.Reservation) []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText(fmt.Sprintf(
			"Thank you! Your table is booked: %s for %d guests (reservation #%d).",
			displayTime(reservation.DateTime), reservation.PartySize, reservation.ID)),
	}
}

func replySlotTaken() []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText("Sorry, that time slot is fully booked. Please try another date or time."),
	}
}

func replyBecameFull() []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText("Sorry, that slot filled up while you were confirming. Please start over with another time."),
	}
}

func replyCancelled() []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText(`Your reservation was cancelled. Send "reserve" to start over.`),
	}
}

// errStale is the one stale-state condition; every reset shows the same
// recovery instruction.
var errStale = &StaleStateError{
	Message: `That wasn't expected right now. Please send "reserve" to start from the beginning.`,
}

func replyStale() []models.ReplyIntent {
	return []models.ReplyIntent{models.NewPlainText(errStale.Message)}
}

func replyTransient() []models.ReplyIntent {
	return []models.ReplyIntent{
		models.NewPlainText("Sorry, something went wrong while processing your reservation. Please try again in a moment."),
	}
}

func replyValidation(verr *ValidationError) []models.ReplyIntent {
	return []models.ReplyIntent{models.NewPlainText(verr.Message)}
}

func replyRuleViolation(v *RuleViolation) []models.ReplyIntent {
	return []models.ReplyIntent{models.NewPlainText(v.Message)}
}

func replyHelp(text string) []models.ReplyIntent {
	if text == "" {
		return []models.ReplyIntent{
			models.NewPlainText(`Send "reserve" to start booking a table.`),
		}
	}
	return []models.ReplyIntent{
		models.NewPlainText(fmt.Sprintf("%q — got it.\nSend \"reserve\" to start booking a table.", text)),
	}
}
