package dialog

import (
	"fmt"
	"time"

	"tablebot/models"
)

// SlotRules is the pure rules engine for proposed reservation times.
// It does no I/O and holds no mutable state; all knobs come from the
// injected policy.
type SlotRules struct {
	policy models.BookingPolicy
}

// NewSlotRules constructs the rules engine for a policy.
func NewSlotRules(policy models.BookingPolicy) SlotRules {
	return SlotRules{policy: policy}
}

// WithinBusinessHours reports whether the time of day falls inside opening
// hours. The interval is half-open: the closing instant itself is closed
// for business. Overnight spans (open > close) are not supported.
func (r SlotRules) WithinBusinessHours(t time.Time) bool {
	tod := t.Hour()*60 + t.Minute()
	return r.policy.OpenMinute <= tod && tod < r.policy.CloseMinute
}

// OnIntervalGrid reports whether the minute lands on the reservation grid.
// Seconds are already truncated by the selection parser.
func (r SlotRules) OnIntervalGrid(t time.Time) bool {
	return t.Minute()%r.policy.IntervalMinutes == 0
}

// FarEnoughInFuture reports whether the time honors the minimum lead time.
func (r SlotRules) FarEnoughInFuture(t, now time.Time) bool {
	lead := time.Duration(r.policy.MinLeadMinutes) * time.Minute
	return !t.Before(now.Add(lead))
}

// Check runs all rules against a proposed time and returns the first
// violation, or nil when the time is eligible for availability checking.
func (r SlotRules) Check(t, now time.Time) *RuleViolation {
	if !r.FarEnoughInFuture(t, now) {
		return &RuleViolation{
			Code: RuleLeadTime,
			Message: fmt.Sprintf(
				"Past or very near times can't be booked. Please pick a time at least %d minutes from now.",
				r.policy.MinLeadMinutes),
		}
	}
	if !r.WithinBusinessHours(t) {
		return &RuleViolation{
			Code: RuleOutsideHours,
			Message: fmt.Sprintf(
				"Sorry, that time is outside our opening hours (%s-%s).",
				formatClock(r.policy.OpenMinute), formatClock(r.policy.CloseMinute)),
		}
	}
	if !r.OnIntervalGrid(t) {
		return &RuleViolation{
			Code: RuleOffGrid,
			Message: fmt.Sprintf(
				"Sorry, we take reservations in %d-minute steps (e.g. 10:00, 10:30).",
				r.policy.IntervalMinutes),
		}
	}
	return nil
}

// formatClock renders minutes from midnight as "HH:MM".
func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
