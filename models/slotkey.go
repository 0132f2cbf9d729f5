package models

import (
	"fmt"
	"time"
)

// Reservation datetimes are naive local wall-clock values in the store's
// timezone. They are persisted and compared as strings so that a slot is
// always an exact-match key, never a timezone-dependent instant.
const (
	// SlotKeyLayout is the canonical persisted form.
	SlotKeyLayout = "2006-01-02T15:04:05"
	// PickerLayout is what the datetime picker widget submits.
	PickerLayout = "2006-01-02T15:04"
)

// ParseSelection parses a picker value into a local wall-clock time with
// seconds truncated to zero. Both the picker form and the canonical form
// are accepted.
func ParseSelection(value string) (time.Time, error) {
	t, err := time.ParseInLocation(PickerLayout, value, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(SlotKeyLayout, value, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized datetime %q: %w", value, err)
		}
	}
	return t.Truncate(time.Minute), nil
}

// SlotKey renders a time as the canonical slot key.
func SlotKey(t time.Time) string {
	return t.Format(SlotKeyLayout)
}

// ParseSlotKey parses a canonical slot key back into a local time.
func ParseSlotKey(key string) (time.Time, error) {
	return time.ParseInLocation(SlotKeyLayout, key, time.Local)
}
