package models

import "fmt"

// BookingPolicy is the immutable snapshot of the store's reservation rules.
// It is built once from configuration and injected wherever rules are
// applied; nothing reads business rules from globals.
//
// Times of day are minutes from midnight (e.g., 600 for 10:00 AM).
type BookingPolicy struct {
	OpenMinute      int
	CloseMinute     int
	IntervalMinutes int
	MaxPerSlot      int
	MinLeadMinutes  int
	PartySizeMin    int
	PartySizeMax    int
}

// Validate checks that the policy is internally consistent.
// Overnight opening hours (open >= close) are not supported.
func (p BookingPolicy) Validate() error {
	if p.OpenMinute < 0 || p.CloseMinute > 24*60 || p.OpenMinute >= p.CloseMinute {
		return fmt.Errorf("invalid business hours: open=%d close=%d", p.OpenMinute, p.CloseMinute)
	}
	if p.IntervalMinutes <= 0 || p.IntervalMinutes > 60 || 60%p.IntervalMinutes != 0 {
		return fmt.Errorf("invalid reservation interval: %d minutes", p.IntervalMinutes)
	}
	if p.MaxPerSlot <= 0 {
		return fmt.Errorf("invalid max reservations per slot: %d", p.MaxPerSlot)
	}
	if p.MinLeadMinutes < 0 {
		return fmt.Errorf("invalid minimum lead time: %d minutes", p.MinLeadMinutes)
	}
	if p.PartySizeMin < 1 || p.PartySizeMax < p.PartySizeMin {
		return fmt.Errorf("invalid party size range: %d..%d", p.PartySizeMin, p.PartySizeMax)
	}
	return nil
}
