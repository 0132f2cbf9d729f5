package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebot/models"
)

func standardPolicy() models.BookingPolicy {
	return models.BookingPolicy{
		OpenMinute:      10 * 60,
		CloseMinute:     22 * 60,
		IntervalMinutes: 30,
		MaxPerSlot:      2,
		MinLeadMinutes:  30,
		PartySizeMin:    1,
		PartySizeMax:    10,
	}
}

// at builds a local wall-clock time on a fixed day well in the future.
func at(hour, minute int) time.Time {
	return time.Date(2030, 6, 15, hour, minute, 0, 0, time.Local)
}

func TestCheckBusinessHoursHalfOpen(t *testing.T) {
	rules := NewSlotRules(standardPolicy())
	now := time.Date(2030, 6, 14, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		when     time.Time
		wantCode string
	}{
		{"opening instant is bookable", at(10, 0), ""},
		{"mid-day on grid", at(18, 30), ""},
		{"last grid slot before close", at(21, 30), ""},
		{"closing instant is not bookable", at(22, 0), RuleOutsideHours},
		{"after close", at(22, 30), RuleOutsideHours},
		{"before open", at(9, 30), RuleOutsideHours},
		{"just before close off grid still hours ok", at(21, 45), RuleOffGrid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := rules.Check(tc.when, now)
			if tc.wantCode == "" {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tc.wantCode, v.Code)
		})
	}
}

func TestCheckIntervalGrid(t *testing.T) {
	rules := NewSlotRules(standardPolicy())
	now := time.Date(2030, 6, 14, 12, 0, 0, 0, time.Local)

	for _, minute := range []int{0, 30} {
		assert.Nil(t, rules.Check(at(14, minute), now), "minute %d should be on grid", minute)
	}
	for _, minute := range []int{1, 15, 29, 45, 59} {
		v := rules.Check(at(14, minute), now)
		require.NotNil(t, v, "minute %d should be off grid", minute)
		assert.Equal(t, RuleOffGrid, v.Code)
	}
}

func TestCheckLeadTimeBoundary(t *testing.T) {
	rules := NewSlotRules(standardPolicy())
	now := at(12, 0)

	// Exactly the minimum lead is allowed; one minute less is not.
	assert.Nil(t, rules.Check(at(12, 30), now))

	v := rules.Check(at(12, 29), now)
	require.NotNil(t, v)
	assert.Equal(t, RuleLeadTime, v.Code)

	v = rules.Check(at(11, 0), now)
	require.NotNil(t, v)
	assert.Equal(t, RuleLeadTime, v.Code)
}

func TestCheckLeadTimeTakesPrecedence(t *testing.T) {
	rules := NewSlotRules(standardPolicy())
	now := at(23, 0)

	// A past time that is also outside hours and off grid reports lead time.
	v := rules.Check(at(23, 10), now)
	require.NotNil(t, v)
	assert.Equal(t, RuleLeadTime, v.Code)
}

func TestCheckCustomInterval(t *testing.T) {
	policy := standardPolicy()
	policy.IntervalMinutes = 15
	rules := NewSlotRules(policy)
	now := time.Date(2030, 6, 14, 12, 0, 0, 0, time.Local)

	assert.Nil(t, rules.Check(at(14, 45), now))
	v := rules.Check(at(14, 20), now)
	require.NotNil(t, v)
	assert.Equal(t, RuleOffGrid, v.Code)
}
