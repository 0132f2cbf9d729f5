package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectionAcceptsBothLayouts(t *testing.T) {
	want := time.Date(2030, 6, 15, 18, 30, 0, 0, time.Local)

	got, err := ParseSelection("2030-06-15T18:30")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = ParseSelection("2030-06-15T18:30:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestParseSelectionTruncatesSeconds(t *testing.T) {
	got, err := ParseSelection("2030-06-15T18:30:45")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, "2030-06-15T18:30:00", SlotKey(got))
}

func TestParseSelectionRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "tomorrow", "2030/06/15 18:30", "2030-06-15"} {
		_, err := ParseSelection(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestSlotKeyRoundTrip(t *testing.T) {
	orig := time.Date(2030, 6, 15, 10, 0, 0, 0, time.Local)
	parsed, err := ParseSlotKey(SlotKey(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
}
