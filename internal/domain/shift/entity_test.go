package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByStartTime(t *testing.T) {
	shifts := []Shift{
		{Name: "night", StartTime: "10:00 PM", EndTime: "6:00 AM"},
		{Name: "evening", StartTime: "14:00", EndTime: "22:00"},
		{Name: "morning", StartTime: "6:00 AM", EndTime: "2:00 PM"},
	}

	SortByStartTime(shifts)

	assert.Equal(t, "morning", shifts[0].Name)
	assert.Equal(t, "evening", shifts[1].Name)
	assert.Equal(t, "night", shifts[2].Name)
}

func TestSortByStartTimeUnparsableSortsFirst(t *testing.T) {
	shifts := []Shift{
		{Name: "day", StartTime: "09:00", EndTime: "17:00"},
		{Name: "broken", StartTime: "not a time", EndTime: "17:00"},
	}

	SortByStartTime(shifts)

	assert.Equal(t, "broken", shifts[0].Name)
}

func TestPresenceEnforced(t *testing.T) {
	assert.False(t, Shift{}.PresenceEnforced())
	assert.True(t, Shift{PresenceCount: 3}.PresenceEnforced())
	assert.True(t, Shift{PresenceTimeSeconds: 5}.PresenceEnforced())
}
