package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRange(t *testing.T) {
	// 2025-11-20 is a Thursday.
	mon, fri, err := WeekRange("2025-11-20")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-17", mon)
	assert.Equal(t, "2025-11-21", fri)

	// A Monday maps to itself.
	mon, fri, err = WeekRange("2025-11-17")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-17", mon)
	assert.Equal(t, "2025-11-21", fri)

	// Sunday belongs to the week that started the previous Monday.
	mon, _, err = WeekRange("2025-11-23")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-17", mon)

	_, _, err = WeekRange("not-a-date")
	assert.Error(t, err)
}

func TestDateInRange(t *testing.T) {
	assert.True(t, DateInRange("2025-11-19", "2025-11-17", "2025-11-21"))
	assert.True(t, DateInRange("2025-11-17", "2025-11-17", "2025-11-21"))
	assert.True(t, DateInRange("2025-11-21", "2025-11-17", "2025-11-21"))
	assert.False(t, DateInRange("2025-11-22", "2025-11-17", "2025-11-21"))
	assert.False(t, DateInRange("garbage", "2025-11-17", "2025-11-21"))
}

func TestDatesBetween(t *testing.T) {
	dates := DatesBetween("2025-11-17", "2025-11-19")
	assert.Equal(t, []string{"2025-11-17", "2025-11-18", "2025-11-19"}, dates)

	assert.Nil(t, DatesBetween("2025-11-19", "2025-11-17"))
	assert.Nil(t, DatesBetween("x", "2025-11-19"))
}
