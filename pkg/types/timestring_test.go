package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("930")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	end, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), end)

	end, err = ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), end)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:30").IsBefore("13:00"))
	assert.False(t, TimeString("13:00").IsBefore("13:00"))
	assert.True(t, TimeString("13:30").IsAfter("13:00"))
	assert.False(t, TimeString("12:59").IsAfter("13:00"))
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("11:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, 11, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, date.Year(), at.Year())
}
