package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	for _, invalid := range []string{"", "25:00", "10:60", "1030", "10:3", "abc"} {
		_, err := NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", invalid)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(13*60 + 45)
	require.NoError(t, err)
	assert.Equal(t, "13:45", ts.String())

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestMinutes(t *testing.T) {
	minutes, err := TimeString("09:15").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 9*60+15, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", ts.String())

	_, err = TimeString("23:50").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat, "выход за границы суток")
}

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2025, 11, 3, 17, 42, 0, 0, loc)
	got, err := TimeString("10:30").At(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 11, 3, 10, 30, 0, 0, loc), got)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String(), "секунды из postgres TIME отбрасываются")

	require.NoError(t, ts.Scan([]byte("14:00")))
	assert.Equal(t, "14:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 8, 45, 0, 0, time.UTC)))
	assert.Equal(t, "08:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeFormat)
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
