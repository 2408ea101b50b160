package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), tod)
	assert.Equal(t, "09:30", tod.String())
	assert.Equal(t, "10:00", tod.Add(30).String())

	_, err = ParseTimeOfDay("25:00")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ParseTimeOfDay("nine")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTimeOfDay_On(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	got := NewTimeOfDay(14, 0).On(date)
	assert.Equal(t, time.Date(2024, 6, 10, 14, 0, 0, 0, loc), got)
	assert.Equal(t, NewTimeOfDay(14, 0), TimeOfDayOf(got))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	// 22:30 UTC это уже следующий день по Москве
	instant := time.Date(2024, 6, 10, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), DateOf(instant, loc))
}
