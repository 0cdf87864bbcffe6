package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

func londonSchedule(t *testing.T) Schedule {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return Schedule{
		Location:           loc,
		WorkdayStart:       types.MustTimeString("09:00"),
		WorkdayEnd:         types.MustTimeString("20:00"),
		TravelBuffer:       15 * time.Minute,
		MinBookingNotice:   time.Hour,
		AdvanceBookingDays: 30,
	}
}

func TestSchedule_Envelope(t *testing.T) {
	s := londonSchedule(t)

	env := s.Envelope(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))

	// BST = UTC+1
	assert.True(t, env.Start.Equal(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)))
	assert.True(t, env.End.Equal(time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, env.Date.Day())
}

func TestSchedule_Today(t *testing.T) {
	s := londonSchedule(t)

	// 23:30 UTC уже следующий день по Лондону
	now := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	today := s.Today(now)

	assert.Equal(t, 3, today.Day())
	assert.True(t, s.IsPast(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, s.IsPast(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), now))
}

func TestSchedule_IsBeyondHorizon(t *testing.T) {
	s := londonSchedule(t)
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	assert.False(t, s.IsBeyondHorizon(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, s.IsBeyondHorizon(time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), now))

	s.AdvanceBookingDays = 0
	assert.False(t, s.IsBeyondHorizon(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestSchedule_EarliestStart(t *testing.T) {
	s := londonSchedule(t)
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	assert.True(t, s.EarliestStart(now).Equal(now.Add(time.Hour)))
}
