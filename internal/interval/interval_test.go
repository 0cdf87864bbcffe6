package interval

import (
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

const buffer = 15 * time.Minute

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func rng(h1, m1, h2, m2 int) domain.TimeRange {
	return domain.TimeRange{Start: at(h1, m1), End: at(h2, m2)}
}

func workday() domain.WorkdayEnvelope {
	return domain.WorkdayEnvelope{Date: at(0, 0), Start: at(9, 0), End: at(20, 0)}
}

func TestPadEvent(t *testing.T) {
	env := workday()

	tests := []struct {
		name  string
		event domain.TimeRange
		want  domain.TimeRange
	}{
		{name: "inside the day", event: rng(12, 0, 13, 0), want: rng(11, 45, 13, 15)},
		{name: "anchors day start", event: rng(9, 0, 10, 0), want: rng(9, 0, 10, 15)},
		{name: "anchors day end", event: rng(19, 0, 20, 0), want: rng(18, 45, 20, 0)},
		{name: "whole day", event: rng(9, 0, 20, 0), want: rng(9, 0, 20, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PadEvent(tt.event, buffer, env))
		})
	}
}

func TestMergeOverlapping(t *testing.T) {
	tests := []struct {
		name string
		in   []domain.TimeRange
		want []domain.TimeRange
	}{
		{name: "empty", in: nil, want: []domain.TimeRange{}},
		{name: "single", in: []domain.TimeRange{rng(10, 0, 11, 0)}, want: []domain.TimeRange{rng(10, 0, 11, 0)}},
		{
			name: "padded neighbours overlap",
			in:   []domain.TimeRange{rng(9, 45, 10, 45), rng(10, 25, 11, 15)},
			want: []domain.TimeRange{rng(9, 45, 11, 15)},
		},
		{
			name: "touching ranges merge",
			in:   []domain.TimeRange{rng(10, 0, 11, 0), rng(11, 0, 12, 0)},
			want: []domain.TimeRange{rng(10, 0, 12, 0)},
		},
		{
			name: "contained range keeps outer end",
			in:   []domain.TimeRange{rng(10, 0, 14, 0), rng(11, 0, 12, 0), rng(15, 0, 16, 0)},
			want: []domain.TimeRange{rng(10, 0, 14, 0), rng(15, 0, 16, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeOverlapping(tt.in))
		})
	}
}

func TestInvert(t *testing.T) {
	env := workday()

	t.Run("no busy time leaves the whole day", func(t *testing.T) {
		assert.Equal(t, []domain.TimeRange{env.Range()}, Invert(nil, env))
	})

	t.Run("busy block hanging over the day edges", func(t *testing.T) {
		got := Invert([]domain.TimeRange{rng(8, 30, 10, 0), rng(19, 0, 21, 0)}, env)
		assert.Equal(t, []domain.TimeRange{rng(10, 0, 19, 0)}, got)
	})

	t.Run("busy block after the day", func(t *testing.T) {
		got := Invert([]domain.TimeRange{rng(20, 30, 21, 0)}, env)
		assert.Equal(t, []domain.TimeRange{env.Range()}, got)
	})

	t.Run("fully booked day", func(t *testing.T) {
		assert.Empty(t, Invert([]domain.TimeRange{rng(9, 0, 20, 0)}, env))
	})
}

func TestComputeAvailability_Scenarios(t *testing.T) {
	env := workday()

	t.Run("event in the middle of the day", func(t *testing.T) {
		got := ComputeAvailability([]domain.TimeRange{rng(12, 0, 13, 0)}, env, buffer)
		assert.Equal(t, []domain.TimeRange{rng(9, 0, 11, 45), rng(13, 15, 20, 0)}, got)
	})

	t.Run("event anchoring the start of the day", func(t *testing.T) {
		got := ComputeAvailability([]domain.TimeRange{rng(9, 0, 10, 0)}, env, buffer)
		assert.Equal(t, []domain.TimeRange{rng(10, 15, 20, 0)}, got)
	})

	t.Run("event anchoring the end of the day", func(t *testing.T) {
		got := ComputeAvailability([]domain.TimeRange{rng(18, 0, 20, 0)}, env, buffer)
		assert.Equal(t, []domain.TimeRange{rng(9, 0, 17, 45)}, got)
	})

	t.Run("close events merge after padding", func(t *testing.T) {
		got := ComputeAvailability([]domain.TimeRange{rng(10, 40, 11, 0), rng(10, 0, 10, 30)}, env, buffer)
		assert.Equal(t, []domain.TimeRange{rng(9, 0, 9, 45), rng(11, 15, 20, 0)}, got)
	})

	t.Run("empty busy list", func(t *testing.T) {
		got := ComputeAvailability(nil, env, buffer)
		assert.Equal(t, []domain.TimeRange{env.Range()}, got)
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		busy := []domain.TimeRange{rng(14, 0, 15, 0), rng(10, 0, 11, 0)}
		_ = ComputeAvailability(busy, env, buffer)
		assert.Equal(t, []domain.TimeRange{rng(14, 0, 15, 0), rng(10, 0, 11, 0)}, busy)
	})
}

func TestFormatWindows(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// 11:00 UTC летом = 12:00 по Лондону
	windows := FormatWindows([]domain.TimeRange{rng(11, 0, 12, 30)}, loc)
	assert.Equal(t, []domain.DisplayWindow{{Start: "12:00", End: "13:30"}}, windows)
}

func randomRanges(r *rand.Rand, n int) []domain.TimeRange {
	ranges := make([]domain.TimeRange, n)
	for i := range ranges {
		// события от 07:00 до 22:00 с шагом 5 минут, чтобы часть торчала за рабочий день
		startMin := 7*60 + r.Intn(15*60/5)*5
		length := r.Intn(24) * 5
		start := at(0, 0).Add(time.Duration(startMin) * time.Minute)
		ranges[i] = domain.TimeRange{Start: start, End: start.Add(time.Duration(length) * time.Minute)}
	}
	SortByStart(ranges)
	return ranges
}

func TestMergeOverlapping_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		in := randomRanges(r, r.Intn(12))
		merged := MergeOverlapping(in)

		assert.Equal(t, merged, MergeOverlapping(merged), "merge must be idempotent")

		for j := 1; j < len(merged); j++ {
			assert.True(t, merged[j-1].End.Before(merged[j].Start),
				"ranges must be ordered and neither overlap nor touch: %v %v", merged[j-1], merged[j])
		}
	}
}

func TestInvert_ComplementsMerge(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	env := workday()

	for i := 0; i < 500; i++ {
		merged := MergeOverlapping(randomRanges(r, r.Intn(12)))
		free := Invert(merged, env)

		pieces := make([]domain.TimeRange, 0, len(merged)+len(free))
		for _, busy := range merged {
			if clipped, ok := Clip(busy, env); ok {
				pieces = append(pieces, clipped)
			}
		}
		pieces = append(pieces, free...)
		SortByStart(pieces)

		// свободные и занятые куски вместе покрывают рабочий день без дыр и наложений
		cursor := env.Start
		for _, p := range pieces {
			require.True(t, p.Start.Equal(cursor), "gap or overlap at %s, piece %v", cursor, p)
			cursor = p.End
		}
		require.True(t, cursor.Equal(env.End))

		for _, w := range free {
			assert.True(t, w.Start.Before(w.End), "free window must have positive length")
		}
	}
}

func TestComputeAvailability_BoundaryBuffer(t *testing.T) {
	env := workday()

	free := ComputeAvailability([]domain.TimeRange{rng(9, 0, 9, 30), rng(19, 30, 20, 0)}, env, buffer)

	require.Len(t, free, 1)
	assert.Equal(t, rng(9, 45, 19, 15), free[0])
	for _, w := range free {
		assert.False(t, w.Start.Before(env.Start))
		assert.False(t, w.End.After(env.End))
	}
}
