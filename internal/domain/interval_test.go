package domain

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"partial", "10:00", "11:00", "10:30", "11:30", true},
		{"contained", "10:00", "12:00", "10:30", "11:00", true},
		{"touching end", "10:00", "11:00", "11:00", "12:00", false},
		{"touching start", "11:00", "12:00", "10:00", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Overlaps(at(tt.bStart), at(tt.bEnd), at(tt.aStart), at(tt.aEnd)), "symmetry")
		})
	}
}

func TestOverlaps_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := at("00:00")
	randomInterval := func() Interval {
		start := base.Add(time.Duration(rng.Intn(48)) * 15 * time.Minute)
		return NewInterval(start, time.Duration(1+rng.Intn(8))*15*time.Minute)
	}

	for i := 0; i < 500; i++ {
		a, b := randomInterval(), randomInterval()
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))

		touching := Interval{Start: a.End, End: a.End.Add(b.Duration())}
		assert.False(t, a.Overlaps(touching))
		assert.True(t, a.Overlaps(a))
	}
}

func TestContainsInterval(t *testing.T) {
	assert.True(t, ContainsInterval(at("09:00"), at("12:00"), at("09:00"), at("12:00")))
	assert.True(t, ContainsInterval(at("09:00"), at("12:00"), at("10:00"), at("11:00")))
	assert.False(t, ContainsInterval(at("09:00"), at("12:00"), at("08:45"), at("09:45")))
	assert.False(t, ContainsInterval(at("09:00"), at("12:00"), at("11:30"), at("12:30")))
}

func collect(seq func(func(time.Time) bool)) []string {
	var out []string
	for s := range seq {
		out = append(out, s.Format(TimeFormat))
	}
	return out
}

func TestCandidateStarts_BlockAndDay(t *testing.T) {
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}
	block := Interval{Start: at("09:00"), End: at("12:00")}

	got := collect(CandidateStarts(block, day, 15*time.Minute, 60*time.Minute))

	want := []string{
		"09:00", "09:15", "09:30", "09:45", "10:00", "10:15",
		"10:30", "10:45", "11:00",
	}
	assert.Equal(t, want, got)
}

func TestCandidateStarts_ClippedByDay(t *testing.T) {
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}
	block := Interval{Start: at("22:00"), End: at("23:00").AddDate(0, 0, 1)}

	got := collect(CandidateStarts(block, day, 30*time.Minute, 60*time.Minute))

	assert.Equal(t, []string{"22:00", "22:30", "23:00"}, got)
}

func TestCandidateStarts_BlockStartedYesterday(t *testing.T) {
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}
	block := Interval{Start: at("22:00").AddDate(0, 0, -1), End: at("01:00")}

	got := collect(CandidateStarts(block, day, 30*time.Minute, 30*time.Minute))

	assert.Equal(t, []string{"00:00", "00:30"}, got)
}

func TestCandidateStarts_Restartable(t *testing.T) {
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}
	seq := CandidateStarts(Interval{Start: at("09:00"), End: at("10:00")}, day, 20*time.Minute, 20*time.Minute)

	first := collect(seq)
	second := collect(seq)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	for s := range seq {
		assert.Equal(t, "09:00", s.Format(TimeFormat))
		break
	}
}

func TestCandidateStarts_Degenerate(t *testing.T) {
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}
	block := Interval{Start: at("09:00"), End: at("09:30")}

	assert.Empty(t, collect(CandidateStarts(block, day, 0, time.Hour)))
	assert.Empty(t, collect(CandidateStarts(block, day, 15*time.Minute, 0)))
	assert.Empty(t, collect(CandidateStarts(block, day, 15*time.Minute, time.Hour)))
}

func TestCandidateStarts_FitInsideBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	day := Interval{Start: at("00:00"), End: at("00:00").AddDate(0, 0, 1)}

	for i := 0; i < 200; i++ {
		start := at("00:00").Add(time.Duration(rng.Intn(96)) * 15 * time.Minute)
		block := NewInterval(start, time.Duration(1+rng.Intn(16))*15*time.Minute)
		step := time.Duration(1+rng.Intn(60)) * time.Minute
		duration := time.Duration(1+rng.Intn(120)) * time.Minute

		var starts []time.Time
		for s := range CandidateStarts(block, day, step, duration) {
			cand := NewInterval(s, duration)
			assert.True(t, block.Contains(cand))
			assert.True(t, day.Contains(cand))
			starts = append(starts, s)
		}
		assert.True(t, slices.IsSortedFunc(starts, func(a, b time.Time) int { return a.Compare(b) }))
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start, end := DayBounds(time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
