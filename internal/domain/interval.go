package domain

import (
	"iter"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns [start, start+d).
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

func (i Interval) Contains(other Interval) bool {
	return ContainsInterval(i.Start, i.End, other.Start, other.End)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ContainsInterval reports whether [candStart, candEnd) lies within [outerStart, outerEnd).
func ContainsInterval(outerStart, outerEnd, candStart, candEnd time.Time) bool {
	return !candStart.Before(outerStart) && !candEnd.After(outerEnd)
}

// OverlapsAny reports whether candidate overlaps at least one of busy.
func OverlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// DayBounds returns [00:00, next 00:00) of the calendar day of date in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// CandidateStarts yields start times from max(block.Start, day.Start) advancing by step
// while [start, start+duration) stays inside both block and day.
// The sequence is lazy and can be ranged over any number of times.
func CandidateStarts(block, day Interval, step, duration time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step <= 0 || duration <= 0 {
			return
		}

		start := block.Start
		if day.Start.After(start) {
			start = day.Start
		}

		for ; ; start = start.Add(step) {
			end := start.Add(duration)
			if end.After(block.End) || end.After(day.End) {
				return
			}
			if !yield(start) {
				return
			}
		}
	}
}
