// Package interval implements the half-open time interval arithmetic the
// scheduling engine is built on: overlap and adjacency checks, merging,
// subtraction and intersection of UTC-normalized intervals.
package interval

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End) between two absolute
// instants. Both endpoints are normalized to UTC on construction so that
// intervals built from different source timezones compare correctly.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an interval from two instants. The instants may carry any
// location; they are normalized to UTC. Returns an error if start >= end.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("invalid interval: start %s is not before end %s", start, end)
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// MustNew is New for intervals known to be valid, e.g. in tests and
// deterministic event generation. It panics on invalid input.
func MustNew(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether the two intervals share any instant. Touching
// endpoints do not overlap under half-open semantics.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Adjacent reports whether one interval ends exactly where the other begins.
func (i Interval) Adjacent(other Interval) bool {
	return i.End.Equal(other.Start) || other.End.Equal(i.Start)
}

// Contains reports whether the instant t lies inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Covers reports whether other lies entirely inside i.
func (i Interval) Covers(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Merge combines two overlapping or adjacent intervals into one spanning
// both. Returns an error if the intervals are disjoint.
func (i Interval) Merge(other Interval) (Interval, error) {
	if !i.Overlaps(other) && !i.Adjacent(other) {
		return Interval{}, fmt.Errorf("cannot merge disjoint intervals [%s, %s) and [%s, %s)",
			i.Start, i.End, other.Start, other.End)
	}
	merged := i
	if other.Start.Before(merged.Start) {
		merged.Start = other.Start
	}
	if other.End.After(merged.End) {
		merged.End = other.End
	}
	return merged, nil
}

// Intersect returns the common part of two intervals. The boolean is false
// when the intervals do not overlap.
func (i Interval) Intersect(other Interval) (Interval, bool) {
	if !i.Overlaps(other) {
		return Interval{}, false
	}
	out := i
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out, true
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// Subtract returns the parts of i not covered by any interval in busy.
// The busy set must be sorted by start and non-overlapping, which is the
// contract of calendar.MergeBusy output.
func Subtract(i Interval, busy []Interval) []Interval {
	free := make([]Interval, 0, len(busy)+1)
	cursor := i.Start

	for _, b := range busy {
		if !b.End.After(i.Start) {
			continue
		}
		if !b.Start.Before(i.End) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	if cursor.Before(i.End) {
		free = append(free, Interval{Start: cursor, End: i.End})
	}

	return free
}

// SortByStart sorts intervals in place by start time, then by end time.
func SortByStart(intervals []Interval) {
	sort.Slice(intervals, func(a, b int) bool {
		if intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].End.Before(intervals[b].End)
		}
		return intervals[a].Start.Before(intervals[b].Start)
	})
}
