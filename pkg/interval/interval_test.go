package interval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/introscheduler/pkg/interval"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		iv, err := interval.New(at(9, 0), at(10, 0))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, iv.Duration())
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := interval.New(at(9, 0), at(9, 0))
		assert.Error(t, err)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := interval.New(at(10, 0), at(9, 0))
		assert.Error(t, err)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		kolkata, err := time.LoadLocation("Asia/Kolkata")
		require.NoError(t, err)

		local := time.Date(2025, time.March, 10, 14, 30, 0, 0, kolkata)
		iv, err := interval.New(local, local.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, time.UTC, iv.Start.Location())
		assert.True(t, iv.Start.Equal(at(9, 0)))
	})
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b interval.Interval
		want bool
	}{
		{"partial overlap", interval.MustNew(at(9, 0), at(10, 0)), interval.MustNew(at(9, 30), at(11, 0)), true},
		{"containment", interval.MustNew(at(9, 0), at(12, 0)), interval.MustNew(at(10, 0), at(11, 0)), true},
		{"identical", interval.MustNew(at(9, 0), at(10, 0)), interval.MustNew(at(9, 0), at(10, 0)), true},
		{"touching endpoints", interval.MustNew(at(9, 0), at(10, 0)), interval.MustNew(at(10, 0), at(11, 0)), false},
		{"disjoint", interval.MustNew(at(9, 0), at(10, 0)), interval.MustNew(at(11, 0), at(12, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestMerge(t *testing.T) {
	t.Run("overlapping", func(t *testing.T) {
		a := interval.MustNew(at(9, 0), at(10, 0))
		b := interval.MustNew(at(9, 30), at(10, 30))

		merged, err := a.Merge(b)
		require.NoError(t, err)
		assert.Equal(t, interval.MustNew(at(9, 0), at(10, 30)), merged)
	})

	t.Run("adjacent", func(t *testing.T) {
		a := interval.MustNew(at(9, 0), at(10, 0))
		b := interval.MustNew(at(10, 0), at(11, 0))

		merged, err := a.Merge(b)
		require.NoError(t, err)
		assert.Equal(t, interval.MustNew(at(9, 0), at(11, 0)), merged)
	})

	t.Run("disjoint", func(t *testing.T) {
		a := interval.MustNew(at(9, 0), at(10, 0))
		b := interval.MustNew(at(11, 0), at(12, 0))

		_, err := a.Merge(b)
		assert.Error(t, err)
	})
}

func TestIntersect(t *testing.T) {
	t.Run("overlap", func(t *testing.T) {
		a := interval.MustNew(at(9, 0), at(10, 0))
		b := interval.MustNew(at(9, 30), at(11, 0))

		got, ok := a.Intersect(b)
		require.True(t, ok)
		assert.Equal(t, interval.MustNew(at(9, 30), at(10, 0)), got)
	})

	t.Run("no overlap", func(t *testing.T) {
		a := interval.MustNew(at(9, 0), at(10, 0))
		b := interval.MustNew(at(10, 0), at(11, 0))

		_, ok := a.Intersect(b)
		assert.False(t, ok)
	})
}

func TestSubtract(t *testing.T) {
	day := interval.MustNew(at(9, 0), at(18, 0))

	tests := []struct {
		name string
		busy []interval.Interval
		want []interval.Interval
	}{
		{
			name: "no busy time",
			busy: nil,
			want: []interval.Interval{day},
		},
		{
			name: "busy in the middle",
			busy: []interval.Interval{interval.MustNew(at(12, 0), at(13, 0))},
			want: []interval.Interval{
				interval.MustNew(at(9, 0), at(12, 0)),
				interval.MustNew(at(13, 0), at(18, 0)),
			},
		},
		{
			name: "busy at the edges",
			busy: []interval.Interval{
				interval.MustNew(at(9, 0), at(9, 30)),
				interval.MustNew(at(17, 0), at(18, 0)),
			},
			want: []interval.Interval{interval.MustNew(at(9, 30), at(17, 0))},
		},
		{
			name: "busy covers everything",
			busy: []interval.Interval{interval.MustNew(at(8, 0), at(19, 0))},
			want: []interval.Interval{},
		},
		{
			name: "busy outside the window",
			busy: []interval.Interval{
				interval.MustNew(at(7, 0), at(8, 0)),
				interval.MustNew(at(19, 0), at(20, 0)),
			},
			want: []interval.Interval{day},
		},
		{
			name: "busy overlapping window start",
			busy: []interval.Interval{interval.MustNew(at(8, 0), at(10, 0))},
			want: []interval.Interval{interval.MustNew(at(10, 0), at(18, 0))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interval.Subtract(day, tt.busy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubtractComplementarity(t *testing.T) {
	// free plus busy must exactly cover the window, with no overlap.
	window := interval.MustNew(at(9, 0), at(18, 0))
	busy := []interval.Interval{
		interval.MustNew(at(9, 30), at(10, 0)),
		interval.MustNew(at(11, 0), at(12, 30)),
		interval.MustNew(at(16, 0), at(17, 0)),
	}

	free := interval.Subtract(window, busy)

	var covered time.Duration
	for _, f := range free {
		covered += f.Duration()
		for _, b := range busy {
			assert.False(t, f.Overlaps(b), "free %s overlaps busy %s", f, b)
		}
	}
	for _, b := range busy {
		covered += b.Duration()
	}
	assert.Equal(t, window.Duration(), covered)
}

func TestSortByStart(t *testing.T) {
	ivs := []interval.Interval{
		interval.MustNew(at(14, 0), at(15, 0)),
		interval.MustNew(at(9, 0), at(10, 0)),
		interval.MustNew(at(9, 0), at(9, 30)),
	}

	interval.SortByStart(ivs)

	assert.Equal(t, []interval.Interval{
		interval.MustNew(at(9, 0), at(9, 30)),
		interval.MustNew(at(9, 0), at(10, 0)),
		interval.MustNew(at(14, 0), at(15, 0)),
	}, ivs)
}
