package calendarsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/introscheduler/pkg/calendar"
	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/storage"
)

// Monday.
var seedFrom = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, directory.New())
}

func TestEnsureSeededGeneratesWeekdayEvents(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))

	// mgr_003 has no client calendar: primary events only.
	primary, err := svc.BusyIntervals("mgr_003", calendar.SourcePrimary, seedFrom, seedFrom.AddDate(0, 0, 7))
	require.NoError(t, err)
	// 5 weekdays of standups plus team meetings on offsets 0, 2, 4.
	assert.Len(t, primary, 8)

	override, err := svc.BusyIntervals("mgr_003", calendar.SourceOverride, seedFrom, seedFrom.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, override)

	for _, b := range primary {
		day := b.Window.Start.In(time.UTC).Weekday()
		assert.NotEqual(t, time.Saturday, day)
		assert.NotEqual(t, time.Sunday, day)
		assert.Equal(t, "mgr_003", b.OwnerID)
	}
}

func TestEnsureSeededClientCalendar(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))

	override, err := svc.BusyIntervals("mgr_004", calendar.SourceOverride, seedFrom, seedFrom.AddDate(0, 0, 7))
	require.NoError(t, err)
	// Client syncs on offsets 0 and 3, one review on offset 1.
	require.Len(t, override, 3)
	for _, b := range override {
		assert.Equal(t, calendar.SourceOverride, b.Source)
		assert.Contains(t, []string{"Client Sync", "Client Review"}, b.Title)
	}
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))

	primary, err := svc.BusyIntervals("mgr_003", calendar.SourcePrimary, seedFrom, seedFrom.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, primary, 8, "reseeding must not duplicate events")
}

func TestSeedingIsDeterministic(t *testing.T) {
	a := newService(t)
	b := newService(t)
	require.NoError(t, a.EnsureSeeded(seedFrom, 7))
	require.NoError(t, b.EnsureSeeded(seedFrom, 7))

	for _, source := range []calendar.Source{calendar.SourcePrimary, calendar.SourceOverride} {
		busyA, err := a.BusyIntervals("mgr_001", source, seedFrom, seedFrom.AddDate(0, 0, 7))
		require.NoError(t, err)
		busyB, err := b.BusyIntervals("mgr_001", source, seedFrom, seedFrom.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Equal(t, busyA, busyB)
	}
}

func TestBusyIntervalsRespectsRange(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))

	// A window covering only the first day.
	dayEnd := seedFrom.AddDate(0, 0, 1)
	primary, err := svc.BusyIntervals("mgr_003", calendar.SourcePrimary, seedFrom, dayEnd)
	require.NoError(t, err)
	require.NotEmpty(t, primary)
	for _, b := range primary {
		assert.True(t, b.Window.Start.Before(dayEnd))
		assert.True(t, b.Window.End.After(seedFrom))
	}
}

func TestBusyCalendarsReturnsBothSources(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.EnsureSeeded(seedFrom, 7))

	primary, override, err := svc.BusyCalendars("mgr_001", seedFrom, seedFrom.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.NotEmpty(t, primary)
	assert.NotEmpty(t, override)
	for _, b := range primary {
		assert.Equal(t, calendar.SourcePrimary, b.Source)
	}
	for _, b := range override {
		assert.Equal(t, calendar.SourceOverride, b.Source)
	}
}
