package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/testutil"
)

func TestStore_StartTimerStopsPrevious(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	store := testutil.SetupStoreAt(t, clock)

	first := store.StartTimer("first task", dec("50"), "", "")
	clock.Advance(30 * time.Minute)
	second := store.StartTimer("second task", dec("60"), "", "")

	entries := store.TimeEntries()
	require.Len(t, entries, 2)

	running := 0
	for _, te := range entries {
		if te.IsRunning {
			running++
		}
		if te.ID == first.ID {
			require.NotNil(t, te.EndTime, "first entry was stopped before the second began")
			assert.False(t, te.IsRunning)
			assert.Equal(t, 30*time.Minute, te.EndTime.Sub(te.StartTime))
		}
	}
	assert.Equal(t, 1, running, "at most one entry runs at a time")

	active, ok := store.ActiveEntry()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestStore_StopTimer(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	store := testutil.SetupStoreAt(t, clock)

	t.Run("no-op when idle", func(t *testing.T) {
		_, ok := store.StopTimer()
		assert.False(t, ok)
	})

	t.Run("stops the running entry", func(t *testing.T) {
		store.StartTimer("work", dec("50"), "", "")
		clock.Advance(time.Hour)

		stopped, ok := store.StopTimer()
		require.True(t, ok)
		require.NotNil(t, stopped.EndTime)
		assert.Equal(t, time.Hour, stopped.EndTime.Sub(stopped.StartTime))

		_, stillRunning := store.ActiveEntry()
		assert.False(t, stillRunning)
	})
}

func TestStore_DeleteActiveEntryStopsFirst(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	store := testutil.SetupStoreAt(t, clock)

	te := store.StartTimer("work", dec("50"), "", "")
	require.True(t, store.DeleteTimeEntry(te.ID))

	assert.Empty(t, store.TimeEntries())
	_, running := store.ActiveEntry()
	assert.False(t, running)
}

func TestStore_UpdateTimeEntryTracksActive(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	store := testutil.SetupStoreAt(t, clock)

	te := store.StartTimer("work", dec("50"), "", "")

	te.IsRunning = false
	end := clock.Now()
	te.EndTime = &end
	require.True(t, store.UpdateTimeEntry(te))

	_, running := store.ActiveEntry()
	assert.False(t, running, "an entry updated to stopped clears the active reference")
}

func TestLineItemsFromEntries(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	entry := func(project, description string, hours int64, rate string) model.TimeEntry {
		start := now.Add(time.Duration(-hours) * time.Hour)
		end := now
		return model.TimeEntry{
			StartTime:   start,
			EndTime:     &end,
			HourlyRate:  dec(rate),
			ProjectName: project,
			Description: description,
		}
	}

	t.Run("groups by project with mean rate", func(t *testing.T) {
		items := ledger.LineItemsFromEntries([]model.TimeEntry{
			entry("Acme", "design", 2, "50"),
			entry("Acme", "build", 3, "70"),
		}, now)

		require.Len(t, items, 1)
		assert.Equal(t, "Acme", items[0].Description)
		assert.True(t, items[0].Quantity.Equal(dec("5")), "quantity = %s", items[0].Quantity)
		// Arithmetic mean of the group's rates, not a weighted average.
		assert.True(t, items[0].UnitPrice.Equal(dec("60")), "unit price = %s", items[0].UnitPrice)
	})

	t.Run("falls back to description then label", func(t *testing.T) {
		items := ledger.LineItemsFromEntries([]model.TimeEntry{
			entry("", "support call", 1, "40"),
			entry("", "", 1, "40"),
		}, now)

		require.Len(t, items, 2)
		descriptions := []string{items[0].Description, items[1].Description}
		assert.Contains(t, descriptions, "support call")
		assert.Contains(t, descriptions, "Time entry")
	})

	t.Run("separate projects yield separate items", func(t *testing.T) {
		items := ledger.LineItemsFromEntries([]model.TimeEntry{
			entry("Acme", "a", 1, "50"),
			entry("Beta", "b", 2, "80"),
		}, now)

		require.Len(t, items, 2)
	})
}
