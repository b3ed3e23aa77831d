package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
	"github.com/nadcreations/invoicious/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	snaps, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	defer snaps.Close()

	store := ledger.New(snaps)
	client := model.NewClient("Acme Corp")
	require.NoError(t, store.AddClient(client))

	inv := model.NewInvoice(client)
	inv.LineItems = []model.LineItem{model.NewLineItem("work", dec("2"), dec("50"))}
	store.AddInvoice(inv)

	// A fresh store over the same snapshots sees everything back.
	reloaded := ledger.New(snaps)
	require.Len(t, reloaded.Clients(), 1)
	assert.Equal(t, "Acme Corp", reloaded.Clients()[0].Name)
	require.Len(t, reloaded.Invoices(), 1)
	assert.True(t, reloaded.Invoices()[0].Total().Equal(dec("110")))
}

func TestStore_CorruptSnapshotLoadsEmpty(t *testing.T) {
	snaps, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	defer snaps.Close()

	store := ledger.New(snaps)
	require.NoError(t, store.AddClient(model.NewClient("Acme Corp")))
	inv := model.NewInvoice(model.NewClient("Beta LLC"))
	store.AddInvoice(inv)

	// Corrupt one collection; the others must still load.
	require.NoError(t, snaps.Save(storage.KeyInvoices, []byte("{not json")))

	reloaded := ledger.New(snaps)
	assert.Empty(t, reloaded.Invoices(), "corrupt collection reads back empty")
	assert.Len(t, reloaded.Clients(), 1, "other collections are unaffected")
}

func TestStore_UpdateReportsFound(t *testing.T) {
	store := testutil.SetupStore(t)

	client := model.NewClient("Acme Corp")
	require.NoError(t, store.AddClient(client))

	client.Email = "billing@acme.test"
	assert.True(t, store.UpdateClient(client))

	ghost := model.NewClient("Ghost Inc")
	assert.False(t, store.UpdateClient(ghost), "update of an unknown id is a found=false no-op")

	got, ok := store.GetClient(client.ID)
	require.True(t, ok)
	assert.Equal(t, "billing@acme.test", got.Email)
}

func TestStore_DeleteReportsFound(t *testing.T) {
	store := testutil.SetupStore(t)

	client := model.NewClient("Acme Corp")
	require.NoError(t, store.AddClient(client))

	assert.True(t, store.DeleteClient(client.ID))
	assert.False(t, store.DeleteClient(client.ID), "second delete finds nothing")
	assert.Empty(t, store.Clients())
}

func TestStore_AddClientRequiresName(t *testing.T) {
	store := testutil.SetupStore(t)

	err := store.AddClient(model.NewClient("   "))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNameRequired))

	var userErr *common.UserError
	assert.True(t, errors.As(err, &userErr))
}

func TestStore_EraseAll(t *testing.T) {
	snaps, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	defer snaps.Close()

	store := ledger.New(snaps)
	client := model.NewClient("Acme Corp")
	require.NoError(t, store.AddClient(client))
	store.AddInvoice(model.NewInvoice(client))
	store.AddEstimate(model.NewEstimate(client))
	store.StartTimer("work", dec("50"), "", "")

	b := store.BusinessInfo()
	b.Name = "My Studio"
	store.SetBusinessInfo(b)

	require.NoError(t, store.EraseAll())

	assert.Empty(t, store.Clients())
	assert.Empty(t, store.Invoices())
	assert.Empty(t, store.Estimates())
	assert.Empty(t, store.TimeEntries())
	_, running := store.ActiveEntry()
	assert.False(t, running)
	assert.Equal(t, model.DefaultBusinessInfo(), store.BusinessInfo())

	// The persisted blobs are gone too.
	reloaded := ledger.New(snaps)
	assert.Empty(t, reloaded.Clients())
	assert.Empty(t, reloaded.Invoices())
	assert.Equal(t, model.DefaultBusinessInfo(), reloaded.BusinessInfo())
}

func TestStore_BusinessInfoRoundTrip(t *testing.T) {
	snaps, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	defer snaps.Close()

	store := ledger.New(snaps)
	b := store.BusinessInfo()
	b.Name = "My Studio"
	b.DefaultHourlyRate = dec("120")
	store.SetBusinessInfo(b)

	reloaded := ledger.New(snaps)
	assert.Equal(t, "My Studio", reloaded.BusinessInfo().Name)
	assert.True(t, reloaded.BusinessInfo().DefaultHourlyRate.Equal(dec("120")))
}

func TestStore_RestoresActiveTimerOnLoad(t *testing.T) {
	snaps, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	defer snaps.Close()

	store := ledger.New(snaps)
	started := store.StartTimer("work", dec("50"), "", "")

	reloaded := ledger.New(snaps)
	active, ok := reloaded.ActiveEntry()
	require.True(t, ok, "running entry survives a reload")
	assert.Equal(t, started.ID, active.ID)
}

func TestStore_ClockInjection(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	store := testutil.SetupStoreAt(t, clock)

	assert.Equal(t, clock.Now(), store.Now())
	clock.Advance(time.Hour)
	assert.Equal(t, clock.Now(), store.Now())
}
