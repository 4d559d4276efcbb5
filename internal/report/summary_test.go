package report

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenner/invtrack/internal/db"
	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// seedItem creates an item in the given location with the given cost (empty
// string means no cost recorded).
func seedItem(t *testing.T, database *sql.DB, name string, locationID, areaID int64, cost string, refs summaryRefs) {
	t.Helper()

	item := &model.Item{
		Name:           name,
		StatusID:       refs.statusID,
		LocationID:     locationID,
		AreaID:         areaID,
		ManufacturerID: refs.mfgID,
		Qty:            1,
		ApproverID:     refs.approverID,
		InsertedBy:     refs.userID,
	}
	if cost != "" {
		d, err := decimal.NewFromString(cost)
		require.NoError(t, err)
		item.TotalCost = &d
	}

	_, err := store.CreateItem(context.Background(), database, item)
	require.NoError(t, err)
}

type summaryRefs struct {
	userID     int64
	statusID   int64
	mfgID      int64
	approverID int64
}

func seedSummaryRefs(t *testing.T, database *sql.DB) summaryRefs {
	t.Helper()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, database, "jdoe", "hash", "Jane", "Doe", "jdoe@example.com", "", true)
	require.NoError(t, err)
	status, err := store.CreateReference(ctx, database, model.KindStatus, "Deployed")
	require.NoError(t, err)
	mfg, err := store.CreateReference(ctx, database, model.KindManufacturer, "Dell")
	require.NoError(t, err)
	approver, err := store.CreateReference(ctx, database, model.KindApprover, "CTO")
	require.NoError(t, err)

	return summaryRefs{userID: user.ID, statusID: status.ID, mfgID: mfg.ID, approverID: approver.ID}
}

func TestByLocationEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	summaries, err := ByLocation(context.Background(), database)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestByLocationGroupsAndSums(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	refs := seedSummaryRefs(t, database)

	locA, err := store.CreateReference(ctx, database, model.KindLocation, "Annex")
	require.NoError(t, err)
	areaA, err := store.CreateArea(ctx, database, "Floor 1", locA.ID)
	require.NoError(t, err)
	locB, err := store.CreateReference(ctx, database, model.KindLocation, "Warehouse")
	require.NoError(t, err)
	areaB, err := store.CreateArea(ctx, database, "Dock", locB.ID)
	require.NoError(t, err)

	seedItem(t, database, "Laptop", locA.ID, areaA.ID, "10.00", refs)
	seedItem(t, database, "Dock Station", locA.ID, areaA.ID, "5.50", refs)
	seedItem(t, database, "Pallet Jack", locB.ID, areaB.ID, "", refs)

	summaries, err := ByLocation(ctx, database)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Annex", summaries[0].Location)
	assert.Equal(t, 2, summaries[0].ItemCount)
	assert.Equal(t, "15.50", summaries[0].TotalCost.StringFixed(2))

	assert.Equal(t, "Warehouse", summaries[1].Location)
	assert.Equal(t, 1, summaries[1].ItemCount)
	assert.Equal(t, "0.00", summaries[1].TotalCost.StringFixed(2))
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"999.999", "$1,000.00"},
		{"-1234.5", "-$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"0.01", "$0.01"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FormatUSD(d), "FormatUSD(%s)", tt.in)
	}
}

func TestSeries(t *testing.T) {
	summaries := []LocationSummary{
		{Location: "Annex", ItemCount: 2},
		{Location: "Warehouse", ItemCount: 1},
	}

	points := Series(summaries)
	require.Len(t, points, 2)

	assert.Equal(t, "Annex", points[0].Label)
	assert.Equal(t, 2, points[0].Value)
	assert.InDelta(t, 66.7, points[0].Percent, 0.001)

	assert.Equal(t, "Warehouse", points[1].Label)
	assert.InDelta(t, 33.3, points[1].Percent, 0.001)
}

func TestSeriesEmpty(t *testing.T) {
	assert.Nil(t, Series(nil))
	assert.Nil(t, Series([]LocationSummary{{Location: "Empty", ItemCount: 0}}))
}
