package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewatch/sentinel/internal/model"
	"github.com/storewatch/sentinel/internal/testutil"
)

func TestWeightDiscrepancy_BeyondToleranceFires(t *testing.T) {
	snap := &model.Snapshot{
		POSTransactions: []model.POSTransaction{
			// Expected 500g, tolerance 10% -> 50g; deviation 100g.
			testutil.POS("2025-08-13T10:00:00", "SCC1", "C001", "S1", 600),
		},
		Catalog: testutil.CatalogOf(testutil.Entry("S1", 500)),
	}

	events, err := WeightDiscrepancy(snap, params())
	require.NoError(t, err)
	require.Len(t, events, 1)

	data := events[0].EventData.(model.WeightDiscrepancy)
	assert.Equal(t, "Weight Discrepancies", data.Name)
	assert.Equal(t, 500.0, data.ExpectedWeight)
	assert.Equal(t, 600.0, data.ActualWeight)
	assert.Equal(t, "S1", data.ProductSKU)
}

func TestWeightDiscrepancy_WithinToleranceSilent(t *testing.T) {
	snap := &model.Snapshot{
		POSTransactions: []model.POSTransaction{
			// Deviation exactly at the 50g limit does not fire.
			testutil.POS("2025-08-13T10:00:00", "SCC1", "C001", "S1", 550),
			testutil.POS("2025-08-13T10:00:01", "SCC1", "C001", "S1", 460),
		},
		Catalog: testutil.CatalogOf(testutil.Entry("S1", 500)),
	}

	events, err := WeightDiscrepancy(snap, params())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWeightDiscrepancy_UnknownSKUExcluded(t *testing.T) {
	snap := &model.Snapshot{
		POSTransactions: []model.POSTransaction{
			testutil.POS("2025-08-13T10:00:00", "SCC1", "C001", "UNLISTED", 9000),
		},
		Catalog: testutil.CatalogOf(testutil.Entry("S1", 500)),
	}

	// Catalog miss is join semantics, not an error.
	events, err := WeightDiscrepancy(snap, params())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWeightDiscrepancy_EmptyCatalogSilent(t *testing.T) {
	snap := &model.Snapshot{
		POSTransactions: []model.POSTransaction{
			testutil.POS("2025-08-13T10:00:00", "SCC1", "C001", "S1", 600),
		},
	}

	events, err := WeightDiscrepancy(snap, params())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWeightDiscrepancy_MalformedTimestampOnlyForJoinedRows(t *testing.T) {
	// The malformed record never joins the catalog, so the rule never
	// parses its timestamp and still succeeds.
	snap := &model.Snapshot{
		POSTransactions: []model.POSTransaction{
			testutil.POS("garbage", "SCC1", "C001", "UNLISTED", 100),
			testutil.POS("2025-08-13T10:00:00", "SCC1", "C001", "S1", 600),
		},
		Catalog: testutil.CatalogOf(testutil.Entry("S1", 500)),
	}

	events, err := WeightDiscrepancy(snap, params())
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// Once the record joins, the malformed timestamp is a hard failure.
	snap.POSTransactions[0].SKU = "S1"
	_, err = WeightDiscrepancy(snap, params())
	require.Error(t, err)
	assert.True(t, IsMalformedTimestamp(err))
}
