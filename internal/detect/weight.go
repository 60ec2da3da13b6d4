package detect

import (
	"math"

	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// WeightDiscrepancy flags transactions whose measured weight deviates
// from the catalog's expected weight by more than the configured
// relative tolerance (E003).
//
// The join against the catalog is inner: a transaction whose SKU has no
// catalog entry is silently excluded, not an error. Both weights are in
// grams; the adapter normalizes catalog weights according to the
// configured unit before the snapshot reaches this rule.
func WeightDiscrepancy(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	if len(snap.POSTransactions) == 0 || len(snap.Catalog) == 0 {
		return nil, nil
	}

	var events []model.Event
	for i, txn := range snap.POSTransactions {
		entry, ok := snap.Catalog[txn.SKU]
		if !ok {
			continue
		}
		at, err := model.ParseTimestamp(txn.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventWeightDiscrepancy, model.StreamPOSTransactions, i, err)
		}
		if math.Abs(txn.WeightG-entry.ExpectedWeightG) <= entry.ExpectedWeightG*params.WeightTolerance {
			continue
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(at),
			EventID:   model.EventWeightDiscrepancy,
			EventData: model.WeightDiscrepancy{
				Name:           "Weight Discrepancies",
				StationID:      txn.StationID,
				CustomerID:     txn.CustomerID,
				ProductSKU:     txn.SKU,
				ExpectedWeight: entry.ExpectedWeightG,
				ActualWeight:   txn.WeightG,
			},
		})
	}
	return events, nil
}
