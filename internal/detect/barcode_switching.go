package detect

import (
	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// BarcodeSwitching detects scans where the vision system recognized a
// different product than the barcode that was read (E002).
//
// Each vision event is matched to the nearest-in-time POS transaction at
// the same station within the configured tolerance. Nearest means the
// smallest absolute time difference, not the first after; on an exact
// tie the earlier transaction wins. A vision event with no transaction
// inside the tolerance is ambiguous and produces nothing. A match whose
// scanned SKU differs from the prediction becomes an event carrying both
// SKUs.
func BarcodeSwitching(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	if len(snap.ProductRecognition) == 0 || len(snap.POSTransactions) == 0 {
		return nil, nil
	}

	ix, err := buildPOSIndex(model.EventBarcodeSwitching, snap.POSTransactions)
	if err != nil {
		return nil, err
	}
	tol := params.RecognitionTolerance()

	var events []model.Event
	for i, rec := range snap.ProductRecognition {
		at, err := model.ParseTimestamp(rec.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventBarcodeSwitching, model.StreamProductRecognition, i, err)
		}

		match, ok := ix.nearest(rec.StationID, at, tol)
		if !ok || rec.PredictedProduct == "" || match.txn.SKU == "" {
			continue
		}
		if rec.PredictedProduct == match.txn.SKU {
			continue
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(at),
			EventID:   model.EventBarcodeSwitching,
			EventData: model.BarcodeSwitching{
				Name:       "Barcode Switching",
				StationID:  rec.StationID,
				CustomerID: rec.CustomerID,
				ActualSKU:  rec.PredictedProduct,
				ScannedSKU: match.txn.SKU,
			},
		})
	}
	return events, nil
}
