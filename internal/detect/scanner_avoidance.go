package detect

import (
	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// checkoutLocation is the RFID location that marks a read as eligible
// for scanner-avoidance evaluation. Reads at entrance/exit antennas are
// expected to have no matching scan.
const checkoutLocation = "Checkout"

// unknownCustomer is reported when no POS transaction follows the RFID
// read at the same station, so no customer can be attributed.
const unknownCustomer = "unknown"

// ScannerAvoidance detects items seen by an RFID antenna at a checkout
// that were never scanned (E001).
//
// For every checkout read with a resolved SKU, a POS transaction at the
// same station with the same SKU clears the item if its timestamp falls
// inside [read, read+window], inclusive on both bounds. Without one, the
// read becomes an event attributed to the customer of the first POS
// transaction at that station strictly after the read, regardless of
// SKU, or to "unknown" when none follows.
//
// Every resolved read's timestamp must parse, non-checkout reads
// included; only reads with no resolved SKU are exempt.
func ScannerAvoidance(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	if len(snap.RFIDReadings) == 0 || len(snap.POSTransactions) == 0 {
		return nil, nil
	}

	ix, err := buildPOSIndex(model.EventScannerAvoidance, snap.POSTransactions)
	if err != nil {
		return nil, err
	}
	window := params.ScanWindow()

	var events []model.Event
	for i, read := range snap.RFIDReadings {
		if read.SKU == "" {
			continue
		}
		at, err := model.ParseTimestamp(read.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventScannerAvoidance, model.StreamRFIDReadings, i, err)
		}
		if read.Location != checkoutLocation {
			continue
		}

		scanned := false
		for _, cand := range ix.window(read.StationID, at, at.Add(window)) {
			if cand.txn.SKU == read.SKU {
				scanned = true
				break
			}
		}
		if scanned {
			continue
		}

		customer := unknownCustomer
		if next, ok := ix.firstAfter(read.StationID, at); ok {
			customer = next.txn.CustomerID
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(at),
			EventID:   model.EventScannerAvoidance,
			EventData: model.ScannerAvoidance{
				Name:       "Scanner Avoidance",
				StationID:  read.StationID,
				CustomerID: customer,
				ProductSKU: read.SKU,
			},
		})
	}
	return events, nil
}
