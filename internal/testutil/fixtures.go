// Package testutil provides snapshot builders shared by detection and
// engine tests. Fixtures keep record construction one-liners so tests
// read as scenarios, not as struct literals.
package testutil

import "github.com/storewatch/sentinel/internal/model"

// POS builds one POS transaction.
func POS(ts, station, customer, sku string, weightG float64) model.POSTransaction {
	return model.POSTransaction{
		Timestamp:  ts,
		StationID:  station,
		CustomerID: customer,
		SKU:        sku,
		WeightG:    weightG,
	}
}

// RFID builds one RFID reading. An empty sku models an unresolved tag.
func RFID(ts, station, location, sku string) model.RFIDReading {
	return model.RFIDReading{
		Timestamp: ts,
		StationID: station,
		Location:  location,
		SKU:       sku,
	}
}

// Vision builds one product-recognition event.
func Vision(ts, station, customer, predicted string) model.Recognition {
	return model.Recognition{
		Timestamp:        ts,
		StationID:        station,
		CustomerID:       customer,
		PredictedProduct: predicted,
	}
}

// Queue builds one queue-monitoring sample.
func Queue(ts, station string, customers int, dwell float64) model.QueueSample {
	return model.QueueSample{
		Timestamp:        ts,
		StationID:        station,
		CustomerCount:    customers,
		AverageDwellTime: dwell,
	}
}

// Inventory builds one inventory snapshot.
func Inventory(ts string, counts map[string]int) model.InventorySnapshot {
	return model.InventorySnapshot{Timestamp: ts, Counts: counts}
}

// CatalogOf builds a catalog from entries. Weights are grams.
func CatalogOf(entries ...model.CatalogEntry) model.Catalog {
	catalog := make(model.Catalog, len(entries))
	for _, e := range entries {
		catalog[e.SKU] = e
	}
	return catalog
}

// Entry builds one catalog entry with its expected weight in grams.
func Entry(sku string, weightG float64) model.CatalogEntry {
	return model.CatalogEntry{SKU: sku, ExpectedWeightG: weightG}
}
