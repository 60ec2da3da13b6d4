package detect

import (
	"sort"
	"time"

	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// InventoryDiscrepancy reconciles inventory snapshots against POS sales
// (E007).
//
// For each SKU the snapshots are ordered by time and every consecutive
// pair yields an observed drop (previous count minus current count).
// Independently, the rule counts POS transactions for that SKU in the
// half-open interval (previous, current]: a sale exactly on a snapshot
// boundary belongs to the later interval. A mismatch between drop and
// sales becomes an event carrying the transaction-implied expected
// inventory and the observed one.
//
// Output order is SKU ascending, then snapshot time, which keeps runs
// byte-identical regardless of map iteration order.
func InventoryDiscrepancy(snap *model.Snapshot, _ config.Detection) ([]model.Event, error) {
	if len(snap.InventorySnapshots) == 0 || len(snap.POSTransactions) == 0 {
		return nil, nil
	}

	type observation struct {
		at    time.Time
		count int
	}
	bySKU := make(map[string][]observation)
	for i, s := range snap.InventorySnapshots {
		at, err := model.ParseTimestamp(s.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventInventoryDiscrepancy, model.StreamInventorySnapshots, i, err)
		}
		for sku, count := range s.Counts {
			bySKU[sku] = append(bySKU[sku], observation{at: at, count: count})
		}
	}

	sales, err := buildSKUTimes(model.EventInventoryDiscrepancy, snap.POSTransactions)
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(bySKU))
	for sku := range bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var events []model.Event
	for _, sku := range skus {
		obs := bySKU[sku]
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].at.Before(obs[j].at) })

		for i := 1; i < len(obs); i++ {
			prev, cur := obs[i-1], obs[i]
			drop := prev.count - cur.count
			sold := sales.countBetween(sku, prev.at, cur.at)
			if drop == sold {
				continue
			}
			events = append(events, model.Event{
				Timestamp: model.FormatTimestamp(cur.at),
				EventID:   model.EventInventoryDiscrepancy,
				EventData: model.InventoryDiscrepancy{
					Name:              "Inventory Discrepancy",
					SKU:               sku,
					ExpectedInventory: prev.count - sold,
					ActualInventory:   cur.count,
				},
			})
		}
	}
	return events, nil
}
