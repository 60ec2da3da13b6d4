package detect

import (
	"sort"
	"time"

	"github.com/storewatch/sentinel/internal/model"
)

// stampedTxn is one POS transaction with its parsed timestamp.
type stampedTxn struct {
	at  time.Time
	txn model.POSTransaction
}

// posIndex groups POS transactions per station, time-ascending. Probes
// are binary searches; equal timestamps keep their input order so every
// lookup is deterministic.
type posIndex map[string][]stampedTxn

// buildPOSIndex parses and indexes all POS transactions for rule.
// The first unparsable timestamp fails the whole build.
func buildPOSIndex(rule model.EventID, txns []model.POSTransaction) (posIndex, error) {
	ix := make(posIndex)
	for i, txn := range txns {
		at, err := model.ParseTimestamp(txn.Timestamp)
		if err != nil {
			return nil, newTimestampError(rule, model.StreamPOSTransactions, i, err)
		}
		ix[txn.StationID] = append(ix[txn.StationID], stampedTxn{at: at, txn: txn})
	}
	for station := range ix {
		entries := ix[station]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].at.Before(entries[j].at)
		})
	}
	return ix, nil
}

// window returns the transactions at station with from <= t <= to,
// inclusive on both bounds.
func (ix posIndex) window(station string, from, to time.Time) []stampedTxn {
	entries := ix[station]
	lo := sort.Search(len(entries), func(i int) bool {
		return !entries[i].at.Before(from)
	})
	hi := sort.Search(len(entries), func(i int) bool {
		return entries[i].at.After(to)
	})
	return entries[lo:hi]
}

// firstAfter returns the earliest transaction at station strictly after t.
func (ix posIndex) firstAfter(station string, t time.Time) (stampedTxn, bool) {
	entries := ix[station]
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].at.After(t)
	})
	if i == len(entries) {
		return stampedTxn{}, false
	}
	return entries[i], true
}

// nearest returns the transaction at station closest in absolute time to
// t, if one lies within tol. On an exact distance tie the earlier
// transaction wins.
func (ix posIndex) nearest(station string, t time.Time, tol time.Duration) (stampedTxn, bool) {
	entries := ix[station]
	if len(entries) == 0 {
		return stampedTxn{}, false
	}

	// First entry at or after t; the candidate before it is the closest
	// earlier one.
	i := sort.Search(len(entries), func(i int) bool {
		return !entries[i].at.Before(t)
	})

	var best stampedTxn
	bestDist := tol + 1
	if i > 0 {
		if d := t.Sub(entries[i-1].at); d <= tol {
			best, bestDist = entries[i-1], d
		}
	}
	if i < len(entries) {
		// Strictly smaller: on a tie the earlier candidate stands.
		if d := entries[i].at.Sub(t); d <= tol && d < bestDist {
			best, bestDist = entries[i], d
		}
	}
	if bestDist > tol {
		return stampedTxn{}, false
	}
	return best, true
}

// skuTimes maps SKU to the sorted timestamps of its POS transactions.
// Used by inventory reconciliation to count sales per snapshot interval
// without rescanning the transaction stream.
type skuTimes map[string][]time.Time

func buildSKUTimes(rule model.EventID, txns []model.POSTransaction) (skuTimes, error) {
	ix := make(skuTimes)
	for i, txn := range txns {
		at, err := model.ParseTimestamp(txn.Timestamp)
		if err != nil {
			return nil, newTimestampError(rule, model.StreamPOSTransactions, i, err)
		}
		ix[txn.SKU] = append(ix[txn.SKU], at)
	}
	for sku := range ix {
		times := ix[sku]
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	}
	return ix, nil
}

// countBetween returns how many transactions for sku fall in the
// half-open interval (from, to]: the earlier boundary is excluded, the
// later one included.
func (ix skuTimes) countBetween(sku string, from, to time.Time) int {
	times := ix[sku]
	lo := sort.Search(len(times), func(i int) bool { return times[i].After(from) })
	hi := sort.Search(len(times), func(i int) bool { return times[i].After(to) })
	return hi - lo
}
