package detect

import (
	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// LongQueue flags queue samples with too many waiting customers (E005).
//
// Stateless per-record threshold check with no windowing: every
// qualifying sample produces exactly one event. A count equal to the
// threshold does not fire; threshold+1 does. Every sample's timestamp
// must parse, below-threshold ones included; one malformed record fails
// the whole rule.
func LongQueue(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	var events []model.Event
	for i, sample := range snap.QueueMonitoring {
		at, err := model.ParseTimestamp(sample.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventLongQueue, model.StreamQueueMonitoring, i, err)
		}
		if sample.CustomerCount <= params.QueueLengthThreshold {
			continue
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(at),
			EventID:   model.EventLongQueue,
			EventData: model.LongQueue{
				Name:           "Long Queue Length",
				StationID:      sample.StationID,
				NumOfCustomers: sample.CustomerCount,
			},
		})
	}
	return events, nil
}

// LongWait flags queue samples whose average dwell time exceeds the
// configured threshold (E006). Same non-windowed semantics as LongQueue.
func LongWait(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	threshold := float64(params.DwellTimeThresholdSeconds)

	var events []model.Event
	for i, sample := range snap.QueueMonitoring {
		at, err := model.ParseTimestamp(sample.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventLongWait, model.StreamQueueMonitoring, i, err)
		}
		if sample.AverageDwellTime <= threshold {
			continue
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(at),
			EventID:   model.EventLongWait,
			EventData: model.LongWait{
				Name:            "Long Wait Time",
				StationID:       sample.StationID,
				WaitTimeSeconds: int(sample.AverageDwellTime),
			},
		})
	}
	return events, nil
}
