package detect

import (
	"sort"
	"time"

	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/model"
)

// SystemDowntime detects stations that went silent (E004).
//
// The queue-monitoring stream doubles as the per-station heartbeat: its
// samples are grouped by station, sorted by time, and every consecutive
// gap larger than the configured threshold becomes an event stamped at
// the sample that ended the gap, with the gap duration rounded down to
// whole seconds. The first sample per station has no predecessor and
// cannot fire.
func SystemDowntime(snap *model.Snapshot, params config.Detection) ([]model.Event, error) {
	if len(snap.QueueMonitoring) == 0 {
		return nil, nil
	}

	type beat struct {
		at      time.Time
		station string
	}
	beats := make([]beat, 0, len(snap.QueueMonitoring))
	for i, sample := range snap.QueueMonitoring {
		at, err := model.ParseTimestamp(sample.Timestamp)
		if err != nil {
			return nil, newTimestampError(model.EventSystemCrash, model.StreamQueueMonitoring, i, err)
		}
		beats = append(beats, beat{at: at, station: sample.StationID})
	}
	sort.SliceStable(beats, func(i, j int) bool {
		if beats[i].station != beats[j].station {
			return beats[i].station < beats[j].station
		}
		return beats[i].at.Before(beats[j].at)
	})

	threshold := params.HeartbeatGap()

	var events []model.Event
	for i := 1; i < len(beats); i++ {
		if beats[i].station != beats[i-1].station {
			continue
		}
		gap := beats[i].at.Sub(beats[i-1].at)
		if gap <= threshold {
			continue
		}
		events = append(events, model.Event{
			Timestamp: model.FormatTimestamp(beats[i].at),
			EventID:   model.EventSystemCrash,
			EventData: model.SystemCrash{
				Name:            "Unexpected Systems Crash",
				StationID:       beats[i].station,
				DurationSeconds: int(gap / time.Second),
			},
		})
	}
	return events, nil
}
