package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewatch/sentinel/internal/model"
	"github.com/storewatch/sentinel/internal/testutil"
)

func TestSystemDowntime_GapBeyondThresholdFires(t *testing.T) {
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
			testutil.Queue("2025-08-13T10:03:00", "SCC1", 1, 10),
		},
	}

	events, err := SystemDowntime(snap, params())
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "2025-08-13T10:03:00", events[0].Timestamp)
	data := events[0].EventData.(model.SystemCrash)
	assert.Equal(t, "Unexpected Systems Crash", data.Name)
	assert.Equal(t, "SCC1", data.StationID)
	assert.Equal(t, 180, data.DurationSeconds)
}

func TestSystemDowntime_GapAtThresholdSilent(t *testing.T) {
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
			testutil.Queue("2025-08-13T10:02:00", "SCC1", 1, 10),
		},
	}

	events, err := SystemDowntime(snap, params())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSystemDowntime_GapsArePerStation(t *testing.T) {
	// Interleaved stations: each station's own cadence is fine, only
	// consecutive same-station gaps count.
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
			testutil.Queue("2025-08-13T10:01:00", "SCC2", 1, 10),
			testutil.Queue("2025-08-13T10:01:30", "SCC1", 1, 10),
			testutil.Queue("2025-08-13T10:06:00", "SCC2", 1, 10),
		},
	}

	events, err := SystemDowntime(snap, params())
	require.NoError(t, err)
	require.Len(t, events, 1)
	data := events[0].EventData.(model.SystemCrash)
	assert.Equal(t, "SCC2", data.StationID)
	assert.Equal(t, 300, data.DurationSeconds)
}

func TestSystemDowntime_FirstSamplePerStationNeverFires(t *testing.T) {
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
		},
	}

	events, err := SystemDowntime(snap, params())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSystemDowntime_UnsortedInputHandled(t *testing.T) {
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:03:00", "SCC1", 1, 10),
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
		},
	}

	events, err := SystemDowntime(snap, params())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 180, events[0].EventData.(model.SystemCrash).DurationSeconds)
}

func TestSystemDowntime_MalformedTimestamp(t *testing.T) {
	snap := &model.Snapshot{
		QueueMonitoring: []model.QueueSample{
			testutil.Queue("2025-08-13T10:00:00", "SCC1", 1, 10),
			testutil.Queue("later", "SCC1", 1, 10),
		},
	}

	_, err := SystemDowntime(snap, params())
	require.Error(t, err)

	var re *RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, model.EventSystemCrash, re.Rule)
	assert.Equal(t, 1, re.Record)
}
