package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewatch/sentinel/internal/model"
)

func sampleEvents() []model.Event {
	return []model.Event{
		{
			Timestamp: "2025-08-13T10:00:00",
			EventID:   model.EventLongQueue,
			EventData: model.LongQueue{Name: "Long Queue Length", StationID: "SCC1", NumOfCustomers: 6},
		},
		{
			Timestamp: "2025-08-13T10:05:00",
			EventID:   model.EventInventoryDiscrepancy,
			EventData: model.InventoryDiscrepancy{Name: "Inventory Discrepancy", SKU: "SKU1", ExpectedInventory: 9, ActualInventory: 8},
		},
	}
}

func TestWrite_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEvents()))

	want := `{"timestamp":"2025-08-13T10:00:00","event_id":"E005","event_data":{"event_name":"Long Queue Length","station_id":"SCC1","num_of_customers":6}}
{"timestamp":"2025-08-13T10:05:00","event_id":"E007","event_data":{"event_name":"Inventory Discrepancy","SKU":"SKU1","Expected_Inventory":9,"Actual_Inventory":8}}
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestWriteFile_ReplacesDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, WriteFile(path, sampleEvents()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestWriteFile_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(dir, "events.jsonl"), sampleEvents()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "events.jsonl", entries[0].Name())
}

func TestWriteFile_MissingDirFailsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "events.jsonl")
	err := WriteFile(path, sampleEvents())
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
