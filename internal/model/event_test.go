package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalLine_FieldOrder(t *testing.T) {
	ev := Event{
		Timestamp: "2025-08-13T10:00:00",
		EventID:   EventScannerAvoidance,
		EventData: ScannerAvoidance{
			Name:       "Scanner Avoidance",
			StationID:  "SCC1",
			CustomerID: "C001",
			ProductSKU: "PRD_001",
		},
	}
	line, err := ev.MarshalLine()
	require.NoError(t, err)
	assert.Equal(t,
		`{"timestamp":"2025-08-13T10:00:00","event_id":"E001","event_data":{"event_name":"Scanner Avoidance","station_id":"SCC1","customer_id":"C001","product_sku":"PRD_001"}}`,
		string(line))
}

func TestEvent_MarshalLine_InventoryKeysKeepCasing(t *testing.T) {
	ev := Event{
		Timestamp: "2025-08-13T11:00:00",
		EventID:   EventInventoryDiscrepancy,
		EventData: InventoryDiscrepancy{
			Name:              "Inventory Discrepancy",
			SKU:               "PRD_002",
			ExpectedInventory: 9,
			ActualInventory:   8,
		},
	}
	line, err := ev.MarshalLine()
	require.NoError(t, err)
	assert.Equal(t,
		`{"timestamp":"2025-08-13T11:00:00","event_id":"E007","event_data":{"event_name":"Inventory Discrepancy","SKU":"PRD_002","Expected_Inventory":9,"Actual_Inventory":8}}`,
		string(line))
}

func TestEvent_MarshalLine_WholeWeightsHaveNoDecimal(t *testing.T) {
	ev := Event{
		Timestamp: "2025-08-13T12:00:00",
		EventID:   EventWeightDiscrepancy,
		EventData: WeightDiscrepancy{
			Name:           "Weight Discrepancies",
			StationID:      "SCC1",
			CustomerID:     "C001",
			ProductSKU:     "PRD_003",
			ExpectedWeight: 500,
			ActualWeight:   600,
		},
	}
	line, err := ev.MarshalLine()
	require.NoError(t, err)
	assert.Contains(t, string(line), `"expected_weight":500,"actual_weight":600`)
}

func TestEventData_Names(t *testing.T) {
	cases := []struct {
		data EventData
		name string
	}{
		{ScannerAvoidance{Name: "Scanner Avoidance"}, "Scanner Avoidance"},
		{BarcodeSwitching{Name: "Barcode Switching"}, "Barcode Switching"},
		{WeightDiscrepancy{Name: "Weight Discrepancies"}, "Weight Discrepancies"},
		{SystemCrash{Name: "Unexpected Systems Crash"}, "Unexpected Systems Crash"},
		{LongQueue{Name: "Long Queue Length"}, "Long Queue Length"},
		{LongWait{Name: "Long Wait Time"}, "Long Wait Time"},
		{InventoryDiscrepancy{Name: "Inventory Discrepancy"}, "Inventory Discrepancy"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.data.EventName())
	}
}

func TestEventIDs_FixedOrder(t *testing.T) {
	require.Len(t, EventIDs, 7)
	assert.Equal(t, EventID("E001"), EventIDs[0])
	assert.Equal(t, EventID("E007"), EventIDs[6])
}
