package model

import (
	"encoding/json"
	"fmt"
)

// StreamType identifies one of the six logical input streams.
type StreamType string

const (
	StreamPOSTransactions    StreamType = "pos_transactions"
	StreamRFIDReadings       StreamType = "rfid_readings"
	StreamProductRecognition StreamType = "product_recognition"
	StreamQueueMonitoring    StreamType = "queue_monitoring"
	StreamInventorySnapshots StreamType = "inventory_snapshots"
)

// StreamTypes lists all record streams in their canonical order.
// Used by the adapter and the replay service to enumerate dataset files.
var StreamTypes = []StreamType{
	StreamPOSTransactions,
	StreamRFIDReadings,
	StreamProductRecognition,
	StreamQueueMonitoring,
	StreamInventorySnapshots,
}

// POSTransaction is one scanned item at a checkout station.
type POSTransaction struct {
	Timestamp  string  `json:"timestamp"`
	StationID  string  `json:"station_id"`
	CustomerID string  `json:"customer_id"`
	SKU        string  `json:"sku"`
	WeightG    float64 `json:"weight_g"`
}

// RFIDReading is one tag detection. SKU is empty when the tag could not
// be resolved to a product; such readings are excluded from scanner
// avoidance evaluation.
type RFIDReading struct {
	Timestamp string `json:"timestamp"`
	StationID string `json:"station_id"`
	Location  string `json:"location"`
	SKU       string `json:"sku"`
}

// Recognition is one vision-system product prediction.
type Recognition struct {
	Timestamp        string  `json:"timestamp"`
	StationID        string  `json:"station_id"`
	CustomerID       string  `json:"customer_id"`
	PredictedProduct string  `json:"predicted_product"`
	Accuracy         float64 `json:"accuracy,omitempty"`
}

// QueueSample is one queue-monitoring observation. The stream doubles as
// the per-station heartbeat for downtime detection.
type QueueSample struct {
	Timestamp        string  `json:"timestamp"`
	StationID        string  `json:"station_id"`
	CustomerCount    int     `json:"customer_count"`
	AverageDwellTime float64 `json:"average_dwell_time"`
}

// InventorySnapshot is one point-in-time count of on-hand stock per SKU.
type InventorySnapshot struct {
	Timestamp string         `json:"timestamp"`
	Counts    map[string]int `json:"data"`
}

// CatalogEntry is the static reference record for one SKU. ExpectedWeightG
// is always expressed in grams; the adapter normalizes at load time
// according to the configured catalog unit.
type CatalogEntry struct {
	SKU             string
	Name            string
	ExpectedWeightG float64
}

// Catalog is the immutable SKU reference table, keyed by SKU.
// Shared read-only across concurrent detectors.
type Catalog map[string]CatalogEntry

// Snapshot is one fully materialized pipeline input: every stream plus
// the catalog. Absent streams are nil slices; rules treat them as empty.
// A Snapshot is read-only once built.
type Snapshot struct {
	POSTransactions    []POSTransaction
	RFIDReadings       []RFIDReading
	ProductRecognition []Recognition
	QueueMonitoring    []QueueSample
	InventorySnapshots []InventorySnapshot
	Catalog            Catalog
}

// envelope is the common wire shape of one streamed record:
// a timestamp, an optional stream discriminator, and a nested payload.
type envelope struct {
	Timestamp  string          `json:"timestamp"`
	StationID  string          `json:"station_id"`
	StreamType string          `json:"stream_type"`
	Data       json.RawMessage `json:"data"`
}

// DecodeRecord decodes one line of a stream file into the typed record
// for the given stream. Payload fields live under the nested "data" key;
// the timestamp lives on the envelope. Returns the typed record as any of
// POSTransaction, RFIDReading, Recognition, QueueSample, or
// InventorySnapshot.
func DecodeRecord(stream StreamType, line []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", stream, err)
	}
	if env.StreamType != "" && env.StreamType != string(stream) {
		return nil, fmt.Errorf("decode %s: record declares stream_type %q", stream, env.StreamType)
	}

	// Inventory snapshots carry a bare SKU->count map, not a payload struct.
	if stream == StreamInventorySnapshots {
		snap := InventorySnapshot{Timestamp: env.Timestamp}
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &snap.Counts); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", stream, err)
			}
		}
		return snap, nil
	}

	payload := env.Data
	if len(payload) == 0 {
		// Some recordings flatten the payload onto the envelope.
		payload = line
	}

	switch stream {
	case StreamPOSTransactions:
		var rec POSTransaction
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", stream, err)
		}
		rec.Timestamp = env.Timestamp
		return rec, nil
	case StreamRFIDReadings:
		var rec RFIDReading
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", stream, err)
		}
		rec.Timestamp = env.Timestamp
		return rec, nil
	case StreamProductRecognition:
		var rec Recognition
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", stream, err)
		}
		rec.Timestamp = env.Timestamp
		return rec, nil
	case StreamQueueMonitoring:
		var rec QueueSample
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", stream, err)
		}
		rec.Timestamp = env.Timestamp
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown stream type: %s", stream)
	}
}
