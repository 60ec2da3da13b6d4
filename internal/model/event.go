package model

import "encoding/json"

// EventID identifies one of the seven detection rules.
type EventID string

const (
	EventScannerAvoidance     EventID = "E001"
	EventBarcodeSwitching     EventID = "E002"
	EventWeightDiscrepancy    EventID = "E003"
	EventSystemCrash          EventID = "E004"
	EventLongQueue            EventID = "E005"
	EventLongWait             EventID = "E006"
	EventInventoryDiscrepancy EventID = "E007"
)

// EventIDs lists the rule identifiers in their fixed concatenation order.
// The orchestrator emits events grouped by this order, never by task
// completion order.
var EventIDs = []EventID{
	EventScannerAvoidance,
	EventBarcodeSwitching,
	EventWeightDiscrepancy,
	EventSystemCrash,
	EventLongQueue,
	EventLongWait,
	EventInventoryDiscrepancy,
}

// Event is one detected anomaly. Events are immutable once created and
// serialize to exactly one line of the event log.
//
// The JSON field order (timestamp, event_id, event_data) and the payload
// field order within each event kind are fixed: struct declaration order
// is the wire order, which is what makes runs byte-identical.
type Event struct {
	Timestamp string    `json:"timestamp"`
	EventID   EventID   `json:"event_id"`
	EventData EventData `json:"event_data"`
}

// EventData is the per-rule payload. It is a sealed union: the concrete
// types below are the only implementations, one per event kind, each with
// compile-time-checked fields.
type EventData interface {
	EventName() string
	eventData()
}

// ScannerAvoidance is the E001 payload: an RFID-detected item that never
// appeared as a POS scan inside the detection window.
type ScannerAvoidance struct {
	Name       string `json:"event_name"`
	StationID  string `json:"station_id"`
	CustomerID string `json:"customer_id"`
	ProductSKU string `json:"product_sku"`
}

// BarcodeSwitching is the E002 payload: the vision system saw a different
// product than the one scanned.
type BarcodeSwitching struct {
	Name       string `json:"event_name"`
	StationID  string `json:"station_id"`
	CustomerID string `json:"customer_id"`
	ActualSKU  string `json:"actual_sku"`
	ScannedSKU string `json:"scanned_sku"`
}

// WeightDiscrepancy is the E003 payload. Both weights are grams.
type WeightDiscrepancy struct {
	Name           string  `json:"event_name"`
	StationID      string  `json:"station_id"`
	CustomerID     string  `json:"customer_id"`
	ProductSKU     string  `json:"product_sku"`
	ExpectedWeight float64 `json:"expected_weight"`
	ActualWeight   float64 `json:"actual_weight"`
}

// SystemCrash is the E004 payload: a heartbeat gap on one station.
// DurationSeconds is the gap rounded down to whole seconds.
type SystemCrash struct {
	Name            string `json:"event_name"`
	StationID       string `json:"station_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

// LongQueue is the E005 payload.
type LongQueue struct {
	Name           string `json:"event_name"`
	StationID      string `json:"station_id"`
	NumOfCustomers int    `json:"num_of_customers"`
}

// LongWait is the E006 payload.
type LongWait struct {
	Name            string `json:"event_name"`
	StationID       string `json:"station_id"`
	WaitTimeSeconds int    `json:"wait_time_seconds"`
}

// InventoryDiscrepancy is the E007 payload. The capitalized JSON keys are
// wire-compatible with the recorded datasets and the dashboard that reads
// the event log.
type InventoryDiscrepancy struct {
	Name              string `json:"event_name"`
	SKU               string `json:"SKU"`
	ExpectedInventory int    `json:"Expected_Inventory"`
	ActualInventory   int    `json:"Actual_Inventory"`
}

func (d ScannerAvoidance) EventName() string     { return d.Name }
func (d BarcodeSwitching) EventName() string     { return d.Name }
func (d WeightDiscrepancy) EventName() string    { return d.Name }
func (d SystemCrash) EventName() string          { return d.Name }
func (d LongQueue) EventName() string            { return d.Name }
func (d LongWait) EventName() string             { return d.Name }
func (d InventoryDiscrepancy) EventName() string { return d.Name }

func (ScannerAvoidance) eventData()     {}
func (BarcodeSwitching) eventData()     {}
func (WeightDiscrepancy) eventData()    {}
func (SystemCrash) eventData()          {}
func (LongQueue) eventData()            {}
func (LongWait) eventData()             {}
func (InventoryDiscrepancy) eventData() {}

// MarshalLine renders the event as one line of the event log, without a
// trailing newline.
func (e Event) MarshalLine() ([]byte, error) {
	return json.Marshal(e)
}
