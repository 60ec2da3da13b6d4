// Package adapter loads recorded datasets into an immutable snapshot:
// one JSONL file per stream plus a CSV product catalog. It is the only
// place input I/O happens; the detection core never touches the
// filesystem.
package adapter

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/metrics"
	"github.com/storewatch/sentinel/internal/model"
)

// catalogFile is the static product reference table shipped with every
// recorded dataset.
const catalogFile = "products_list.csv"

// maxLineBytes bounds one JSONL record. Inventory snapshots carry the
// whole per-SKU map on a single line.
const maxLineBytes = 4 << 20

// LoadDir reads every stream file and the catalog from dir and builds
// the run snapshot. A missing stream file is not an error: the dependent
// rules simply see an empty collection. A file that exists but does not
// decode is a hard failure naming the file and line.
func LoadDir(dir string, catalogCfg config.CatalogConfig) (*model.Snapshot, error) {
	snap := &model.Snapshot{}

	for _, stream := range model.StreamTypes {
		path := filepath.Join(dir, string(stream)+".jsonl")
		records, err := loadStream(path, stream)
		if err != nil {
			return nil, err
		}
		switch stream {
		case model.StreamPOSTransactions:
			snap.POSTransactions = asRecords[model.POSTransaction](records)
		case model.StreamRFIDReadings:
			snap.RFIDReadings = asRecords[model.RFIDReading](records)
		case model.StreamProductRecognition:
			snap.ProductRecognition = asRecords[model.Recognition](records)
		case model.StreamQueueMonitoring:
			snap.QueueMonitoring = asRecords[model.QueueSample](records)
		case model.StreamInventorySnapshots:
			snap.InventorySnapshots = asRecords[model.InventorySnapshot](records)
		}
		metrics.RecordsLoaded.WithLabelValues(string(stream)).Add(float64(len(records)))
	}

	catalog, err := LoadCatalog(filepath.Join(dir, catalogFile), catalogCfg)
	if err != nil {
		return nil, err
	}
	snap.Catalog = catalog

	slog.Info("snapshot loaded",
		"dir", dir,
		"pos_transactions", len(snap.POSTransactions),
		"rfid_readings", len(snap.RFIDReadings),
		"product_recognition", len(snap.ProductRecognition),
		"queue_monitoring", len(snap.QueueMonitoring),
		"inventory_snapshots", len(snap.InventorySnapshots),
		"catalog_entries", len(snap.Catalog),
	)
	return snap, nil
}

func asRecords[T any](records []any) []T {
	if len(records) == 0 {
		return nil
	}
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = r.(T)
	}
	return out
}

// loadStream reads one newline-delimited JSON file into typed records.
// Returns nil without error when the file does not exist.
func loadStream(path string, stream model.StreamType) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("stream file absent", "stream", stream, "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []any
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := model.DecodeRecord(stream, []byte(line))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// LoadCatalog reads the product reference CSV. Expected weights are
// normalized to grams according to the configured unit, so every
// consumer downstream works in one unit. Returns an empty catalog when
// the file does not exist; the weight rule then sees no entries and
// stays silent.
func LoadCatalog(path string, cfg config.CatalogConfig) (model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("catalog file absent", "path", path)
			return model.Catalog{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	skuCol, weightCol, nameCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "sku":
			skuCol = i
		case "weight", "weight_g":
			weightCol = i
		case "product_name", "name":
			nameCol = i
		}
	}
	if skuCol < 0 || weightCol < 0 {
		return nil, fmt.Errorf("%s: header must contain SKU and weight columns, got %v", path, header)
	}

	toGrams := 1.0
	if cfg.WeightUnit == config.WeightKilograms {
		toGrams = 1000.0
	}

	catalog := make(model.Catalog)
	lineNo := 1
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		lineNo++
		if skuCol >= len(row) || weightCol >= len(row) {
			return nil, fmt.Errorf("%s:%d: row has %d fields", path, lineNo, len(row))
		}
		sku := strings.TrimSpace(row[skuCol])
		if sku == "" {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(row[weightCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: weight for %s: %w", path, lineNo, sku, err)
		}
		entry := model.CatalogEntry{SKU: sku, ExpectedWeightG: weight * toGrams}
		if nameCol >= 0 && nameCol < len(row) {
			entry.Name = strings.TrimSpace(row[nameCol])
		}
		catalog[sku] = entry
	}
	return catalog, nil
}
