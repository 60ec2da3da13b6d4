// Package replay streams recorded datasets over TCP as a single,
// chronologically sorted, newline-delimited JSON feed at an adjustable
// speed. Demo clients consume it as if the store were live.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/storewatch/sentinel/internal/model"
)

// record is one dataset line with its parsed timestamp.
type record struct {
	dataset string
	at      time.Time
	payload map[string]any
}

// Feed is the merged, time-sorted contents of a dataset directory.
type Feed struct {
	records  []record
	datasets []string
	span     time.Duration
}

// excluded are file stems that are outputs, not input streams.
var excluded = map[string]bool{"events": true}

// LoadFeed reads every *.jsonl file under dir (except the event log),
// parses each record's timestamp, and merges everything into one
// chronological sequence. Records with equal timestamps keep their
// per-file order.
func LoadFeed(dir string) (*Feed, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)

	feed := &Feed{}
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), ".jsonl")
		if excluded[stem] {
			continue
		}
		n, err := feed.loadFile(path, stem)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			feed.datasets = append(feed.datasets, stem)
		}
	}
	if len(feed.records) == 0 {
		return nil, fmt.Errorf("no replayable records under %s", dir)
	}

	sort.SliceStable(feed.records, func(i, j int) bool {
		return feed.records[i].at.Before(feed.records[j].at)
	})
	// One cycle spans first to last record plus a one-second gap before
	// the feed repeats.
	feed.span = feed.records[len(feed.records)-1].at.Sub(feed.records[0].at) + time.Second
	return feed, nil
}

func (f *Feed) loadFile(path, dataset string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			return 0, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		ts, _ := payload["timestamp"].(string)
		at, err := model.ParseTimestamp(ts)
		if err != nil {
			return 0, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		f.records = append(f.records, record{dataset: dataset, at: at, payload: payload})
		count++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return count, nil
}

// Len returns the number of records in one cycle.
func (f *Feed) Len() int { return len(f.records) }

// Datasets returns the dataset names contributing to the feed.
func (f *Feed) Datasets() []string { return f.datasets }
