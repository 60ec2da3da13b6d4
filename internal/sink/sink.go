// Package sink serializes the combined event sequence to the
// line-delimited JSON event log the dashboard and replay tooling read.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/storewatch/sentinel/internal/model"
)

// Write streams events to w, one JSON object per line, UTF-8, no
// trailing separator beyond the final newline.
func Write(w io.Writer, events []model.Event) error {
	bw := bufio.NewWriter(w)
	for i, ev := range events {
		line, err := ev.MarshalLine()
		if err != nil {
			return fmt.Errorf("serialize event %d: %w", i, err)
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write event %d: %w", i, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write event %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the event log to path atomically: the events are
// written to a temporary file in the same directory, synced, and renamed
// over the destination. On any failure the destination is untouched and
// the temporary file is removed; a partial or corrupt log is never left
// behind.
func WriteFile(path string, events []model.Event) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".events-*.jsonl.tmp")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, events); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
