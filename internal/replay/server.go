package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/storewatch/sentinel/internal/metrics"
	"github.com/storewatch/sentinel/internal/model"
)

// banner is the first frame every client receives, describing the feed.
type banner struct {
	Service      string   `json:"service"`
	Datasets     []string `json:"datasets"`
	Events       int      `json:"events"`
	Loop         bool     `json:"loop"`
	SpeedFactor  float64  `json:"speed_factor"`
	CycleSeconds float64  `json:"cycle_seconds"`
	Schema       string   `json:"schema"`
}

// frame is one streamed record. Timestamps are rebased so cycle N+1
// continues where cycle N ended; the record's original timestamp rides
// along for clients that want it.
type frame struct {
	Dataset           string         `json:"dataset"`
	Sequence          int64          `json:"sequence"`
	Timestamp         string         `json:"timestamp"`
	OriginalTimestamp string         `json:"original_timestamp"`
	Event             map[string]any `json:"event"`
}

// Server replays a feed to any number of concurrent TCP clients. Each
// client gets its own cursor; a slow client never stalls another.
type Server struct {
	feed  *Feed
	speed float64
	loop  bool

	mu sync.Mutex
	ln net.Listener
}

// Options configure a replay Server.
type Options struct {
	// Speed is the time-compression factor: 2 halves every inter-record
	// delay, 0 or less streams with no delay at all.
	Speed float64
	// Loop restarts the feed after the last record instead of closing
	// the connection.
	Loop bool
}

// NewServer creates a Server for the given feed.
func NewServer(feed *Feed, opts Options) *Server {
	return &Server{feed: feed, speed: opts.Speed, loop: opts.Loop}
}

// ListenAndServe accepts clients on addr until ctx is cancelled.
// Blocks; returns nil on graceful shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("replay service listening",
		"addr", ln.Addr().String(),
		"records", s.feed.Len(),
		"datasets", s.feed.Datasets(),
		"speed", s.speed,
		"loop", s.loop,
	)

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			slog.Error("accept failed", "error", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
	wg.Wait()
	slog.Info("replay service stopped")
	return nil
}

// Addr returns the bound listener address, for tests using ":0".
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	slog.Info("client connected", "remote", remote)
	metrics.ReplayClients.Inc()
	defer func() {
		metrics.ReplayClients.Dec()
		conn.Close()
		slog.Info("client disconnected", "remote", remote)
	}()

	w := bufio.NewWriter(conn)
	if err := s.writeJSON(w, banner{
		Service:      "sentinel-event-stream",
		Datasets:     s.feed.Datasets(),
		Events:       s.feed.Len(),
		Loop:         s.loop,
		SpeedFactor:  s.speed,
		CycleSeconds: s.feed.span.Seconds(),
		Schema:       "newline-delimited JSON objects",
	}); err != nil {
		return
	}

	var sequence int64
	var previous time.Time
	havePrevious := false

	for cycle := 0; ; cycle++ {
		for _, rec := range s.feed.records {
			adjusted := rec.at.Add(s.feed.span * time.Duration(cycle))

			if havePrevious {
				if err := s.pace(ctx, adjusted.Sub(previous)); err != nil {
					return
				}
			}
			previous = adjusted
			havePrevious = true

			sequence++
			event := make(map[string]any, len(rec.payload))
			for k, v := range rec.payload {
				event[k] = v
			}
			event["timestamp"] = model.FormatTimestamp(adjusted)

			err := s.writeJSON(w, frame{
				Dataset:           rec.dataset,
				Sequence:          sequence,
				Timestamp:         model.FormatTimestamp(adjusted),
				OriginalTimestamp: rec.at.Format(model.TimeLayout),
				Event:             event,
			})
			if err != nil {
				slog.Debug("client write failed", "remote", remote, "error", err)
				return
			}
			metrics.ReplayRecordsSent.Inc()
		}
		if !s.loop || ctx.Err() != nil {
			return
		}
	}
}

// pace sleeps for the record gap compressed by the speed factor, waking
// early on shutdown. Non-positive gaps still get a minimal delay so a
// burst of same-stamped records cannot flood a client.
func (s *Server) pace(ctx context.Context, gap time.Duration) error {
	if s.speed <= 0 {
		return ctx.Err()
	}
	delay := time.Duration(float64(gap) / s.speed)
	if delay <= 0 {
		delay = time.Duration(float64(100*time.Millisecond) / s.speed)
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) writeJSON(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
