package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/storewatch/sentinel/internal/config"
	"github.com/storewatch/sentinel/internal/detect"
	"github.com/storewatch/sentinel/internal/metrics"
	"github.com/storewatch/sentinel/internal/model"
)

// RuleFunc evaluates one detection rule against a snapshot.
type RuleFunc func(*model.Snapshot, config.Detection) ([]model.Event, error)

// Rule pairs a rule identifier with its evaluator.
type Rule struct {
	ID   model.EventID
	Name string
	Run  RuleFunc
}

// Rules returns the seven detection rules in their fixed concatenation
// order. The slice order is load-bearing: it is both the fan-in order
// and the order events appear in the log.
func Rules() []Rule {
	return []Rule{
		{ID: model.EventScannerAvoidance, Name: "scanner_avoidance", Run: detect.ScannerAvoidance},
		{ID: model.EventBarcodeSwitching, Name: "barcode_switching", Run: detect.BarcodeSwitching},
		{ID: model.EventWeightDiscrepancy, Name: "weight_discrepancy", Run: detect.WeightDiscrepancy},
		{ID: model.EventSystemCrash, Name: "system_downtime", Run: detect.SystemDowntime},
		{ID: model.EventLongQueue, Name: "long_queue", Run: detect.LongQueue},
		{ID: model.EventLongWait, Name: "long_wait", Run: detect.LongWait},
		{ID: model.EventInventoryDiscrepancy, Name: "inventory_discrepancy", Run: detect.InventoryDiscrepancy},
	}
}

// RuleResult is the outcome of one rule over one snapshot.
type RuleResult struct {
	Rule     model.EventID `json:"rule"`
	Name     string        `json:"name"`
	Events   int           `json:"events"`
	Duration time.Duration `json:"-"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
}

// Report is the outcome of one pipeline run: the combined event
// sequence in rule order plus per-rule results and the canonical digest
// of the log.
type Report struct {
	RunToken string       `json:"run_token"`
	Results  []RuleResult `json:"results"`
	Total    int          `json:"total_events"`
	Failed   int          `json:"failed_rules"`
	Digest   string       `json:"digest"`
	Events   []model.Event `json:"-"`
}

// Engine runs the detection rules against loaded snapshots.
//
// The engine holds no mutable state between runs; the rule slice order
// never changes after construction.
type Engine struct {
	rules  []Rule
	params config.Detection
	tokens RunTokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunTokenGenerator overrides the run token source. Tests use
// FixedGenerator for stable report output.
func WithRunTokenGenerator(g RunTokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// New creates an Engine with the configured thresholds and the seven
// rules in their fixed order.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		rules:  Rules(),
		params: cfg.Detection,
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates every rule against the snapshot and returns the
// combined report.
//
// Rules run concurrently, one goroutine each; the snapshot is shared
// read-only so no locking is needed. Fan-in is by rule position, not
// completion order. A failed rule contributes no events but never stops
// a sibling; Run itself fails only if the combined log cannot be
// fingerprinted.
func (e *Engine) Run(snap *model.Snapshot) (*Report, error) {
	token := e.tokens.Generate()
	slog.Info("pipeline starting", "run", token, "rules", len(e.rules))

	results := make([]RuleResult, len(e.rules))
	events := make([][]model.Event, len(e.rules))

	var wg sync.WaitGroup
	for i, rule := range e.rules {
		wg.Add(1)
		go func(i int, rule Rule) {
			defer wg.Done()
			start := time.Now()
			evs, err := rule.Run(snap, e.params)
			results[i] = RuleResult{
				Rule:     rule.ID,
				Name:     rule.Name,
				Events:   len(evs),
				Duration: time.Since(start),
				Err:      err,
			}
			events[i] = evs
		}(i, rule)
	}
	wg.Wait()

	report := &Report{RunToken: token, Results: results}
	for i := range results {
		res := &results[i]
		metrics.RuleDuration.WithLabelValues(string(res.Rule)).Observe(float64(res.Duration.Milliseconds()))
		if res.Err != nil {
			res.Error = res.Err.Error()
			res.Events = 0
			report.Failed++
			metrics.RuleFailures.WithLabelValues(string(res.Rule)).Inc()
			slog.Error("rule failed",
				"run", token,
				"rule", res.Rule,
				"name", res.Name,
				"error", res.Err,
			)
			continue
		}
		metrics.EventsDetected.WithLabelValues(string(res.Rule)).Add(float64(res.Events))
		slog.Debug("rule finished",
			"run", token,
			"rule", res.Rule,
			"events", res.Events,
			"duration", res.Duration,
		)
		report.Events = append(report.Events, events[i]...)
	}
	report.Total = len(report.Events)

	digest, err := model.Digest(report.Events)
	if err != nil {
		return nil, fmt.Errorf("fingerprint event log: %w", err)
	}
	report.Digest = digest

	slog.Info("pipeline finished",
		"run", token,
		"events", report.Total,
		"failed_rules", report.Failed,
		"digest", digest,
	)
	return report, nil
}
