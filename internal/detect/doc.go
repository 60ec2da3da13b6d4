// Package detect implements the seven detection rules (E001..E007).
//
// Every rule is a pure function over an immutable, fully materialized
// snapshot: it reads one or two streams (plus the catalog where needed)
// and returns a sequence of anomaly events. No rule observes another
// rule's output, no rule mutates its inputs, and the same snapshot
// always produces the same events in the same order.
//
// Correlation rules never do nested scans over raw streams. POS
// transactions are grouped per station (or per SKU) and time-sorted
// once, then every probe is a binary search, keeping each rule near
// O(n log n).
//
// A record whose timestamp does not parse is a hard failure for the rule
// consuming it, reported as a *RuleError naming the rule, the stream,
// and the record index. Missing or empty input streams are not errors:
// the rule returns no events.
package detect
