// Package engine orchestrates the seven detection rules over one
// snapshot and produces the combined event log.
//
// ARCHITECTURE:
//
// Parallel fan-out, deterministic fan-in:
// Rules are pure functions over an immutable snapshot, so they run
// concurrently, one goroutine per rule, with no synchronization beyond
// the final join. Results land in a slice indexed by rule position and
// are concatenated in the fixed registration order E001..E007, never in
// task-completion order, so two runs over the same snapshot produce
// byte-identical output.
//
// Failure isolation:
// One rule failing (a malformed timestamp in a stream it consumes) never
// aborts its siblings. The failure is logged, counted, and surfaced in
// the run report naming the rule, stream, and record that broke; every
// other rule still contributes its events.
//
// Each run carries a UUIDv7 run token for log correlation and a
// canonical SHA-256 digest of the emitted events as its determinism
// witness.
package engine
